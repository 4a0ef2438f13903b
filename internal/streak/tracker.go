package streak

import "github.com/HabitGarden/habit-quest-backend/pkg/calendar"

// Milestones 是连击里程碑天数的固定升序列表。
// 连击在一次真实变化中恰好达到其中某个值时，才视为触发了里程碑。
var Milestones = []int{3, 7, 14, 30}

// Advance 是连击状态机的纯转移函数: (旧状态, 新活动日) -> (新状态, 转移种类)。
// 它不做任何I/O，给定相同输入永远返回相同输出。
//
// "正好相隔一天"基于日历日减法计算，与具体时刻无关，因此对夏令时免疫。
func Advance(prev State, newDay string) (State, Transition) {
	next := prev

	if prev.LastActivityDay == "" {
		// 首次活动
		next.CurrentLength = 1
		next.LastActivityDay = newDay
		next.LongestLength = max(next.LongestLength, next.CurrentLength)
		return next, TransitionStarted
	}

	diff, ok := calendar.DayDiff(prev.LastActivityDay, newDay)
	if !ok {
		// 非法的日期串不应该进入状态机，按无效提交忽略
		return prev, TransitionNone
	}

	switch {
	case diff == 0:
		// 同一天的重复活动是no-op，状态原样保留
		return prev, TransitionNone
	case diff == 1:
		next.CurrentLength++
		next.LastActivityDay = newDay
		next.LongestLength = max(next.LongestLength, next.CurrentLength)
		return next, TransitionExtended
	case diff > 1:
		// 连击中断，静默重置。这里是明确的规则而非算术巧合:
		// 重置不触发changed，也永远不会命中里程碑。
		next.CurrentLength = 1
		next.LastActivityDay = newDay
		next.LongestLength = max(next.LongestLength, next.CurrentLength)
		return next, TransitionReset
	default:
		// 回填的历史日期 (newDay早于LastActivityDay):
		// 对连击是明确的no-op，活动指针绝不向后移动。
		// 日志本身仍然有效并参与计数聚合，只是不改写连击历史。
		return prev, TransitionNone
	}
}

// MilestoneReached 检查一次转移是否恰好触发了某个里程碑。
// 只有真实变化 (changed) 且当前连击长度与里程碑精确相等时才触发；
// 跳过某个里程碑（例如回填修正导致的跨越）不会追溯触发它。
func MilestoneReached(tr Transition, currentLength int) (int, bool) {
	if !tr.Changed() {
		return 0, false
	}
	for _, m := range Milestones {
		if currentLength == m {
			return m, true
		}
		if currentLength < m {
			break
		}
	}
	return 0, false
}
