package activity

import (
	"github.com/HabitGarden/habit-quest-backend/internal/badge"
)

// BuildContext 读取用户的全部日志历史，一次归约出评估所需的所有计数器。
//
// 这里刻意不维护任何运行中的计数器：每次调用都从日志历史重新计算，
// 用一些重复计算换取绝对的正确性与幂等性。评估只在新日志落库时触发，
// 不在每次页面访问时触发，O(历史长度)的成本可以接受。
// 没有副作用，可以并发、重复地安全调用。
//
// 连击相关的字段 (CurrentStreak / LongestStreak) 不在这里填充，
// 由引擎在读取连击状态后补充。
func BuildContext(userID string, today string) (*badge.Context, error) {
	logs, err := GetLogsForUser(userID)
	if err != nil {
		return nil, err
	}

	ctx := &badge.Context{Today: today}

	fruitSeen := make(map[string]bool)
	veggieSeen := make(map[string]bool)
	waterDays := make(map[string]bool)
	xpByDay := make(map[string]int)
	foodToday := false
	activityToday := false

	for _, l := range logs {
		switch l.Kind {
		case KindFood:
			ctx.FoodLogCount++
			if l.CalendarDay == today {
				foodToday = true
			}
		case KindActivity:
			ctx.ActivityLogCount++
			if l.CalendarDay == today {
				activityToday = true
			}
		}

		for _, tag := range l.Tags() {
			switch {
			case IsFruitTag(tag):
				// 饮食变种只统计food日志上的标签
				if l.Kind == KindFood {
					fruitSeen[tag] = true
				}
			case IsVeggieTag(tag):
				if l.Kind == KindFood {
					veggieSeen[tag] = true
				}
			case IsWaterTag(tag):
				waterDays[l.CalendarDay] = true
			}
		}

		xpByDay[l.CalendarDay] += l.XPAwarded
	}

	ctx.FruitsDistinct = len(fruitSeen)
	ctx.VeggiesDistinct = len(veggieSeen)
	ctx.WaterDayCount = len(waterDays)
	ctx.BothKindsToday = foodToday && activityToday

	for _, xp := range xpByDay {
		if xp > ctx.DailyXPBest {
			ctx.DailyXPBest = xp
		}
	}

	return ctx, nil
}
