package activity

// --- 经验值规则常量 ---

const (
	// xpBase 是每条日志的基础经验值
	xpBase = 10

	// xpPerDurationStep 每记录5分钟运动加1点，封顶xpDurationCap
	xpDurationStepMinutes = 5
	xpDurationCap         = 10

	// xpPerTag 每个语义标签加2点，封顶xpTagCap
	xpPerTag = 2
	xpTagCap = 6
)

// computeXP 在日志创建时一次性计算经验值。
// 经验值是日志的固有属性，落库后不再变化，
// dailyXpBest这类个人纪录都建立在它之上。
func computeXP(kind Kind, tags []string, durationMinutes int) int {
	xp := xpBase

	if kind == KindActivity && durationMinutes > 0 {
		bonus := durationMinutes / xpDurationStepMinutes
		if bonus > xpDurationCap {
			bonus = xpDurationCap
		}
		xp += bonus
	}

	tagBonus := len(tags) * xpPerTag
	if tagBonus > xpTagCap {
		tagBonus = xpTagCap
	}
	xp += tagBonus

	return xp
}
