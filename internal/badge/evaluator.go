package badge

// Satisfied 判断一条规则的谓词在给定Context下是否成立。
// 对Kind的switch是穷尽的：新增判定方式时必须在这里补上分支。
func Satisfied(def Definition, ctx *Context) bool {
	value := ctx.Value(def.Metric)

	switch def.Kind {
	case KindCounter:
		return value >= def.Threshold
	case KindStreakMilestone:
		// 用 >= 而非精确匹配：评估必须幂等可重跑。
		// 连击因回填修正跳过里程碑时，徽章仍会在这里被补授；
		// 精确匹配只影响Tracker的"此刻庆祝"信号，不影响最终授予。
		return ctx.CurrentStreak >= def.Threshold
	case KindBooleanEvent:
		return value > 0
	case KindPersonalRecord:
		// 个人纪录类徽章代表"纪录存在"，而不是某个阈值
		return value > 0
	default:
		return false
	}
}

// Evaluate 对目录中的每条规则评估谓词，并对满足的规则尝试幂等授予。
// 返回本次新授予的徽章，由构造保证不含重复、不含此前已持有的徽章。
//
// 任何一次存储失败都让整个评估以错误终止：评估是持久状态的纯函数，
// 下一次触发事件重跑时会从头扫描整个目录，中途失败不会跳过任何徽章。
func Evaluate(userID string, ctx *Context) ([]Award, error) {
	var newly []Award

	for _, def := range Catalog() {
		if !Satisfied(def, ctx) {
			continue
		}

		award, created, err := insertAwardIfAbsent(userID, def.Code)
		if err != nil {
			return nil, err
		}
		if !created {
			// 已持有，或并发评估抢先授予，静默跳过，不是错误
			continue
		}

		mirrorEarnedCode(userID, def.Code)
		newly = append(newly, award)
	}

	return newly, nil
}
