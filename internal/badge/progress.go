package badge

// ProgressEntry 是一条"距离获得还差多少"的进度数据，供UI进度条使用。
type ProgressEntry struct {
	Code      string `json:"code"`
	Current   int    `json:"current"`
	Threshold int    `json:"threshold"`
}

// ProgressFor 为所有尚未获得的徽章计算 (当前值, 阈值) 对。
// 它读取的计数器与评估引擎完全相同，因此"5个水果中的第3个"
// 这样的进度条与实际触发授予的条件永远一致。只读，不产生副作用。
func ProgressFor(userID string, ctx *Context) ([]ProgressEntry, error) {
	earned, err := GetEarnedCodeSet(userID)
	if err != nil {
		return nil, err
	}

	progress := make([]ProgressEntry, 0, len(catalog))
	for _, def := range Catalog() {
		if earned[def.Code] {
			continue
		}

		threshold := def.Threshold
		if def.Kind == KindBooleanEvent || def.Kind == KindPersonalRecord {
			// 布尔与个人纪录类规则的进度按0/1展示
			threshold = 1
		}

		current := ctx.Value(def.Metric)
		if def.Kind == KindBooleanEvent || def.Kind == KindPersonalRecord {
			if current > 0 {
				current = 1
			}
		}
		if current > threshold {
			current = threshold
		}

		progress = append(progress, ProgressEntry{
			Code:      def.Code,
			Current:   current,
			Threshold: threshold,
		})
	}
	return progress, nil
}
