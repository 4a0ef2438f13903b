package badge

import "fmt"

// Context 是一次评估所需的全部计数器快照。
// 它由activity聚合器从日志历史一次性归约得到（连击字段由引擎补充），
// 不在任何地方增量维护，每次评估都重新计算，保证与历史永不漂移。
type Context struct {
	// Today 是触发本次评估的日志所属的日历日。
	Today string

	FoodLogCount     int
	ActivityLogCount int

	// FruitsDistinct / VeggiesDistinct 是历史上出现过的不同水果/蔬菜标签数。
	// 重复记录同一种水果不增加计数。
	FruitsDistinct  int
	VeggiesDistinct int

	// WaterDayCount 是出现过饮水标签的不同日历日数。
	WaterDayCount int

	// BothKindsToday 表示Today这一天是否同时记录了饮食和运动。
	BothKindsToday bool

	// DailyXPBest 是单日经验值总和的历史最大值。
	DailyXPBest int

	// 连击状态，由引擎在聚合之后填入。
	CurrentStreak int
	LongestStreak int
}

// Metric 选择Context中的某个计数器或标志位，是规则表的一部分。
type Metric int

const (
	MetricFoodLogs Metric = iota
	MetricActivityLogs
	MetricDistinctFruits
	MetricDistinctVeggies
	MetricWaterDays
	MetricBalancedDay
	MetricDailyXPBest
	MetricCurrentStreak
)

// Value 返回Context中对应指标的当前值。布尔指标按0/1返回。
func (c *Context) Value(m Metric) int {
	switch m {
	case MetricFoodLogs:
		return c.FoodLogCount
	case MetricActivityLogs:
		return c.ActivityLogCount
	case MetricDistinctFruits:
		return c.FruitsDistinct
	case MetricDistinctVeggies:
		return c.VeggiesDistinct
	case MetricWaterDays:
		return c.WaterDayCount
	case MetricBalancedDay:
		if c.BothKindsToday {
			return 1
		}
		return 0
	case MetricDailyXPBest:
		return c.DailyXPBest
	case MetricCurrentStreak:
		return c.CurrentStreak
	default:
		panic(fmt.Sprintf("未知的指标: %d", m))
	}
}
