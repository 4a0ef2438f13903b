package badge

// Kind 是徽章判定方式的封闭枚举。
// 评估引擎对它做穷尽的switch，新增判定方式时编译器会指出所有遗漏分支。
type Kind int

const (
	// KindCounter 计数器达到阈值时获得。
	KindCounter Kind = iota
	// KindStreakMilestone 当前连击长度达到阈值时获得。
	// 注意这里用的是 >= 而不是精确匹配：评估必须可以重跑，
	// 精确匹配只用于Tracker的通知时机判断，不用于授予的正确性。
	KindStreakMilestone
	// KindBooleanEvent 布尔条件当前成立时获得（例如"第一次记录饮食"）。
	KindBooleanEvent
	// KindPersonalRecord 个人纪录存在 (>0) 时获得，代表"你有一项纪录"。
	KindPersonalRecord
)

// Definition 是目录中一条徽章规则。
type Definition struct {
	// Code 是徽章的唯一代号，同时是授予表的联合主键之一。
	Code string
	// Category 是徽章的展示分类。
	Category string
	// Kind 决定如何评估这条规则。
	Kind Kind
	// Metric 指定评估时读取Context中的哪个计数器。
	Metric Metric
	// Threshold 的含义取决于Kind；布尔与个人纪录类规则忽略它。
	Threshold int
	// Tier 是展示用的稀有度，不参与评估。
	Tier string
}

// CatalogVersion 在目录内容变化时递增，
// 启动流程据此决定是否需要重新播种SQLite中的目录镜像。
const CatalogVersion = "3"

// catalog 是进程生命周期内只读的规则表，启动时播种进SQLite供UI查询。
var catalog = []Definition{
	// 首次事件
	{Code: "FIRST_FOOD", Category: "first_steps", Kind: KindBooleanEvent, Metric: MetricFoodLogs, Tier: "bronze"},
	{Code: "FIRST_ACTIVITY", Category: "first_steps", Kind: KindBooleanEvent, Metric: MetricActivityLogs, Tier: "bronze"},
	{Code: "BALANCED_DAY", Category: "habits", Kind: KindBooleanEvent, Metric: MetricBalancedDay, Tier: "silver"},

	// 计数器阈值
	{Code: "FOOD_LOGGER_10", Category: "logging", Kind: KindCounter, Metric: MetricFoodLogs, Threshold: 10, Tier: "bronze"},
	{Code: "FOOD_LOGGER_50", Category: "logging", Kind: KindCounter, Metric: MetricFoodLogs, Threshold: 50, Tier: "gold"},
	{Code: "ACTIVE_KID_10", Category: "logging", Kind: KindCounter, Metric: MetricActivityLogs, Threshold: 10, Tier: "bronze"},
	{Code: "FRUIT_EXPLORER", Category: "variety", Kind: KindCounter, Metric: MetricDistinctFruits, Threshold: 5, Tier: "silver"},
	{Code: "VEGGIE_EXPLORER", Category: "variety", Kind: KindCounter, Metric: MetricDistinctVeggies, Threshold: 5, Tier: "silver"},
	{Code: "HYDRATION_HERO", Category: "habits", Kind: KindCounter, Metric: MetricWaterDays, Threshold: 7, Tier: "silver"},

	// 连击里程碑
	{Code: "STREAK_3", Category: "streaks", Kind: KindStreakMilestone, Metric: MetricCurrentStreak, Threshold: 3, Tier: "bronze"},
	{Code: "STREAK_7", Category: "streaks", Kind: KindStreakMilestone, Metric: MetricCurrentStreak, Threshold: 7, Tier: "silver"},
	{Code: "STREAK_14", Category: "streaks", Kind: KindStreakMilestone, Metric: MetricCurrentStreak, Threshold: 14, Tier: "gold"},
	{Code: "STREAK_30", Category: "streaks", Kind: KindStreakMilestone, Metric: MetricCurrentStreak, Threshold: 30, Tier: "diamond"},

	// 个人纪录
	{Code: "RECORD_SETTER", Category: "records", Kind: KindPersonalRecord, Metric: MetricDailyXPBest, Tier: "bronze"},
}

// Catalog 返回只读的规则表。调用方不得修改返回的切片。
func Catalog() []Definition {
	return catalog
}

// LookupDefinition 按代号查找规则。
func LookupDefinition(code string) (Definition, bool) {
	for _, def := range catalog {
		if def.Code == code {
			return def, true
		}
	}
	return Definition{}, false
}
