package calendar

import "time"

// DayLayout 是日历日字符串的统一格式。
// 整个项目中所有"某一天"的概念都使用这个格式的字符串表示，
// 而不是time.Time，以避免时区和夏令时带来的歧义。
const DayLayout = "2006-01-02"

// loadLocation 解析时区名。无效或空的时区一律回退到UTC。
// 时区字符串来自客户端，不能因为它损坏就拒绝记录用户的日志。
func loadLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ResolveDay 将一个时刻换算为指定时区下的日历日字符串。
// 这是一个纯函数：任何输入都能得到一个合法的日期串，永远不会失败。
func ResolveDay(instant time.Time, timezone string) string {
	return instant.In(loadLocation(timezone)).Format(DayLayout)
}

// Today 返回指定时区下"今天"的日历日字符串。
func Today(timezone string) string {
	return ResolveDay(time.Now(), timezone)
}

// ParseDay 将日历日字符串解析回一个UTC午夜的时间点。
// 只用于日期算术，不代表任何真实时刻。
func ParseDay(day string) (time.Time, bool) {
	t, err := time.ParseInLocation(DayLayout, day, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayDiff 计算两个日历日之间相差的天数 (later - earlier)。
// 计算在日期串本身上进行，与时刻无关，因此对夏令时免疫。
// 任一日期串非法时返回 (0, false)。
func DayDiff(earlier, later string) (int, bool) {
	a, okA := ParseDay(earlier)
	b, okB := ParseDay(later)
	if !okA || !okB {
		return 0, false
	}
	// 两侧都是UTC午夜，差值必然是24小时的整数倍
	return int(b.Sub(a) / (24 * time.Hour)), true
}

// NextDay 返回指定日历日的下一天。输入非法时返回空字符串。
func NextDay(day string) string {
	t, ok := ParseDay(day)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(DayLayout)
}
