package activity

import "strings"

// 标签命名空间。标签形如 "fruit:apple"、"veggie:carrot"；
// 饮水标签没有细分品类，就是裸的 "water"。
const (
	TagPrefixFruit  = "fruit:"
	TagPrefixVeggie = "veggie:"
	TagWater        = "water"
)

// IsFruitTag 判断一个标签是否是水果标签。
func IsFruitTag(tag string) bool {
	return strings.HasPrefix(tag, TagPrefixFruit) && len(tag) > len(TagPrefixFruit)
}

// IsVeggieTag 判断一个标签是否是蔬菜标签。
func IsVeggieTag(tag string) bool {
	return strings.HasPrefix(tag, TagPrefixVeggie) && len(tag) > len(TagPrefixVeggie)
}

// IsWaterTag 判断一个标签是否是饮水指示。
func IsWaterTag(tag string) bool {
	return tag == TagWater
}

// NormalizeTags 去重并清理一组标签：去掉首尾空白、丢弃空串。
// 顺序保持首次出现的顺序，保证同一输入得到同一输出。
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.ToLower(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
