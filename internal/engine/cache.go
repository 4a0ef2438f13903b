package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
)

// SummaryCacheKeyPrefix 加上用户UUID构成摘要缓存的Redis键。
// 缓存键中混入"今天"的日期，跨日后的旧缓存自然失效。
const SummaryCacheKeyPrefix = "badge:summary:"

// SummaryCacheTTL 是摘要缓存的存活时间。
// 摘要是轮询接口，短TTL在高频轮询下足以挡掉绝大多数重算。
const SummaryCacheTTL = 1 * time.Minute

func summaryCacheKey(userID, today string) string {
	return SummaryCacheKeyPrefix + userID + ":" + today
}

// getCachedSummary 尝试读取缓存的摘要。任何失败都按未命中处理。
func getCachedSummary(userID, today string) *BadgeSummary {
	if !database.RedisAvailable() {
		return nil
	}
	raw, err := database.RDB.Get(database.Ctx, summaryCacheKey(userID, today)).Result()
	if err != nil {
		return nil
	}
	var summary BadgeSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}
	return &summary
}

// setCachedSummary 写入摘要缓存。失败只打日志，不影响返回结果。
func setCachedSummary(userID, today string, summary *BadgeSummary) {
	if !database.RedisAvailable() {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := database.RDB.Set(database.Ctx, summaryCacheKey(userID, today), raw, SummaryCacheTTL).Err(); err != nil {
		fmt.Printf("警告: 写入摘要缓存失败 (用户 %s): %v\n", userID, err)
	}
}

// scanSummaryKeys 用SCAN增量枚举匹配的缓存键。
// 不用KEYS：日志写入是高频路径，不能让它按整个键空间阻塞Redis。
func scanSummaryKeys(match string) ([]string, error) {
	var keys []string
	iter := database.RDB.Scan(database.Ctx, 0, match, 100).Iterator()
	for iter.Next(database.Ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// invalidateSummaryCache 在新日志落库后删除该用户的摘要缓存。
// 按用户前缀匹配：摘要可能以查询方时区的"今天"缓存在不同日期的键下。
func invalidateSummaryCache(userID string) {
	if !database.RedisAvailable() {
		return
	}
	keys, err := scanSummaryKeys(SummaryCacheKeyPrefix + userID + ":*")
	if err != nil || len(keys) == 0 {
		return
	}
	if err := database.RDB.Del(database.Ctx, keys...).Err(); err != nil {
		fmt.Printf("警告: 删除摘要缓存失败 (用户 %s): %v\n", userID, err)
	}
}

// ClearSummaryCaches 删除所有用户的摘要缓存，缓存热重建时调用。
func ClearSummaryCaches() error {
	keys, err := scanSummaryKeys(SummaryCacheKeyPrefix + "*")
	if err != nil {
		return fmt.Errorf("无法枚举摘要缓存键: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := database.RDB.Del(database.Ctx, keys...).Err(); err != nil {
		return fmt.Errorf("清空摘要缓存失败: %w", err)
	}
	fmt.Printf("已清空 %d 条摘要缓存。\n", len(keys))
	return nil
}
