package streak

import (
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// LeaderboardKey 是一个Redis Sorted Set，按当前连击长度对用户排序。
// Score: CurrentLength
// Member: 用户UUID
// 它是纯派生数据，Redis重启后由WarmupCache从SQLite重建。
const LeaderboardKey = "streak:leaderboard"

// LeaderboardEntry 是排行榜查询返回的单行数据。
type LeaderboardEntry struct {
	UserID        string `json:"userId"`
	CurrentLength int    `json:"currentLength"`
}

// refreshLeaderboardEntry 在连击状态成功落库后刷新排行榜。
// 排行榜是可选的派生视图，失败只打日志，绝不影响主流程。
func refreshLeaderboardEntry(userID string, currentLength int) {
	if !database.RedisAvailable() {
		return
	}
	err := database.RDB.ZAdd(database.Ctx, LeaderboardKey, redis.Z{
		Score:  float64(currentLength),
		Member: userID,
	}).Err()
	if err != nil {
		fmt.Printf("警告: 刷新连击排行榜失败 (用户 %s): %v\n", userID, err)
	}
}

// GetLeaderboard 返回当前连击最长的前limit名用户。
func GetLeaderboard(limit int64) ([]LeaderboardEntry, error) {
	if !database.RedisAvailable() {
		return nil, fmt.Errorf("排行榜暂不可用: Redis离线")
	}
	if limit <= 0 {
		limit = 10
	}

	zs, err := database.RDB.ZRevRangeWithScores(database.Ctx, LeaderboardKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取连击排行榜: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		uid, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:        uid,
			CurrentLength: int(z.Score),
		})
	}
	return entries, nil
}
