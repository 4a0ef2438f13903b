package streak

import (
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&State{}); err != nil {
		return fmt.Errorf("无法迁移streak表: %w", err)
	}
	fmt.Println("Streak数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite重建Redis中的连击排行榜
func WarmupCache() error {
	var states []State
	if err := database.DB.Find(&states).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取连击状态: %w", err)
	}

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, LeaderboardKey)
	for _, st := range states {
		pipe.ZAdd(database.Ctx, LeaderboardKey, redis.Z{
			Score:  float64(st.CurrentLength),
			Member: st.UserID,
		})
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("重建连击排行榜失败: %w", err)
	}

	fmt.Printf("成功重建连击排行榜，共 %d 个用户。\n", len(states))
	return nil
}

// PrimeCachedDB 是streak模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
