package startup

import (
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/activity"
	"github.com/HabitGarden/habit-quest-backend/internal/badge"
	"github.com/HabitGarden/habit-quest-backend/internal/engine"
	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/HabitGarden/habit-quest-backend/internal/platform/metadata"
	"github.com/HabitGarden/habit-quest-backend/internal/streak"
	"github.com/HabitGarden/habit-quest-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeCachedDB(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := activity.PrimeCachedDB(); err != nil {
		return err
	}
	if err := streak.PrimeCachedDB(); err != nil {
		return err
	}
	if err := badge.PrimeCachedDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时热重建Redis中的全部派生数据。
// SQLite是权威存储，这里只是把排行榜、徽章镜像等视图重新推导出来。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := user.WarmupCache(); err != nil {
		return err
	}
	if err := streak.WarmupCache(); err != nil {
		return err
	}
	if err := badge.WarmupCache(); err != nil {
		return err
	}
	if err := engine.ClearSummaryCaches(); err != nil {
		return err
	}

	if err := metadata.MarkCacheRebuilt(database.DB); err != nil {
		fmt.Printf("警告: 无法记录缓存重建时间: %v\n", err)
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
