package activity

import (
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
)

// PrimeCachedDB 是activity模块的初始化入口。
// 日志表没有对应的Redis派生数据，评估时总是直读SQLite。
func PrimeCachedDB() error {
	if err := database.DB.AutoMigrate(&Log{}); err != nil {
		return fmt.Errorf("无法迁移activity日志表: %w", err)
	}
	fmt.Println("Activity数据库表迁移成功。")
	return nil
}
