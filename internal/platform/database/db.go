package database

import (
	"fmt"
	"log"
	"os"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是全局的GORM数据库实例，SQLite是所有领域数据的权威存储。
var DB *gorm.DB

// InitDB 初始化数据库连接。
func InitDB(cfg config.SqliteConfig) {
	var err error

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent,
			Colorful:      true,
		},
	)

	DB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: newLogger,
		// 让唯一索引冲突以gorm.ErrDuplicatedKey的形式返回，
		// 徽章的幂等授予依赖这一点
		TranslateError: true,
	})
	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}
