package database

import (
	"context"
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是全局的Redis客户端实例。
// Redis中只存放可以从SQLite重建的派生数据（排行榜、已获徽章镜像、摘要缓存）。
var RDB *redis.Client

// Ctx 是Redis操作使用的全局上下文。
var Ctx = context.Background()

// InitRedis 初始化与Redis的连接。
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	_, err := RDB.Ping(Ctx).Result()
	if err != nil {
		panic("无法连接到Redis: " + err.Error())
	}

	fmt.Println("Redis 连接成功！")
}
