package badge

import (
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
)

// EarnedSetKeyPrefix 加上用户UUID构成一个Redis Set的键，
// 镜像该用户已获徽章的代号集合。
// 它只是SQLite唯一索引的快速参考视图，不参与授予的正确性，
// Redis重启后由WarmupCache重建。
const EarnedSetKeyPrefix = "badge:earned:"

func earnedSetKey(userID string) string {
	return EarnedSetKeyPrefix + userID
}

// mirrorEarnedCode 在徽章成功落库后把代号写入Redis镜像。
// 失败只打日志：镜像缺失的后果只是下一次查询多读一次SQLite。
func mirrorEarnedCode(userID, code string) {
	if !database.RedisAvailable() {
		return
	}
	if err := database.RDB.SAdd(database.Ctx, earnedSetKey(userID), code).Err(); err != nil {
		fmt.Printf("警告: 更新已获徽章镜像失败 (用户 %s, 徽章 %s): %v\n", userID, code, err)
	}
}
