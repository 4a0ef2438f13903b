package badge

import (
	"errors"
	"fmt"
	"time"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertAwardIfAbsent 以原子的insert-if-absent语义尝试授予徽章。
// 返回 (award, created, err)：created为false表示该用户已持有此徽章。
//
// 幂等性完全由(user_id, code)唯一索引保证，不依赖任何进程内锁。
// 引擎本身没有可加锁的共享状态，两个并发评估各自尝试插入，
// 数据库保证至多一条落库。
func insertAwardIfAbsent(userID, code string) (Award, bool, error) {
	award := Award{
		UserID:   userID,
		Code:     code,
		EarnedAt: time.Now().UTC(),
	}

	res := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "code"}},
		DoNothing: true,
	}).Create(&award)
	if res.Error != nil {
		// 某些驱动在DoNothing下仍会把冲突翻译成错误，同样按"已持有"处理
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return Award{}, false, nil
		}
		return Award{}, false, fmt.Errorf("无法写入徽章授予记录: %w", res.Error)
	}

	created := res.RowsAffected == 1
	return award, created, nil
}

// GetAwardsForUser 返回用户已获得的全部徽章，按获得时间排序。
func GetAwardsForUser(userID string) ([]Award, error) {
	var awards []Award
	err := database.DB.Where("user_id = ?", userID).Order("earned_at asc").Find(&awards).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取徽章授予记录: %w", err)
	}
	return awards, nil
}

// GetEarnedCodeSet 返回用户已获徽章代号的集合。
func GetEarnedCodeSet(userID string) (map[string]bool, error) {
	awards, err := GetAwardsForUser(userID)
	if err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(awards))
	for _, a := range awards {
		earned[a.Code] = true
	}
	return earned, nil
}
