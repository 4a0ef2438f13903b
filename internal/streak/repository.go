package streak

import (
	"errors"
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyMaxRetries 限制乐观并发冲突时的重读次数。
// 同一用户的并发提交极少超过一两次冲突，3次足够。
const applyMaxRetries = 3

// GetState 读取用户当前的连击状态。从未活动过的用户返回零值状态。
func GetState(userID string) (State, error) {
	var st State
	err := database.DB.Where("user_id = ?", userID).First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return State{UserID: userID}, nil
		}
		return State{}, fmt.Errorf("无法读取连击状态: %w", err)
	}
	return st, nil
}

// Apply 将一个新活动日应用到用户的连击状态上，并持久化结果。
//
// 写入使用乐观的compare-and-set：UPDATE带上旧值作为WHERE条件，
// RowsAffected为0说明有并发提交抢先修改了状态，此时重读重算。
// 这保证了同一天的两次并发提交不会把连击加两次：
// 后到者重读后会走同日no-op分支，结果与任何提交顺序都一致。
func Apply(userID string, newDay string) (State, Transition, error) {
	for attempt := 0; attempt < applyMaxRetries; attempt++ {
		prev, err := GetState(userID)
		if err != nil {
			return State{}, TransitionNone, err
		}

		next, tr := Advance(prev, newDay)
		if tr == TransitionNone {
			// 同日重复或回填，状态不变，无需写入
			return prev, tr, nil
		}

		var applied bool
		if prev.LastActivityDay == "" && prev.CreatedAt.IsZero() {
			applied, err = insertInitialState(next)
		} else {
			applied, err = casUpdateState(prev, next)
		}
		if err != nil {
			return State{}, TransitionNone, err
		}
		if applied {
			refreshLeaderboardEntry(userID, next.CurrentLength)
			return next, tr, nil
		}
		// CAS失败：并发者已经写入，重读最新状态再算一次
	}
	return State{}, TransitionNone, fmt.Errorf("连击状态更新冲突次数过多，放弃: 用户 %s", userID)
}

// insertInitialState 为首次活动的用户创建状态行。
// 并发的首次提交中只有一个能成功插入，其余通过DoNothing安静失败并重试。
func insertInitialState(st State) (bool, error) {
	res := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&st)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("无法创建连击状态: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// casUpdateState 以旧值为前提条件更新状态行。
func casUpdateState(prev, next State) (bool, error) {
	res := database.DB.Model(&State{}).
		Where("user_id = ? AND last_activity_day = ? AND current_length = ?",
			prev.UserID, prev.LastActivityDay, prev.CurrentLength).
		Updates(map[string]interface{}{
			"current_length":    next.CurrentLength,
			"longest_length":    next.LongestLength,
			"last_activity_day": next.LastActivityDay,
		})
	if res.Error != nil {
		return false, fmt.Errorf("无法更新连击状态: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
