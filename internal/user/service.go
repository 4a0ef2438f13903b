package user

import (
	"errors"
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidUserID 表示调用方提供的用户UUID不合法。
var ErrInvalidUserID = errors.New("无效的用户UUID")

// CreateProvisionalUser 生成一个临时的、尚未持久化的新用户UUID。
// 这个UUID会被设置到cookie中，在第一次提交日志前不会落库。
func CreateProvisionalUser() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidUUID 检查一个字符串是否是合法的UUID。
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsUserActivated 检查一个UUID是否已被激活。
// Redis可用时优先查缓存，否则回退到SQLite。
func IsUserActivated(uuidStr string) (bool, error) {
	if uuidStr == "" {
		return false, nil
	}

	if database.RedisAvailable() {
		exists, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, uuidStr).Result()
		if err == nil {
			return exists, nil
		}
		// 缓存查询失败时继续走SQLite，不让缓存故障阻塞主流程
		fmt.Printf("警告: 检查Redis用户缓存时出错: %v\n", err)
	}

	var count int64
	if err := database.DB.Model(&User{}).Where("uuid = ?", uuidStr).Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法从SQLite查询用户: %w", err)
	}
	return count > 0, nil
}

// EnsureActivated 确保一个用户已经持久化，并记录其最近使用的时区。
// 重复激活是无害的no-op，允许并发调用。
func EnsureActivated(uuidStr string, timezone string) error {
	if !IsValidUUID(uuidStr) {
		return fmt.Errorf("%w: %s", ErrInvalidUserID, uuidStr)
	}

	activated, err := IsUserActivated(uuidStr)
	if err != nil {
		return err
	}
	if activated {
		// 已激活用户只需要刷新时区参考
		if timezone != "" {
			if err := database.DB.Model(&User{}).Where("uuid = ?", uuidStr).Update("timezone", timezone).Error; err != nil {
				return fmt.Errorf("无法更新用户时区: %w", err)
			}
		}
		return nil
	}

	newUser := User{UUID: uuidStr, Timezone: timezone}
	if err := database.DB.Create(&newUser).Error; err != nil {
		// 并发激活同一用户时，后到者会撞上主键冲突，这不是错误
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("无法在SQLite中创建新用户: %w", err)
		}
	}

	if database.RedisAvailable() {
		if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, uuidStr).Err(); err != nil {
			// 缓存写入失败不回滚：SQLite才是权威，缓存会在下次重建时补齐
			fmt.Printf("警告: 无法将新用户 %s 添加到Redis缓存: %v\n", uuidStr, err)
		}
	}
	return nil
}

// Timezone 返回用户最近记录的时区，未知时返回空字符串。
func Timezone(uuidStr string) string {
	var u User
	if err := database.DB.Select("timezone").Where("uuid = ?", uuidStr).First(&u).Error; err != nil {
		return ""
	}
	return u.Timezone
}
