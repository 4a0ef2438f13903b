package activity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/HabitGarden/habit-quest-backend/pkg/calendar"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreateLog 创建并持久化一条新的活动日志。
// 日历日在这里根据occurredAt和用户时区换算一次并定格；
// 无效时区按日历解析器的规则静默回退到UTC，绝不因此拒绝日志。
func CreateLog(userID string, kind Kind, tags []string, occurredAt time.Time, timezone string, durationMinutes int) (*Log, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	if kind != KindActivity {
		durationMinutes = 0
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成日志ID: %w", err)
	}

	normalized := NormalizeTags(tags)
	tagsJSON, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("无法序列化标签: %w", err)
	}

	entry := Log{
		ID:              id.String(),
		UserID:          userID,
		Kind:            kind,
		CalendarDay:     calendar.ResolveDay(occurredAt, timezone),
		OccurredAt:      occurredAt,
		XPAwarded:       computeXP(kind, normalized, durationMinutes),
		CategoryTags:    datatypes.JSON(tagsJSON),
		DurationMinutes: durationMinutes,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("无法持久化日志: %w", err)
	}
	return &entry, nil
}

// GetLogsForUser 按时间顺序返回用户的全部日志。
func GetLogsForUser(userID string) ([]Log, error) {
	var logs []Log
	err := database.DB.Where("user_id = ?", userID).Order("occurred_at asc").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取用户日志: %w", err)
	}
	return logs, nil
}

// GetLogsForUserByKind 返回用户某一类型的全部日志。
func GetLogsForUserByKind(userID string, kind Kind) ([]Log, error) {
	var logs []Log
	err := database.DB.Where("user_id = ? AND kind = ?", userID, kind).Order("occurred_at asc").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取用户日志: %w", err)
	}
	return logs, nil
}

// GetLogsForUserInDayRange 返回用户在[fromDay, toDay]闭区间内的日志。
// 日历日是定宽字符串，字符串比较即日期比较。
func GetLogsForUserInDayRange(userID string, fromDay, toDay string) ([]Log, error) {
	var logs []Log
	err := database.DB.
		Where("user_id = ? AND calendar_day >= ? AND calendar_day <= ?", userID, fromDay, toDay).
		Order("occurred_at asc").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取用户日志: %w", err)
	}
	return logs, nil
}

// Tags 反序列化一条日志的标签数组。
func (l *Log) Tags() []string {
	if len(l.CategoryTags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(l.CategoryTags, &tags); err != nil {
		return nil
	}
	return tags
}
