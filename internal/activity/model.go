package activity

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ErrInvalidKind 表示调用方提供的日志类型不在枚举中。
var ErrInvalidKind = errors.New("无效的日志类型")

// Kind 是日志类型的枚举。
type Kind string

const (
	// KindFood 表示一条饮食日志
	KindFood Kind = "food"
	// KindActivity 表示一条运动日志
	KindActivity Kind = "activity"
)

// IsValid 检查Kind是否是已知的日志类型。
func (k Kind) IsValid() bool {
	return k == KindFood || k == KindActivity
}

// Log 是一条不可变的活动事实，追加写入后永不修改或删除。
// 所有徽章与连击状态都是从这张表派生出来的。
type Log struct {
	// ID 是uuidv7字符串主键，按时间有序。
	ID string `gorm:"primarykey;type:varchar(36)"`

	// UserID 是提交这条日志的用户UUID。
	UserID string `gorm:"index;type:varchar(36);not null"`

	// Kind 是日志类型 (food / activity)。
	Kind Kind `gorm:"type:varchar(16);not null;index"`

	// CalendarDay 是这条日志计入的日历日 (用户时区的YYYY-MM-DD)。
	// 在创建时根据OccurredAt和用户时区换算一次，之后永不重算:
	// 即使用户事后改了时区，历史日志归属的日子也不会漂移。
	CalendarDay string `gorm:"type:varchar(10);not null;index"`

	// OccurredAt 是活动发生的时刻。
	OccurredAt time.Time `gorm:"not null"`

	// XPAwarded 是这条日志获得的经验值，>= 0，创建时一次性确定。
	XPAwarded int `gorm:"not null;default:0"`

	// CategoryTags 是从内容中提取的语义标签JSON数组，
	// 采用带命名空间的形式，例如 ["fruit:apple", "water"]。
	CategoryTags datatypes.JSON

	// DurationMinutes 是运动时长（分钟），仅运动日志使用。
	DurationMinutes int `gorm:"not null;default:0"`

	CreatedAt time.Time
}
