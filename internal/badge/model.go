package badge

import "time"

// CatalogEntry 是徽章目录在SQLite中的镜像行，启动时由代码中的目录播种。
// 它只服务于UI查询；评估引擎读的是内存中的目录。
type CatalogEntry struct {
	Code      string `gorm:"primarykey;type:varchar(64)"`
	Category  string `gorm:"type:varchar(32);not null"`
	Kind      int    `gorm:"not null"`
	Threshold int    `gorm:"not null;default:0"`
	Tier      string `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Award 是一条永久的徽章授予记录。
// (UserID, Code) 上的唯一索引是幂等授予的承重结构:
// 并发评估同时插入同一枚徽章时，只有一条能成功，其余静默跳过。
// 记录一旦创建，永不修改，永不删除。
type Award struct {
	ID uint `gorm:"primarykey"`

	UserID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_award_user_code"`
	Code   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_award_user_code"`

	// EarnedAt 是徽章被授予的时刻。
	EarnedAt time.Time `gorm:"not null"`
}
