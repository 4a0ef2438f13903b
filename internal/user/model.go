package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了用户在SQLite中的持久化模型。
// 用户在第一次成功提交日志时被"激活"并写入这张表；
// 在此之前，cookie中的UUID只是一个临时身份。
type User struct {
	// UUID 是用户的主键，来自客户端Cookie。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// Timezone 是用户最近一次提交日志时使用的IANA时区名。
	// 仅作为摘要查询缺省时区的参考，日志本身的日历日在创建时已经定格。
	Timezone string `gorm:"type:varchar(64)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
