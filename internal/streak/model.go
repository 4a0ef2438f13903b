package streak

import "time"

// State 是每个用户的连续打卡状态，由Tracker在每个活动日推进一次。
// 不变量: LongestLength >= CurrentLength 在任何一次转移之后都成立。
type State struct {
	// UserID 是用户UUID，一个用户只有一行。
	UserID string `gorm:"primarykey;type:varchar(36)"`

	// CurrentLength 是当前连续活动天数。
	CurrentLength int `gorm:"not null;default:0"`

	// LongestLength 是历史最长连续活动天数。
	LongestLength int `gorm:"not null;default:0"`

	// LastActivityDay 是最近一个计入连击的日历日 (YYYY-MM-DD)，
	// 从未活动过时为空字符串。它只会向前移动，永远不会回退。
	LastActivityDay string `gorm:"type:varchar(10);not null;default:''"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transition 标识一次状态转移的种类。
type Transition int

const (
	// TransitionNone 同日重复、回填过去的日期或非法输入，状态不变。
	TransitionNone Transition = iota
	// TransitionStarted 首次活动，连击从1开始。
	TransitionStarted
	// TransitionExtended 与上一个活动日正好相隔一天，连击+1。
	TransitionExtended
	// TransitionReset 间隔两天以上，连击静默地重置为1，不触发任何庆祝。
	TransitionReset
)

// Changed 报告这次转移是否是一次值得向用户展示的真实连击变化。
// 重置不算：中断连击不是需要通知的事件。
func (t Transition) Changed() bool {
	return t == TransitionStarted || t == TransitionExtended
}
