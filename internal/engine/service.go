package engine

import (
	"fmt"
	"time"

	"github.com/HabitGarden/habit-quest-backend/internal/activity"
	"github.com/HabitGarden/habit-quest-backend/internal/badge"
	"github.com/HabitGarden/habit-quest-backend/internal/streak"
	"github.com/HabitGarden/habit-quest-backend/internal/user"
	"github.com/HabitGarden/habit-quest-backend/pkg/calendar"
)

// --- Service-Level Data Transfer Objects (DTOs) ---

// StreakResult 描述一次提交对连击状态的影响。
type StreakResult struct {
	CurrentLength int `json:"currentLength"`
	LongestLength int `json:"longestLength"`
	// Changed 表示连击发生了值得通知用户的真实变化。
	// 静默重置和同日重复都是false。
	Changed bool `json:"changed"`
	// Milestone 在本次提交恰好达成某个里程碑时为该里程碑天数，否则为0。
	Milestone int `json:"milestone,omitempty"`
}

// RecordResult 是一次日志提交的完整结果。
type RecordResult struct {
	Log       *activity.Log `json:"log"`
	Streak    StreakResult  `json:"streak"`
	NewBadges []badge.Award `json:"newBadges"`
}

// EarnedBadgeDTO 是摘要中一枚已获徽章的数据。
type EarnedBadgeDTO struct {
	Code     string    `json:"code"`
	EarnedAt time.Time `json:"earnedAt"`
}

// PersonalRecordsDTO 是按需从全量历史重算的个人纪录。
type PersonalRecordsDTO struct {
	DailyXPBest       int `json:"dailyXpBest"`
	LongestStreakEver int `json:"longestStreakEver"`
}

// BadgeSummary 是只读的徽章总览，可以安全地被轮询。
type BadgeSummary struct {
	UserID          string                `json:"userId"`
	GeneratedAt     time.Time             `json:"generatedAt"`
	Earned          []EarnedBadgeDTO      `json:"earned"`
	Progress        []badge.ProgressEntry `json:"progress"`
	PersonalRecords PersonalRecordsDTO    `json:"personalRecords"`
}

// --- Service Functions ---

// RecordActivityAndEvaluate 是记录日志后的唯一同步入口。
// 流程: 持久化日志 → CAS推进连击 → 归约历史 → 评估并幂等授予徽章。
//
// 日志先落库：之后任何一步失败，用户的这条记录都不会丢。
// 游戏化状态的更新失败只意味着下一次提交时评估会从头重跑一遍，
// 评估是持久状态的纯函数，重跑的结果与这次本应得到的结果相同。
func RecordActivityAndEvaluate(userID string, kind activity.Kind, tags []string, occurredAt time.Time, timezone string, durationMinutes int) (*RecordResult, error) {
	if err := user.EnsureActivated(userID, timezone); err != nil {
		return nil, err
	}

	entry, err := activity.CreateLog(userID, kind, tags, occurredAt, timezone, durationMinutes)
	if err != nil {
		return nil, err
	}

	state, tr, err := streak.Apply(userID, entry.CalendarDay)
	if err != nil {
		return nil, fmt.Errorf("日志已记录，但连击更新失败: %w", err)
	}

	result := &RecordResult{
		Log: entry,
		Streak: StreakResult{
			CurrentLength: state.CurrentLength,
			LongestLength: state.LongestLength,
			Changed:       tr.Changed(),
		},
	}
	if m, ok := streak.MilestoneReached(tr, state.CurrentLength); ok {
		result.Streak.Milestone = m
	}

	// "今天"锚定在触发本次评估的日志所属的日历日上
	ctx, err := activity.BuildContext(userID, entry.CalendarDay)
	if err != nil {
		return nil, fmt.Errorf("日志已记录，但历史聚合失败: %w", err)
	}
	ctx.CurrentStreak = state.CurrentLength
	ctx.LongestStreak = state.LongestLength

	newAwards, err := badge.Evaluate(userID, ctx)
	if err != nil {
		return nil, fmt.Errorf("日志已记录，但徽章评估失败: %w", err)
	}
	result.NewBadges = newAwards
	if result.NewBadges == nil {
		result.NewBadges = []badge.Award{}
	}

	// 摘要缓存已经过期，让下一次查询重新生成
	invalidateSummaryCache(userID)

	return result, nil
}

// GetBadgeSummary 生成用户的徽章总览。只读，不产生任何状态变化。
// timezone参数决定"今天"的锚点，缺省为UTC；
// 时区只影响BALANCED_DAY这类当日条件的进度展示，不影响任何已授予的徽章。
func GetBadgeSummary(userID string, timezone string) (*BadgeSummary, error) {
	if timezone == "" {
		// 摘要请求不带时区时，参考用户最近一次提交的时区
		timezone = user.Timezone(userID)
	}
	today := calendar.Today(timezone)

	if cached := getCachedSummary(userID, today); cached != nil {
		return cached, nil
	}

	state, err := streak.GetState(userID)
	if err != nil {
		return nil, err
	}

	ctx, err := activity.BuildContext(userID, today)
	if err != nil {
		return nil, err
	}
	ctx.CurrentStreak = state.CurrentLength
	ctx.LongestStreak = state.LongestLength

	awards, err := badge.GetAwardsForUser(userID)
	if err != nil {
		return nil, err
	}
	earned := make([]EarnedBadgeDTO, 0, len(awards))
	for _, a := range awards {
		earned = append(earned, EarnedBadgeDTO{Code: a.Code, EarnedAt: a.EarnedAt})
	}

	progress, err := badge.ProgressFor(userID, ctx)
	if err != nil {
		return nil, err
	}

	summary := &BadgeSummary{
		UserID:      userID,
		GeneratedAt: time.Now(),
		Earned:      earned,
		Progress:    progress,
		PersonalRecords: PersonalRecordsDTO{
			DailyXPBest:       ctx.DailyXPBest,
			LongestStreakEver: state.LongestLength,
		},
	}

	setCachedSummary(userID, today, summary)
	return summary, nil
}

// GetStreakState 返回用户当前的连击状态。
func GetStreakState(userID string) (streak.State, error) {
	return streak.GetState(userID)
}
