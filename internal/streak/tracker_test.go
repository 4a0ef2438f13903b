package streak

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdvanceFirstActivity(t *testing.T) {
	next, tr := Advance(State{UserID: "u1"}, "2026-03-01")

	require.Equal(t, TransitionStarted, tr)
	require.True(t, tr.Changed())
	require.Equal(t, 1, next.CurrentLength)
	require.Equal(t, 1, next.LongestLength)
	require.Equal(t, "2026-03-01", next.LastActivityDay)
}

func TestAdvanceSameDayIsNoOp(t *testing.T) {
	prev := State{UserID: "u1", CurrentLength: 4, LongestLength: 6, LastActivityDay: "2026-03-01"}

	next, tr := Advance(prev, "2026-03-01")

	require.Equal(t, TransitionNone, tr)
	require.False(t, tr.Changed())
	require.Equal(t, prev, next)
}

func TestAdvanceConsecutiveDayExtends(t *testing.T) {
	prev := State{UserID: "u1", CurrentLength: 6, LongestLength: 6, LastActivityDay: "2026-03-01"}

	next, tr := Advance(prev, "2026-03-02")

	require.Equal(t, TransitionExtended, tr)
	require.True(t, tr.Changed())
	require.Equal(t, 7, next.CurrentLength)
	require.Equal(t, 7, next.LongestLength)
	require.Equal(t, "2026-03-02", next.LastActivityDay)
}

func TestAdvanceGapResetsSilently(t *testing.T) {
	prev := State{UserID: "u1", CurrentLength: 9, LongestLength: 9, LastActivityDay: "2026-03-01"}

	next, tr := Advance(prev, "2026-03-05")

	require.Equal(t, TransitionReset, tr)
	require.False(t, tr.Changed(), "重置是静默的，不应被庆祝")
	require.Equal(t, 1, next.CurrentLength)
	require.Equal(t, 9, next.LongestLength, "历史最长不受重置影响")
	require.Equal(t, "2026-03-05", next.LastActivityDay)
}

func TestAdvanceBackdatedDayIsExplicitNoOp(t *testing.T) {
	prev := State{UserID: "u1", CurrentLength: 3, LongestLength: 5, LastActivityDay: "2026-03-10"}

	// 回填3月2日的日志：连击不变，指针绝不后退
	next, tr := Advance(prev, "2026-03-02")

	require.Equal(t, TransitionNone, tr)
	require.Equal(t, prev, next)
	require.Equal(t, "2026-03-10", next.LastActivityDay)
}

func TestAdvanceInvalidDayIsNoOp(t *testing.T) {
	prev := State{UserID: "u1", CurrentLength: 2, LongestLength: 2, LastActivityDay: "2026-03-01"}

	next, tr := Advance(prev, "not-a-day")

	require.Equal(t, TransitionNone, tr)
	require.Equal(t, prev, next)
}

// 不变量: 任何一串转移之后 LongestLength >= CurrentLength 恒成立。
func TestAdvanceLongestNeverBelowCurrent(t *testing.T) {
	days := []string{
		"2026-03-01", "2026-03-02", "2026-03-03", // 连到3
		"2026-03-03",               // 同日重复
		"2026-03-10",               // 重置
		"2026-03-11", "2026-03-12", // 重新连击
		"2026-03-05", // 回填
		"2026-03-13", "2026-03-14", "2026-03-15", "2026-03-16",
	}

	st := State{UserID: "u1"}
	for _, d := range days {
		st, _ = Advance(st, d)
		require.GreaterOrEqual(t, st.LongestLength, st.CurrentLength, "day %s", d)
	}
	// 3月10日起连续7天，中间的回填是no-op
	require.Equal(t, 7, st.CurrentLength)
	require.Equal(t, 7, st.LongestLength)
}

func TestMilestoneReached(t *testing.T) {
	// 恰好到达里程碑的真实变化才触发
	m, ok := MilestoneReached(TransitionExtended, 7)
	require.True(t, ok)
	require.Equal(t, 7, m)

	m, ok = MilestoneReached(TransitionStarted, 1)
	require.False(t, ok)
	require.Zero(t, m)

	// 非里程碑长度不触发
	_, ok = MilestoneReached(TransitionExtended, 8)
	require.False(t, ok)

	// 重置到1不触发，即便1天也到不了任何里程碑
	_, ok = MilestoneReached(TransitionReset, 1)
	require.False(t, ok)

	// 同日no-op永不触发，即使长度正好是里程碑
	_, ok = MilestoneReached(TransitionNone, 7)
	require.False(t, ok)
}

func TestGapResetNeverFiresMilestone(t *testing.T) {
	prev := State{UserID: "u1", CurrentLength: 6, LongestLength: 6, LastActivityDay: "2026-03-01"}

	next, tr := Advance(prev, "2026-03-09")

	require.Equal(t, 1, next.CurrentLength)
	_, ok := MilestoneReached(tr, next.CurrentLength)
	require.False(t, ok)
}
