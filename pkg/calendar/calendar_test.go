package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveDayUsesWallClock(t *testing.T) {
	// 纽约2026-03-01 23:30，UTC已经是03-02 04:30
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	instant := time.Date(2026, 3, 1, 23, 30, 0, 0, loc)

	require.Equal(t, "2026-03-02", instant.UTC().Format(DayLayout))
	require.Equal(t, "2026-03-01", ResolveDay(instant, "America/New_York"))
}

func TestResolveDayFallsBackToUTC(t *testing.T) {
	instant := time.Date(2026, 3, 2, 4, 30, 0, 0, time.UTC)

	require.Equal(t, "2026-03-02", ResolveDay(instant, ""))
	require.Equal(t, "2026-03-02", ResolveDay(instant, "Not/AZone"))
	require.Equal(t, "2026-03-02", ResolveDay(instant, "garbage"))
}

func TestDayDiff(t *testing.T) {
	tests := []struct {
		earlier, later string
		want           int
		ok             bool
	}{
		{"2026-03-01", "2026-03-02", 1, true},
		{"2026-03-01", "2026-03-01", 0, true},
		{"2026-03-01", "2026-03-05", 4, true},
		{"2026-03-05", "2026-03-01", -4, true},
		{"2026-02-28", "2026-03-01", 1, true}, // 非闰年
		{"2024-02-28", "2024-03-01", 2, true}, // 闰年
		{"2026-12-31", "2027-01-01", 1, true},
		{"bad", "2026-03-01", 0, false},
		{"2026-03-01", "", 0, false},
	}
	for _, tt := range tests {
		got, ok := DayDiff(tt.earlier, tt.later)
		require.Equal(t, tt.ok, ok, "%s -> %s", tt.earlier, tt.later)
		require.Equal(t, tt.want, got, "%s -> %s", tt.earlier, tt.later)
	}
}

func TestDayDiffCrossesDSTBoundary(t *testing.T) {
	// 2026-03-08 是美国夏令时切换日，当天只有23个小时。
	// 基于日期串的减法不受影响。
	got, ok := DayDiff("2026-03-07", "2026-03-08")
	require.True(t, ok)
	require.Equal(t, 1, got)
}

func TestNextDay(t *testing.T) {
	require.Equal(t, "2026-03-01", NextDay("2026-02-28"))
	require.Equal(t, "2027-01-01", NextDay("2026-12-31"))
	require.Equal(t, "", NextDay("nonsense"))
}
