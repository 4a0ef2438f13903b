package activity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity_test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Log{}))
	database.DB = db
	database.RDB = nil
}

// mustLog 以固定UTC时刻在指定日历日上种一条日志。
func mustLog(t *testing.T, userID string, kind Kind, day string, tags []string, duration int) *Log {
	t.Helper()
	occurredAt, err := time.Parse(time.RFC3339, day+"T12:00:00Z")
	require.NoError(t, err)
	entry, err := CreateLog(userID, kind, tags, occurredAt, "UTC", duration)
	require.NoError(t, err)
	require.Equal(t, day, entry.CalendarDay)
	return entry
}

func TestCreateLogRejectsInvalidKind(t *testing.T) {
	newTestDB(t)
	_, err := CreateLog("u1", Kind("sleep"), nil, time.Now(), "UTC", 0)
	require.Error(t, err)
}

func TestCreateLogNormalizesTags(t *testing.T) {
	newTestDB(t)
	entry := mustLog(t, "u1", KindFood, "2026-03-01", []string{" Fruit:Apple ", "fruit:apple", "", "water"}, 0)
	require.Equal(t, []string{"fruit:apple", "water"}, entry.Tags())
}

func TestCreateLogFreezesCalendarDay(t *testing.T) {
	newTestDB(t)
	// 纽约23:30，UTC已是次日
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	occurredAt := time.Date(2026, 3, 1, 23, 30, 0, 0, loc)

	entry, err := CreateLog("u1", KindFood, []string{"fruit:apple"}, occurredAt, "America/New_York", 0)
	require.NoError(t, err)
	require.Equal(t, "2026-03-01", entry.CalendarDay)

	// 无效时区回退UTC，而不是报错
	entry2, err := CreateLog("u1", KindFood, nil, occurredAt, "Mars/Olympus", 0)
	require.NoError(t, err)
	require.Equal(t, "2026-03-02", entry2.CalendarDay)
}

func TestBuildContextCountsDistinctFruits(t *testing.T) {
	newTestDB(t)

	fruits := []string{"fruit:apple", "fruit:banana", "fruit:pear", "fruit:mango", "fruit:kiwi"}
	days := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"}
	for i, f := range fruits {
		mustLog(t, "u1", KindFood, days[i], []string{f}, 0)
	}

	ctx, err := BuildContext("u1", "2026-03-05")
	require.NoError(t, err)
	require.Equal(t, 5, ctx.FruitsDistinct)

	// 重复记录已见过的水果不增加计数
	mustLog(t, "u1", KindFood, "2026-03-06", []string{"fruit:apple"}, 0)
	ctx, err = BuildContext("u1", "2026-03-06")
	require.NoError(t, err)
	require.Equal(t, 5, ctx.FruitsDistinct)
	require.Equal(t, 6, ctx.FoodLogCount)
}

func TestBuildContextVarietyIgnoresNonFoodTags(t *testing.T) {
	newTestDB(t)

	fruits := []string{"fruit:apple", "fruit:banana", "fruit:pear", "fruit:mango"}
	days := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04"}
	for i, f := range fruits {
		mustLog(t, "u1", KindFood, days[i], []string{f}, 0)
	}

	// 运动日志上的水果/蔬菜标签不计入饮食变种计数
	mustLog(t, "u1", KindActivity, "2026-03-05", []string{"fruit:kiwi", "veggie:carrot"}, 30)

	ctx, err := BuildContext("u1", "2026-03-05")
	require.NoError(t, err)
	require.Equal(t, 4, ctx.FruitsDistinct)
	require.Equal(t, 0, ctx.VeggiesDistinct)

	// 喝水按天计，不限日志种类
	mustLog(t, "u1", KindActivity, "2026-03-06", []string{"water"}, 30)
	ctx, err = BuildContext("u1", "2026-03-06")
	require.NoError(t, err)
	require.Equal(t, 1, ctx.WaterDayCount)
}

func TestBuildContextWaterDays(t *testing.T) {
	newTestDB(t)

	// 同一天多次喝水只算一天
	mustLog(t, "u1", KindFood, "2026-03-01", []string{"water"}, 0)
	mustLog(t, "u1", KindFood, "2026-03-01", []string{"water"}, 0)
	mustLog(t, "u1", KindFood, "2026-03-02", []string{"water"}, 0)

	ctx, err := BuildContext("u1", "2026-03-02")
	require.NoError(t, err)
	require.Equal(t, 2, ctx.WaterDayCount)
}

func TestBuildContextBothKindsToday(t *testing.T) {
	newTestDB(t)

	mustLog(t, "u1", KindFood, "2026-03-01", nil, 0)
	mustLog(t, "u1", KindActivity, "2026-03-02", nil, 30)

	// 3月1日只有饮食
	ctx, err := BuildContext("u1", "2026-03-01")
	require.NoError(t, err)
	require.False(t, ctx.BothKindsToday)

	// 3月2日补一条饮食后，两类齐全
	mustLog(t, "u1", KindFood, "2026-03-02", nil, 0)
	ctx, err = BuildContext("u1", "2026-03-02")
	require.NoError(t, err)
	require.True(t, ctx.BothKindsToday)
}

func TestBuildContextDailyXPBest(t *testing.T) {
	newTestDB(t)

	// 3月1日: 一条不带标签的饮食 = 10 XP
	mustLog(t, "u1", KindFood, "2026-03-01", nil, 0)
	// 3月2日: 30分钟运动(10+6) + 带两个标签的饮食(10+4) = 30 XP
	mustLog(t, "u1", KindActivity, "2026-03-02", nil, 30)
	mustLog(t, "u1", KindFood, "2026-03-02", []string{"fruit:apple", "veggie:carrot"}, 0)

	ctx, err := BuildContext("u1", "2026-03-02")
	require.NoError(t, err)
	require.Equal(t, 30, ctx.DailyXPBest)
}

func TestBuildContextIsPureAndRepeatable(t *testing.T) {
	newTestDB(t)

	mustLog(t, "u1", KindFood, "2026-03-01", []string{"fruit:apple", "water"}, 0)
	mustLog(t, "u1", KindActivity, "2026-03-01", nil, 45)

	first, err := BuildContext("u1", "2026-03-01")
	require.NoError(t, err)
	second, err := BuildContext("u1", "2026-03-01")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputeXPCaps(t *testing.T) {
	// 运动时长加成封顶10点
	require.Equal(t, 20, computeXP(KindActivity, nil, 120))
	// 标签加成封顶6点
	require.Equal(t, 16, computeXP(KindFood, []string{"a", "b", "c", "d", "e"}, 0))
	// 饮食日志不吃时长加成
	require.Equal(t, 10, computeXP(KindFood, nil, 60))
}
