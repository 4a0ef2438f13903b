package badge

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "badge_test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&CatalogEntry{}, &Award{}))
	database.DB = db
	database.RDB = nil
}

func codes(awards []Award) []string {
	out := make([]string, 0, len(awards))
	for _, a := range awards {
		out = append(out, a.Code)
	}
	return out
}

func TestSatisfiedCounter(t *testing.T) {
	def, ok := LookupDefinition("FRUIT_EXPLORER")
	require.True(t, ok)

	require.False(t, Satisfied(def, &Context{FruitsDistinct: 4}))
	require.True(t, Satisfied(def, &Context{FruitsDistinct: 5}))
	require.True(t, Satisfied(def, &Context{FruitsDistinct: 9}))
}

func TestSatisfiedStreakMilestoneUsesAtLeast(t *testing.T) {
	def, ok := LookupDefinition("STREAK_7")
	require.True(t, ok)

	// 评估用 >= 而非精确匹配，保证可重跑、可补授
	require.False(t, Satisfied(def, &Context{CurrentStreak: 6}))
	require.True(t, Satisfied(def, &Context{CurrentStreak: 7}))
	require.True(t, Satisfied(def, &Context{CurrentStreak: 8}))
}

func TestSatisfiedBooleanAndRecord(t *testing.T) {
	first, _ := LookupDefinition("FIRST_FOOD")
	require.False(t, Satisfied(first, &Context{}))
	require.True(t, Satisfied(first, &Context{FoodLogCount: 1}))

	balanced, _ := LookupDefinition("BALANCED_DAY")
	require.False(t, Satisfied(balanced, &Context{}))
	require.True(t, Satisfied(balanced, &Context{BothKindsToday: true}))

	record, _ := LookupDefinition("RECORD_SETTER")
	require.False(t, Satisfied(record, &Context{}))
	require.True(t, Satisfied(record, &Context{DailyXPBest: 10}))
}

func TestEvaluateAwardsOnlyNewBadges(t *testing.T) {
	newTestDB(t)

	ctx := &Context{FoodLogCount: 1, DailyXPBest: 10, CurrentStreak: 1, Today: "2026-03-01"}
	newly, err := Evaluate("u1", ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"FIRST_FOOD", "RECORD_SETTER"}, codes(newly))

	// 状态未变时重跑评估，授予集合不变，也没有"新"徽章
	newly, err = Evaluate("u1", ctx)
	require.NoError(t, err)
	require.Empty(t, newly)

	awards, err := GetAwardsForUser("u1")
	require.NoError(t, err)
	require.Len(t, awards, 2)
}

func TestEvaluateStreakRegrowthDoesNotDuplicate(t *testing.T) {
	newTestDB(t)

	// 第一次到7天
	ctx := &Context{FoodLogCount: 1, DailyXPBest: 10, CurrentStreak: 7}
	newly, err := Evaluate("u1", ctx)
	require.NoError(t, err)
	require.Contains(t, codes(newly), "STREAK_7")

	// 中断后重新涨回7天：徽章已持有，不能重复授予
	ctx = &Context{FoodLogCount: 20, DailyXPBest: 10, CurrentStreak: 7}
	newly, err = Evaluate("u1", ctx)
	require.NoError(t, err)
	require.NotContains(t, codes(newly), "STREAK_7")

	var count int64
	require.NoError(t, database.DB.Model(&Award{}).
		Where("user_id = ? AND code = ?", "u1", "STREAK_7").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

// 同一新达成条件下的100次并发评估，每个代号至多产生一条授予记录。
func TestEvaluateConcurrentlyAwardsAtMostOnce(t *testing.T) {
	newTestDB(t)

	ctx := &Context{
		Today:          "2026-03-07",
		FoodLogCount:   12,
		FruitsDistinct: 5,
		DailyXPBest:    30,
		BothKindsToday: true,
		CurrentStreak:  7,
	}

	const workers = 100
	var wg sync.WaitGroup
	newlyTotal := make(chan string, workers*16)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			newly, err := Evaluate("u1", ctx)
			if err != nil {
				return
			}
			for _, a := range newly {
				newlyTotal <- a.Code
			}
		}()
	}
	wg.Wait()
	close(newlyTotal)

	// 所有并发评估报告的"新获得"合并后也不能有重复
	seen := make(map[string]int)
	for code := range newlyTotal {
		seen[code]++
	}
	for code, n := range seen {
		require.Equal(t, 1, n, "徽章 %s 被报告为新获得 %d 次", code, n)
	}

	// 数据库层面每个(user, code)至多一行
	var awards []Award
	require.NoError(t, database.DB.Where("user_id = ?", "u1").Find(&awards).Error)
	unique := make(map[string]bool)
	for _, a := range awards {
		key := a.UserID + "/" + a.Code
		require.False(t, unique[key], "发现重复授予: %s", key)
		unique[key] = true
	}
}

func TestInsertAwardIfAbsentRace(t *testing.T) {
	newTestDB(t)

	_, created, err := insertAwardIfAbsent("u1", "FIRST_FOOD")
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = insertAwardIfAbsent("u1", "FIRST_FOOD")
	require.NoError(t, err)
	require.False(t, created, "重复插入必须是静默的no-op")
}
