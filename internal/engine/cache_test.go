package engine

import (
	"testing"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/stretchr/testify/require"
)

func TestSummaryCacheKeyShape(t *testing.T) {
	key := summaryCacheKey(testUser, "2026-03-01")
	require.Equal(t, SummaryCacheKeyPrefix+testUser+":2026-03-01", key)
}

// Redis不可用时所有缓存操作都必须是安静的no-op。
func TestCacheOpsAreNoOpWithoutRedis(t *testing.T) {
	database.RDB = nil

	require.Nil(t, getCachedSummary(testUser, "2026-03-01"))
	setCachedSummary(testUser, "2026-03-01", &BadgeSummary{UserID: testUser})
	invalidateSummaryCache(testUser)
	require.Nil(t, getCachedSummary(testUser, "2026-03-01"))
}
