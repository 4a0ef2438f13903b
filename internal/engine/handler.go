package engine

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/HabitGarden/habit-quest-backend/internal/activity"
	"github.com/HabitGarden/habit-quest-backend/internal/badge"
	"github.com/HabitGarden/habit-quest-backend/internal/streak"
	"github.com/HabitGarden/habit-quest-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// RecordLogRequestBody 定义了提交日志时请求体的JSON结构
type RecordLogRequestBody struct {
	Kind            string   `json:"kind" binding:"required"`
	CategoryTags    []string `json:"categoryTags"`
	OccurredAt      string   `json:"occurredAt"` // RFC3339，缺省为服务器当前时间
	Timezone        string   `json:"timezone"`
	DurationMinutes int      `json:"durationMinutes"`
}

// CatalogEntryResponse 是目录查询的单条响应
type CatalogEntryResponse struct {
	Code      string `json:"code"`
	Category  string `json:"category"`
	Threshold int    `json:"threshold"`
	Tier      string `json:"tier"`
}

func currentUserID(c *gin.Context) string {
	if v, ok := c.Get(user.UserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SubmitLog 处理 POST /api/logs
func SubmitLog(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少用户身份"})
		return
	}

	var body RecordLogRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	kind := activity.Kind(body.Kind)
	if !kind.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的日志类型: " + body.Kind})
		return
	}

	occurredAt := time.Now()
	if body.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, body.OccurredAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的时间格式: " + body.OccurredAt})
			return
		}
		occurredAt = t
	}

	result, err := RecordActivityAndEvaluate(userID, kind, body.CategoryTags, occurredAt, body.Timezone, body.DurationMinutes)
	if err != nil {
		// 调用方输入问题返回400，其余才是服务端错误
		if errors.Is(err, user.ErrInvalidUserID) || errors.Is(err, activity.ErrInvalidKind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "处理日志失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetSummary 处理 GET /api/badges/summary
func GetSummary(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusOK, &BadgeSummary{
			GeneratedAt: time.Now(),
			Earned:      []EarnedBadgeDTO{},
			Progress:    []badge.ProgressEntry{},
		})
		return
	}

	summary, err := GetBadgeSummary(userID, c.Query("timezone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成摘要失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetCatalog 处理 GET /api/badges/catalog
func GetCatalog(c *gin.Context) {
	defs := badge.Catalog()
	entries := make([]CatalogEntryResponse, 0, len(defs))
	for _, def := range defs {
		threshold := def.Threshold
		if def.Kind == badge.KindBooleanEvent || def.Kind == badge.KindPersonalRecord {
			threshold = 1
		}
		entries = append(entries, CatalogEntryResponse{
			Code:      def.Code,
			Category:  def.Category,
			Threshold: threshold,
			Tier:      def.Tier,
		})
	}
	c.JSON(http.StatusOK, entries)
}

// GetStreak 处理 GET /api/streak
func GetStreak(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"currentLength": 0, "longestLength": 0})
		return
	}

	state, err := GetStreakState(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取连击状态失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"currentLength":   state.CurrentLength,
		"longestLength":   state.LongestLength,
		"lastActivityDay": state.LastActivityDay,
	})
}

// GetLeaderboard 处理 GET /api/streak/leaderboard
func GetLeaderboard(c *gin.Context) {
	limit := int64(10)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := streak.GetLeaderboard(limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
