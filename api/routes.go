package api

import (
	"github.com/HabitGarden/habit-quest-backend/internal/engine"
	"github.com/HabitGarden/habit-quest-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 日志提交是唯一的写入口，评估在同一个请求内同步完成
		api.POST("/logs", user.EnsureUserCookieMiddleware(), engine.SubmitLog)

		// 徽章相关的路由组 /api/badges
		badgeRoutes := api.Group("/badges")
		{
			badgeRoutes.GET("/summary", user.LoadUserMiddleware(), engine.GetSummary)
			badgeRoutes.GET("/catalog", engine.GetCatalog)
		}

		// 连击相关的路由组 /api/streak
		streakRoutes := api.Group("/streak")
		{
			streakRoutes.GET("", user.LoadUserMiddleware(), engine.GetStreak)
			streakRoutes.GET("/leaderboard", engine.GetLeaderboard)
		}
	}
}
