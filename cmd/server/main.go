package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/HabitGarden/habit-quest-backend/api"
	"github.com/HabitGarden/habit-quest-backend/internal/platform/config"
	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/HabitGarden/habit-quest-backend/internal/platform/health"
	"github.com/HabitGarden/habit-quest-backend/internal/platform/shutdown"
	"github.com/HabitGarden/habit-quest-backend/internal/platform/startup"
	"github.com/HabitGarden/habit-quest-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 阻塞式获取初始Run ID，之后健康检查器据此检测Redis重启
	health.InitializeRunID()

	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 两阶段停机：先优雅等待，再强制退出
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
