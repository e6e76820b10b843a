package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/config"
	"github.com/recipeshare/internal/db"
	applog "github.com/recipeshare/internal/log"
	"github.com/recipeshare/internal/router"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := applog.Init(cfg.GinMode, cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer applog.Sync()

	// 初始化数据库
	if err := db.Init(cfg.DatabaseDSN()); err != nil {
		applog.L().Fatal("failed to initialize database", zap.Error(err))
	}

	if err := db.EnsureUser(cfg.SeedAdminUser, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		applog.L().Fatal("failed to ensure seed user", zap.Error(err))
	}

	// 设置并运行 Gin 服务器
	r, err := router.SetupRouter(db.DB, cfg)
	if err != nil {
		applog.L().Fatal("failed to setup router", zap.Error(err))
	}

	applog.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		applog.L().Fatal("failed to run server", zap.Error(err))
	}
}
