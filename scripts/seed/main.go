package main

import (
	"context"
	"fmt"
	"log"

	"github.com/recipeshare/internal/config"
	"github.com/recipeshare/internal/db"
	applog "github.com/recipeshare/internal/log"
)

// 示例数据生成器
func main() {
	cfg := config.Load()
	if err := applog.Init(cfg.GinMode, cfg.LogLevel); err != nil {
		log.Fatal("日志初始化失败:", err)
	}
	defer applog.Sync()

	// 初始化数据库
	if err := db.Init(cfg.DatabaseDSN()); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成示例数据...")

	result, err := seed(context.Background(), db.DB, cfg.BcryptCost)
	if err != nil {
		log.Fatal("生成示例数据失败:", err)
	}

	fmt.Println("示例数据生成完成！")
	fmt.Printf("用户: 新增 %d 个 (密码均为 %s)\n", result.Users, demoPassword)
	fmt.Printf("配料: 共 %d 种\n", result.Ingredients)
	fmt.Printf("菜谱: 新增 %d 个\n", result.Recipes)
}
