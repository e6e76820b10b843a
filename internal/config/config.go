package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabaseURL        string
	DatabasePath       string
	SessionSecret      string
	GinMode            string
	LogLevel           string
	UploadDir          string
	MaxUploadBytes     int64
	BcryptCost         int
	RecentRecipeWindow time.Duration
	SeedAdminUser      string
	SeedAdminEmail     string
	SeedAdminPassword  string
}

const (
	defaultMaxUploadMB        = 8
	defaultRecentRecipeWindow = 24 * time.Hour
)

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 工作目录下存在 .env 文件时会先加载它，已设置的环境变量不会被覆盖。
func Load() AppConfig {
	_ = godotenv.Load()

	port := envOrDefault("PORT", "5555")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DatabasePath:       envOrDefault("DATABASE_PATH", "recipeshare.db"),
		SessionSecret:      envOrDefault("SESSION_SECRET", "recipeshare-dev-secret"),
		GinMode:            envOrDefault("GIN_MODE", "release"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		UploadDir:          envOrDefault("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:     int64(envInt("MAX_UPLOAD_MB", defaultMaxUploadMB)) << 20,
		BcryptCost:         bcryptCost(envInt("BCRYPT_COST", bcrypt.DefaultCost)),
		RecentRecipeWindow: envDuration("RECENT_RECIPE_WINDOW", defaultRecentRecipeWindow),
		SeedAdminUser:      strings.TrimSpace(os.Getenv("SEED_ADMIN_USER")),
		SeedAdminEmail:     strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")),
		SeedAdminPassword:  strings.TrimSpace(os.Getenv("SEED_ADMIN_PASSWORD")),
	}
}

// DatabaseDSN 返回实际使用的连接串：优先 DATABASE_URL，否则使用 SQLite 文件路径。
func (c AppConfig) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DatabasePath
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func bcryptCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}
