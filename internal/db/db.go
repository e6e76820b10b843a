package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "github.com/recipeshare/internal/log"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例，供脚本与旧代码路径使用
var DB *gorm.DB

// Init 打开数据库并执行自动迁移，结果保存在全局 DB 中。
// dsn 为空时将回退到默认值 recipeshare.db。
func Init(dsn string) error {
	gdb, err := Open(dsn)
	if err != nil {
		return err
	}
	if err := Migrate(gdb); err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open 根据连接串选择方言：postgres:// 与 postgresql:// 使用 PostgreSQL，
// 其余一律视为 SQLite 路径（会自动开启外键约束）。
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = "recipeshare.db"
	}

	cfg := &gorm.Config{
		Logger: logger.New(zap.NewStdLog(applog.L().Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}

	if isPostgresDSN(dsn) {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if err := ensureParentDir(dsn); err != nil {
		return nil, err
	}
	return gorm.Open(sqlite.Open(sqliteDSN(dsn)), cfg)
}

// Migrate 为全部模型建表。Ingredient 必须先于 Recipe 迁移，
// 以便 recipe_ingredients 的外键能引用到已存在的表。
func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("database not initialized")
	}
	return gdb.AutoMigrate(
		&User{},
		&Profile{},
		&Ingredient{},
		&Recipe{},
		&Comment{},
		&FavoriteRecipe{},
		&RecipeRating{},
		&JournalEntry{},
	)
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// sqliteDSN 补齐缺失的连接参数。
// _txlock=immediate 使事务在 BEGIN 时取得写锁，并发写按 busy_timeout 排队。
func sqliteDSN(dsn string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000", "_txlock=immediate"}
	for _, param := range params {
		key := param[:strings.Index(param, "=")]
		if strings.Contains(dsn, key+"=") {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + param
	}
	return dsn
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
