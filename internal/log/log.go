// Package log 提供全局 zap 日志实例以及 Gin 访问日志中间件。
package log

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init 根据运行模式与日志级别初始化全局日志。
// release 模式使用 JSON 输出，其余模式使用便于阅读的开发格式。
func Init(mode, level string) error {
	var cfg zap.Config
	if strings.EqualFold(strings.TrimSpace(mode), gin.ReleaseMode) {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	Replace(built)
	return nil
}

// Replace 替换全局日志实例，主要用于测试。
func Replace(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// L 返回当前的全局日志实例。
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}

// Sync 刷新缓冲区中的日志。
func Sync() error {
	return L().Sync()
}

// GinLogger 记录每个请求的方法、路径、状态码与耗时。
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			Error("request", fields...)
		case status >= 400:
			Warn("request", fields...)
		default:
			Info("request", fields...)
		}
	}
}
