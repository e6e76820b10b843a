package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/locale"
	applog "github.com/recipeshare/internal/log"
	"github.com/recipeshare/internal/service"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message locale.Text) {
	c.JSON(status, gin.H{"error": localize(c, message)})
}

func bindJSON(c *gin.Context, dst interface{}, message locale.Text) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// uintParam 解析路径参数，失败时直接写出 400
func uintParam(c *gin.Context, key string) (uint, bool) {
	id, err := parseUintParam(c, key)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

// handleServiceError 按错误分类写出响应。非预期错误只记录日志，不回显细节。
func handleServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		applog.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		respondError(c, status, msgInternal)
		return
	}

	for target, message := range serviceErrorMessages {
		if errors.Is(err, target) {
			respondError(c, status, message)
			return
		}
	}
	respondError(c, status, locale.Text{Zh: err.Error(), En: err.Error()})
}
