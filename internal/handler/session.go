package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/service"
)

const sessionUserKey = "user_id"

func setSessionUser(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	return session.Save()
}

func clearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

func sessionUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	switch v := session.Get(sessionUserKey).(type) {
	case uint:
		return v, v != 0
	case int:
		return uint(v), v > 0
	case int64:
		return uint(v), v > 0
	default:
		return 0, false
	}
}

// CurrentUser 将会话中的用户写入请求上下文。用户已被删除时清除会话。
func (a *API) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUserID(c)
		if !ok {
			c.Next()
			return
		}

		exists, err := a.users.Exists(c.Request.Context(), userID)
		if err != nil {
			handleServiceError(c, err)
			c.Abort()
			return
		}
		if !exists {
			_ = clearSession(c)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(service.WithCurrentUser(c.Request.Context(), userID))
		c.Next()
	}
}

// AuthRequired 要求请求已经登录，否则返回 401
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := service.CurrentUserID(c.Request.Context()); !ok {
			respondError(c, http.StatusUnauthorized, msgNotLoggedIn)
			c.Abort()
			return
		}
		c.Next()
	}
}
