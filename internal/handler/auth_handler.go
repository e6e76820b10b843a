package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/service"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Avatar   *string `json:"avatar"`
}

// Login 校验用户名与密码并建立会话
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, msgLoginRequired) {
		return
	}

	user, err := a.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := setSessionUser(c, user.ID); err != nil {
		respondError(c, http.StatusInternalServerError, msgSessionSaveFailed)
		return
	}
	c.JSON(http.StatusOK, newUserView(user))
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	if err := clearSession(c); err != nil {
		respondError(c, http.StatusInternalServerError, msgSessionSaveFailed)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckSession 返回当前登录的用户
func (a *API) CheckSession(c *gin.Context) {
	userID, ok := service.CurrentUserID(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, msgNotLoggedIn)
		return
	}

	user, err := a.users.Get(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserView(user))
}

// ClearSession 与 Logout 相同，保留给前端的显式调用
func (a *API) ClearSession(c *gin.Context) {
	a.Logout(c)
}

// Signup 注册用户、创建资料并直接登录
func (a *API) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req, msgSignupRequired) {
		return
	}

	user, err := a.users.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := setSessionUser(c, user.ID); err != nil {
		respondError(c, http.StatusInternalServerError, msgSessionSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, newUserView(user))
}
