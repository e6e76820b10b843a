package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/service"
)

type userPatchRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Avatar   *string `json:"avatar"`
}

// ListUsers 返回全部用户
func (a *API) ListUsers(c *gin.Context) {
	users, err := a.users.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserViews(users))
}

// GetUser 返回单个用户
func (a *API) GetUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	user, err := a.users.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserView(user))
}

// UpdateUser 按提交的字段部分更新用户
func (a *API) UpdateUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req userPatchRequest
	if !bindJSON(c, &req, msgBadPayload) {
		return
	}

	user, err := a.users.Update(c.Request.Context(), id, service.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserView(user))
}

// DeleteUser 删除用户及其全部数据；删除的是当前登录用户时一并清除会话
func (a *API) DeleteUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := a.users.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	if current, ok := service.CurrentUserID(c.Request.Context()); ok && current == id {
		_ = clearSession(c)
	}
	c.Status(http.StatusNoContent)
}
