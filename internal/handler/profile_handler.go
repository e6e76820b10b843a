package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/service"
)

type profilePatchRequest struct {
	Avatar *string `json:"avatar"`
}

// GetProfile 返回资料
func (a *API) GetProfile(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	profile, err := a.profiles.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileView(profile))
}

// UpdateProfile 更新资料，头像走专门的更新路径
func (a *API) UpdateProfile(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req profilePatchRequest
	if !bindJSON(c, &req, msgBadPayload) {
		return
	}

	profile, err := a.profiles.Update(c.Request.Context(), id, service.ProfilePatch{Avatar: req.Avatar})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileView(profile))
}

// DeleteProfile 删除资料，用户本身保留
func (a *API) DeleteProfile(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := a.profiles.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
