package handler

import (
	"github.com/gin-gonic/gin"

	"foligo-api/internal/application/user"
	"foligo-api/internal/interfaces/http/dto"
	"foligo-api/internal/interfaces/http/middleware"
)

// UserHandler 用户处理器
type UserHandler struct {
	users *user.Service
}

// NewUserHandler 创建用户处理器
func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// Me 当前用户资料
// @Summary 获取当前用户
// @Tags User
// @Produce json
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), middleware.GetUserIDFromGin(c))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewUserResponse(u))
}

// UpdateMe 更新当前用户资料
// @Summary 更新当前用户
// @Tags User
// @Accept json
// @Produce json
// @Param body body dto.UpdateUserRequest true "资料"
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Router /v1/users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), middleware.GetUserIDFromGin(c), req.Name, req.AvatarURL, req.Settings)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewUserResponse(u))
}
