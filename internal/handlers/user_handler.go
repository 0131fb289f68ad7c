package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/internal/services"
	"github.com/signage_dashboard/pkg/utils"
)

// UserHandler 封装了用户管理和个人资料的 HTTP 处理逻辑
type UserHandler struct {
	service services.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers godoc
// @Summary 用户列表
// @Tags users
// @Produce json
// @Success 200 {array} models.UserResponse
// @Failure 401 {object} utils.APIErrorResponse "需要登录"
// @Failure 403 {object} utils.APIErrorResponse "需要管理员权限"
// @Router /users [get]
// @Security SessionCookie
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取用户列表失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, models.ToUserResponses(users))
}

// GetUser godoc
// @Summary 获取用户
// @Description 管理员可以查看任意用户，普通用户只能查看自己
// @Tags users
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} models.UserResponse
// @Failure 403 {object} utils.APIErrorResponse "权限不足"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Router /users/{id} [get]
// @Security SessionCookie
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.service.GetUser(c.Request.Context(), id, auth.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err, "获取用户失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, user.ToResponse())
}

// UpdateUser godoc
// @Summary 更新用户
// @Description 只更新请求中提供的字段，修改用户名时重新检查唯一性
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param user body models.UpdateUserPayload true "要更新的字段"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} utils.APIErrorResponse "参数错误或用户名已存在"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Router /users/{id} [put]
// @Security SessionCookie
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload models.UpdateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, payload)
	if err != nil {
		respondServiceError(c, err, "更新用户失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, user.ToResponse())
}

// DeleteUser godoc
// @Summary 删除用户
// @Description 不能删除当前登录的用户，用户上传的文件保留
// @Tags users
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.APIErrorResponse "不能删除自己"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Router /users/{id} [delete]
// @Security SessionCookie
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), id, auth.CurrentUser(c)); err != nil {
		respondServiceError(c, err, "删除用户失败")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "用户删除成功", "", nil)
}

// ToggleUploadPermission godoc
// @Summary 切换上传权限
// @Tags users
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} UserEnvelope
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Router /users/{id}/toggle-upload [post]
// @Security SessionCookie
func (h *UserHandler) ToggleUploadPermission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.service.ToggleUploadPermission(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "切换上传权限失败")
		return
	}

	state := "关闭"
	if user.CanUpload {
		state = "开启"
	}
	utils.RespondMessage(c, http.StatusOK, fmt.Sprintf("已为 %s %s上传权限", user.Username, state), "user", user.ToResponse())
}

// GetProfile godoc
// @Summary 当前用户资料
// @Tags profile
// @Produce json
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} utils.APIErrorResponse "需要登录"
// @Router /profile [get]
// @Security SessionCookie
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err, "获取个人资料失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, user.ToResponse())
}

// UpdateProfile godoc
// @Summary 修改自己的密码
// @Description 只有 password 可以自助修改，未提供时返回 400
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body models.UpdateProfilePayload true "新密码"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.APIErrorResponse "没有可更新的字段"
// @Router /profile [put]
// @Security SessionCookie
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var payload models.UpdateProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	if err := h.service.UpdateProfile(c.Request.Context(), auth.CurrentUser(c), payload); err != nil {
		respondServiceError(c, err, "更新个人资料失败")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "密码修改成功", "", nil)
}
