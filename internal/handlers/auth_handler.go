package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/internal/services"
	"github.com/signage_dashboard/pkg/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录成功响应，token 同时写入 session cookie
type LoginResponse struct {
	Message   string              `json:"message"`
	User      models.UserResponse `json:"user"`
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// AuthHandler 封装了登录、登出和注册的 HTTP 处理逻辑
type AuthHandler struct {
	service      services.AuthService
	cookieSecure bool
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(service services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: service, cookieSecure: cookieSecure}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, value, maxAge, "/", "", h.cookieSecure, true)
}

// Login godoc
// @Summary 用户登录
// @Description 校验用户名和密码，建立服务端会话并写入 session cookie
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} LoginResponse "登录成功"
// @Failure 400 {object} utils.APIErrorResponse "用户名和密码不能为空"
// @Failure 401 {object} utils.APIErrorResponse "用户名或密码错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err, "登录失败")
		return
	}

	h.setSessionCookie(c, result.Token, int(time.Until(result.ExpiresAt).Seconds()))
	utils.RespondJSON(c, http.StatusOK, LoginResponse{
		Message:   "登录成功",
		User:      result.User.ToResponse(),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout godoc
// @Summary 用户登出
// @Description 删除服务端会话并清除 session cookie，未登录时同样返回成功
// @Tags auth
// @Produce  json
// @Success 200 {object} utils.MessageResponse "登出成功"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), auth.SessionID(c)); err != nil {
		respondServiceError(c, err, "登出失败")
		return
	}
	h.setSessionCookie(c, "", -1)
	utils.RespondMessage(c, http.StatusOK, "登出成功", "", nil)
}

// CheckSession godoc
// @Summary 检查登录状态
// @Tags auth
// @Produce  json
// @Success 200 {object} services.SessionStatus "logged_in 为 false 时不返回 user"
// @Router /auth/check-session [get]
func (h *AuthHandler) CheckSession(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, h.service.CheckSession(auth.CurrentUser(c)))
}

// Register godoc
// @Summary 创建用户
// @Description 仅管理员可以创建用户，role 默认为 user
// @Tags auth
// @Accept  json
// @Produce  json
// @Param user body models.RegisterUserPayload true "新用户信息"
// @Success 201 {object} UserEnvelope "创建成功"
// @Failure 400 {object} utils.APIErrorResponse "参数错误或用户名已存在"
// @Failure 401 {object} utils.APIErrorResponse "需要登录"
// @Failure 403 {object} utils.APIErrorResponse "需要管理员权限"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/register [post]
// @Security SessionCookie
func (h *AuthHandler) Register(c *gin.Context) {
	var payload models.RegisterUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.CurrentUser(c), payload)
	if err != nil {
		respondServiceError(c, err, "创建用户失败")
		return
	}
	utils.RespondMessage(c, http.StatusCreated, "用户创建成功", "user", user.ToResponse())
}
