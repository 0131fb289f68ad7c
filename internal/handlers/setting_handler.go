package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signage_dashboard/internal/services"
	"github.com/signage_dashboard/pkg/utils"
)

// SettingHandler 提供只读的展示配置
type SettingHandler struct {
	service services.SettingService
}

func NewSettingHandler(service services.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// ListSettings godoc
// @Summary 展示配置
// @Description 默认展示时长、是否自动轮播、应用标题等，无需登录
// @Tags settings
// @Produce json
// @Success 200 {array} models.Setting
// @Router /settings [get]
func (h *SettingHandler) ListSettings(c *gin.Context) {
	settings, err := h.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取配置失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, settings)
}
