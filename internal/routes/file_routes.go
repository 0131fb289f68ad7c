package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/handlers"
)

// SetupFileRoutes 设置上传、文件管理和文件输出路由
func SetupFileRoutes(router *gin.RouterGroup, h *handlers.FileHandler) {
	login := auth.Require(auth.RequireLogin)
	upload := auth.Require(auth.RequireUploadPermission)

	router.POST("/upload", upload, h.Upload)

	files := router.Group("/files")
	{
		// 展示端使用，无需登录
		files.GET("/active", h.ListActiveFiles)

		files.GET("", login, h.ListFiles)
		files.POST("/reorder", upload, h.ReorderFiles)
		files.GET("/:id", login, h.GetFile)
		files.PUT("/:id", upload, h.UpdateFile)
		files.DELETE("/:id", upload, h.DeleteFile)
		files.POST("/:id/toggle-active", upload, h.ToggleActive)
	}

	router.GET("/serve/:filename", h.ServeFile)
}
