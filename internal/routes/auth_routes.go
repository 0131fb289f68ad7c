package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/handlers"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(router *gin.RouterGroup, h *handlers.AuthHandler) {
	authGroup := router.Group("/auth")
	{
		// 登出和检查会话在未登录时也返回 200
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/check-session", h.CheckSession)

		authGroup.POST("/register", auth.Require(auth.RequireAdmin), h.Register)
	}
}

// SetupUserRoutes 设置用户管理和个人资料路由
func SetupUserRoutes(router *gin.RouterGroup, h *handlers.UserHandler) {
	admin := auth.Require(auth.RequireAdmin)
	login := auth.Require(auth.RequireLogin)

	users := router.Group("/users")
	{
		users.GET("", admin, h.ListUsers)
		// 普通用户可以查看自己，权限在服务层判断
		users.GET("/:id", login, h.GetUser)
		users.PUT("/:id", admin, h.UpdateUser)
		users.DELETE("/:id", admin, h.DeleteUser)
		users.POST("/:id/toggle-upload", admin, h.ToggleUploadPermission)
	}

	profile := router.Group("/profile", login)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}
