package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/signage_dashboard/configs"
	_ "github.com/signage_dashboard/docs" // 注册 swagger 文档
	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/handlers"
	"github.com/signage_dashboard/internal/repositories"
	"github.com/signage_dashboard/internal/services"
	"github.com/signage_dashboard/internal/storage"
	"github.com/signage_dashboard/pkg/logger"
	"github.com/signage_dashboard/pkg/utils"
)

// Dependencies 是构建路由所需的全部组件
type Dependencies struct {
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	FileHandler    *handlers.FileHandler
	SettingHandler *handlers.SettingHandler
	Session        gin.HandlerFunc
	DB             *gorm.DB
	CORSOrigins    []string
	MaxUploadBytes int64
}

// Build 组装仓库、服务和处理器，返回可直接运行的 gin 引擎
func Build(cfg configs.Configuration, conn *gorm.DB, store storage.Storage, sessions auth.SessionStore) *gin.Engine {
	userRepo := repositories.NewGormUserRepository(conn)
	fileRepo := repositories.NewGormFileRepository(conn)
	settingRepo := repositories.NewGormSettingRepository(conn)

	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL())

	return NewRouter(Dependencies{
		AuthHandler:    handlers.NewAuthHandler(services.NewAuthService(userRepo, sessions, tokens), cfg.CookieSecure),
		UserHandler:    handlers.NewUserHandler(services.NewUserService(userRepo)),
		FileHandler:    handlers.NewFileHandler(services.NewFileService(fileRepo, store)),
		SettingHandler: handlers.NewSettingHandler(services.NewSettingService(settingRepo, userRepo)),
		Session:        auth.SessionMiddleware(tokens, sessions, userRepo),
		DB:             conn,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})
}

// NewRouter 创建 gin 引擎并注册所有路由
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(corsMiddleware(deps.CORSOrigins))
	router.Use(BodyLimit(deps.MaxUploadBytes))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(deps.Session)
	{
		api.GET("/health", healthHandler(deps.DB))
		api.GET("/settings", deps.SettingHandler.ListSettings)
	}
	SetupAuthRoutes(api, deps.AuthHandler)
	SetupUserRoutes(api, deps.UserHandler)
	SetupFileRoutes(api, deps.FileHandler)

	return router
}

// corsMiddleware 配置跨域；包含 "*" 时允许任意来源但不携带 cookie，
// 只有显式列出的来源才允许携带凭据
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, origin := range origins {
		if strings.TrimSpace(origin) == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// BodyLimit 限制请求体大小，超过时读取请求体会返回 *http.MaxBytesError
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// healthHandler godoc
// @Summary 健康检查
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} utils.APIErrorResponse
// @Router /health [get]
func healthHandler(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if conn != nil {
			sqlDB, err := conn.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				utils.RespondAPIError(c, http.StatusServiceUnavailable, "数据库不可用", err.Error())
				return
			}
		}
		utils.RespondJSON(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
