package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/signage_dashboard/configs"
	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/repositories"
	"github.com/signage_dashboard/internal/routes"
	"github.com/signage_dashboard/internal/services"
	"github.com/signage_dashboard/internal/storage"
	"github.com/signage_dashboard/pkg/db"
	"github.com/signage_dashboard/pkg/logger"
)

// @title Dashboard App API
// @version 1.0
// @description 数字标牌后台：用户、会话、媒体上传与展示顺序管理
// @BasePath /api
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	configs.LoadConfig()
	cfg := configs.AppConfig

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// 初始化数据库连接
	conn := db.InitDB(db.Options{DatabaseURL: cfg.DatabaseURL, SQLitePath: cfg.SQLiteDBPath})
	defer db.CloseDB()

	// 默认管理员和默认配置
	settingSvc := services.NewSettingService(
		repositories.NewGormSettingRepository(conn),
		repositories.NewGormUserRepository(conn),
	)
	if err := settingSvc.Bootstrap(context.Background(), cfg.DefaultAdminUsername, cfg.DefaultAdminPassword); err != nil {
		logrus.Fatalf("Failed to bootstrap database: %v", err)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.StorageType,
		BasePath:  cfg.UploadFolder,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	sessions, closeSessions := newSessionStore(cfg)
	defer closeSessions()

	router := routes.Build(cfg, conn, store, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on port %s...", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
}

// newSessionStore 根据配置选择会话存储
func newSessionStore(cfg configs.Configuration) (auth.SessionStore, func()) {
	if cfg.SessionStore != "redis" {
		return auth.NewMemoryStore(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	logrus.WithField("addr", cfg.RedisAddr).Info("using redis session store")
	return auth.NewRedisStore(rdb), func() {
		if err := rdb.Close(); err != nil {
			logrus.Errorf("Error closing redis client: %v", err)
		}
	}
}
