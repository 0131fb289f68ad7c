package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/internal/repositories"
)

// SettingService 定义了全局展示配置的服务接口
type SettingService interface {
	List(ctx context.Context) ([]models.Setting, error)
	Bootstrap(ctx context.Context, adminUsername, adminPassword string) error
}

type settingService struct {
	settings repositories.SettingRepository
	users    repositories.UserRepository
}

// NewSettingService 创建一个新的 settingService 实例
func NewSettingService(settings repositories.SettingRepository, users repositories.UserRepository) SettingService {
	return &settingService{settings: settings, users: users}
}

func (s *settingService) List(ctx context.Context) ([]models.Setting, error) {
	return s.settings.List(ctx)
}

// Bootstrap 在缺失时创建默认管理员和默认配置，已存在的记录不做修改
func (s *settingService) Bootstrap(ctx context.Context, adminUsername, adminPassword string) error {
	if _, err := s.users.GetByUsername(ctx, adminUsername); err != nil {
		if !errors.Is(err, repositories.ErrRecordNotFound) {
			return err
		}
		hashed, err := HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := &models.User{
			Username:     adminUsername,
			PasswordHash: hashed,
			Role:         models.RoleAdmin,
			CanUpload:    true,
		}
		if _, err := s.users.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create default admin: %w", err)
		}
		logrus.WithField("username", adminUsername).Warn("default admin user created, change its password")
	}

	for _, def := range models.DefaultSettings {
		setting := def
		created, err := s.settings.CreateIfAbsent(ctx, &setting)
		if err != nil {
			return fmt.Errorf("failed to create default setting %s: %w", def.Key, err)
		}
		if created {
			logrus.WithField("key", def.Key).Info("default setting created")
		}
	}
	return nil
}
