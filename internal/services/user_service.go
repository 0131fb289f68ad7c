package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/internal/repositories"
)

// UserService 定义了用户管理服务的接口
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64, requester *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, payload models.UpdateUserPayload) (*models.User, error)
	DeleteUser(ctx context.Context, id int64, requester *models.User) error
	ToggleUploadPermission(ctx context.Context, id int64) (*models.User, error)
	GetProfile(ctx context.Context, requester *models.User) (*models.User, error)
	UpdateProfile(ctx context.Context, requester *models.User, payload models.UpdateProfilePayload) error
}

type userService struct {
	repo repositories.UserRepository
}

// NewUserService 创建一个新的 userService 实例
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) getUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUser 管理员可以查看任意用户，普通用户只能查看自己
func (s *userService) GetUser(ctx context.Context, id int64, requester *models.User) (*models.User, error) {
	if requester == nil || (!requester.IsAdmin() && requester.ID != id) {
		return nil, ErrForbidden
	}
	return s.getUser(ctx, id)
}

// UpdateUser 只更新请求中提供的字段
func (s *userService) UpdateUser(ctx context.Context, id int64, payload models.UpdateUserPayload) (*models.User, error) {
	if _, err := s.getUser(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if payload.Username != nil {
		existing, err := s.repo.GetByUsername(ctx, *payload.Username)
		if err == nil && existing.ID != id {
			return nil, ErrUsernameExists
		} else if err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, err
		}
		updates["username"] = *payload.Username
	}
	if payload.Role != nil {
		updates["role"] = *payload.Role
	}
	if payload.CanUpload != nil {
		updates["can_upload"] = *payload.CanUpload
	}
	// 空密码视为未提供
	if payload.Password != nil && *payload.Password != "" {
		hashed, err := HashPassword(*payload.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = hashed
	}

	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameExists) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	if len(updates) > 0 {
		logrus.WithField("user_id", id).Info("user updated")
	}
	return user, nil
}

// DeleteUser 删除用户，不允许删除自己。用户上传的文件保留
func (s *userService) DeleteUser(ctx context.Context, id int64, requester *models.User) error {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}
	if requester != nil && user.ID == requester.ID {
		return ErrCannotDeleteSelf
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": id, "username": user.Username}).Info("user deleted")
	return nil
}

func (s *userService) ToggleUploadPermission(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, map[string]interface{}{"can_upload": !user.CanUpload})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": id, "can_upload": updated.CanUpload}).Info("upload permission toggled")
	return updated, nil
}

func (s *userService) GetProfile(ctx context.Context, requester *models.User) (*models.User, error) {
	if requester == nil {
		return nil, ErrUserNotFound
	}
	return s.getUser(ctx, requester.ID)
}

// UpdateProfile 用户只能修改自己的密码
func (s *userService) UpdateProfile(ctx context.Context, requester *models.User, payload models.UpdateProfilePayload) error {
	if requester == nil {
		return ErrUserNotFound
	}
	if payload.Password == nil || *payload.Password == "" {
		return ErrNoUpdatableField
	}

	hashed, err := HashPassword(*payload.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := s.repo.Update(ctx, requester.ID, map[string]interface{}{"password_hash": hashed}); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	logrus.WithField("user_id", requester.ID).Info("password changed")
	return nil
}
