package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/internal/repositories"
)

// LoginResult 登录成功后返回的会话信息
type LoginResult struct {
	User      *models.User
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// SessionStatus 是 check-session 的响应
type SessionStatus struct {
	LoggedIn bool                 `json:"logged_in"`
	User     *models.UserResponse `json:"user,omitempty"`
}

// AuthService 定义了认证服务的接口
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	CheckSession(user *models.User) SessionStatus
	Register(ctx context.Context, requester *models.User, payload models.RegisterUserPayload) (*models.User, error)
}

type authService struct {
	users    repositories.UserRepository
	sessions auth.SessionStore
	tokens   *auth.TokenManager
}

// NewAuthService 创建一个新的 authService 实例
func NewAuthService(users repositories.UserRepository, sessions auth.SessionStore, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, sessions: sessions, tokens: tokens}
}

// Login 校验用户名密码并建立服务端会话
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, user.ID, s.tokens.TTL())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	token, expiresAt, err := s.tokens.Issue(sessionID, user.ID)
	if err != nil {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user logged in")
	return &LoginResult{User: user, SessionID: sessionID, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout 删除服务端会话，没有会话时什么也不做
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) CheckSession(user *models.User) SessionStatus {
	if user == nil {
		return SessionStatus{LoggedIn: false}
	}
	resp := user.ToResponse()
	return SessionStatus{LoggedIn: true, User: &resp}
}

// Register 由管理员创建新用户
func (s *authService) Register(ctx context.Context, requester *models.User, payload models.RegisterUserPayload) (*models.User, error) {
	if requester == nil || !requester.IsAdmin() {
		return nil, ErrForbidden
	}
	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		return nil, ErrCredentialsRequired
	}

	role := payload.Role
	if role == "" {
		role = models.RoleUser
	}

	hashed, err := HashPassword(payload.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
		CanUpload:    payload.CanUpload,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameExists) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "created_by": requester.ID, "role": user.Role}).Info("user registered")
	return user, nil
}
