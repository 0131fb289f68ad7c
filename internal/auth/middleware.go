package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/signage_dashboard/internal/models"
)

// SessionCookieName 保存会话令牌的 cookie 名
const SessionCookieName = "session"

// gin 上下文中的键
const (
	ContextUserKey      = "currentUser"
	ContextUserIDKey    = "userID"
	ContextSessionIDKey = "sessionID"
)

// UserLoader 按 id 加载用户，repositories.UserRepository 满足该接口
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// TokenFromRequest 依次从 cookie 和 Authorization: Bearer 请求头中读取令牌
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionMiddleware 解析会话并把当前用户放入上下文。
// 它从不终止请求，是否放行由 Require 决定。
func SessionMiddleware(tokens *TokenManager, store SessionStore, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFromRequest(c)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			logrus.WithError(err).Debug("ignoring invalid session token")
			c.Next()
			return
		}
		// 会话ID即使找不到用户也保留，方便登出
		c.Set(ContextSessionIDKey, claims.ID)

		ctx := c.Request.Context()
		userID, err := store.Get(ctx, claims.ID)
		if err != nil {
			c.Next()
			return
		}
		if subject, _ := claims.UserID(); subject != userID {
			logrus.WithField("session_id", claims.ID).Warn("session token subject does not match stored session")
			c.Next()
			return
		}

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser 返回当前登录用户，未登录时为 nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// SessionID 返回请求携带的会话ID
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionIDKey)
}
