package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/pkg/utils"
)

// Decision 是权限检查的结果
type Decision struct {
	Allowed bool
	Status  int
	Reason  string
}

// Allow 放行
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny 拒绝，并给出状态码和原因
func Deny(status int, reason string) Decision {
	return Decision{Status: status, Reason: reason}
}

// Guard 针对当前用户（可能为 nil）作出决定
type Guard func(user *models.User) Decision

// RequireLogin 要求已登录
func RequireLogin(user *models.User) Decision {
	if user == nil {
		return Deny(http.StatusUnauthorized, "需要登录")
	}
	return Allow()
}

// RequireAdmin 要求管理员
func RequireAdmin(user *models.User) Decision {
	if d := RequireLogin(user); !d.Allowed {
		return d
	}
	if !user.IsAdmin() {
		return Deny(http.StatusForbidden, "权限不足，需要管理员权限")
	}
	return Allow()
}

// RequireUploadPermission 要求管理员或拥有上传权限
func RequireUploadPermission(user *models.User) Decision {
	if d := RequireLogin(user); !d.Allowed {
		return d
	}
	if !user.CanManageFiles() {
		return Deny(http.StatusForbidden, "权限不足，需要上传权限")
	}
	return Allow()
}

// Require 将 Guard 组合为路由中间件，在处理函数之前执行
func Require(guard Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := guard(CurrentUser(c))
		if !d.Allowed {
			utils.RespondAPIError(c, d.Status, d.Reason, nil)
			return
		}
		c.Next()
	}
}
