package models

import (
	"time"
)

// 用户角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 对应于数据库中的 users 表
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"column:username;unique;not null;size:80"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null;size:255"` // 密码哈希不通过JSON暴露
	Role         string    `json:"role" gorm:"column:role;not null;default:'user';size:20"`
	CanUpload    bool      `json:"can_upload" gorm:"column:can_upload;not null;default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageFiles 管理员或拥有上传权限的用户可以管理文件
func (u *User) CanManageFiles() bool {
	return u.IsAdmin() || u.CanUpload
}

// UserResponse 是返回给客户端的用户结构
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CanUpload bool      `json:"can_upload"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse 转换为响应结构
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CanUpload: u.CanUpload,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses 批量转换
func ToUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out
}

// RegisterUserPayload 管理员创建用户的请求体
type RegisterUserPayload struct {
	Username  string `json:"username" binding:"required,max=80"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=admin user"`
	CanUpload bool   `json:"can_upload"`
}

// UpdateUserPayload 管理员更新用户的请求体，只更新提供的字段
type UpdateUserPayload struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,min=1,max=80"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=admin user"`
	CanUpload *bool   `json:"can_upload,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// UpdateProfilePayload 用户只能修改自己的密码
type UpdateProfilePayload struct {
	Password *string `json:"password,omitempty"`
}
