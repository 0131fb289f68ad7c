package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/signage_dashboard/internal/models"
	"gorm.io/gorm"
)

// ErrUsernameExists 表示用户名已存在
var ErrUsernameExists = errors.New("用户名已存在")

// UserRepository 定义了用户数据仓库的接口
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// gormUserRepository 是 UserRepository 的 GORM 实现
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create 在数据库中创建一个新的用户记录
func (r *gormUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	// 预先检查用户名是否已存在
	if _, err := r.GetByUsername(ctx, user.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	return user, nil
}

// GetByID 通过主键查询用户
func (r *gormUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 通过用户名查询用户（区分大小写）
func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List 按 id 顺序返回所有用户
func (r *gormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update 更新指定字段并返回最新记录
func (r *gormUserRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.User, error) {
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrUsernameExists
			}
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete 删除用户，记录不存在时返回 ErrRecordNotFound
func (r *gormUserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// isUniqueViolation 识别各数据库的唯一约束冲突
// 对于 SQLite，错误信息包含 "UNIQUE constraint failed"
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") || strings.Contains(msg, "duplicate entry")
}
