package repositories

import (
	"context"
	"errors"

	"github.com/signage_dashboard/internal/models"
	"gorm.io/gorm"
)

// SettingRepository 定义了全局配置的数据仓库接口
type SettingRepository interface {
	List(ctx context.Context) ([]models.Setting, error)
	GetByKey(ctx context.Context, key string) (*models.Setting, error)
	// CreateIfAbsent 仅在 key 不存在时写入，返回是否新建
	CreateIfAbsent(ctx context.Context, setting *models.Setting) (bool, error)
}

type gormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository 创建一个新的 gormSettingRepository 实例
func NewGormSettingRepository(db *gorm.DB) SettingRepository {
	return &gormSettingRepository{db: db}
}

func (r *gormSettingRepository) List(ctx context.Context) ([]models.Setting, error) {
	settings := make([]models.Setting, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// GetByKey 使用结构体条件查询，key 在 MySQL 中是保留字
func (r *gormSettingRepository) GetByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).Where(&models.Setting{Key: key}).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *gormSettingRepository) CreateIfAbsent(ctx context.Context, setting *models.Setting) (bool, error) {
	_, err := r.GetByKey(ctx, setting.Key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := r.db.WithContext(ctx).Create(setting).Error; err != nil {
		return false, err
	}
	return true, nil
}
