package repositories

import (
	"context"

	"github.com/signage_dashboard/internal/models"
	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，重用 gorm 的错误
var ErrRecordNotFound = gorm.ErrRecordNotFound

// FileRepository 定义了文件登记表的数据仓库接口
type FileRepository interface {
	// CreateWithNextOrder 在同一事务中计算 MAX(upload_order)+1 并插入记录
	CreateWithNextOrder(ctx context.Context, file *models.File) (*models.File, error)
	GetByID(ctx context.Context, id int64) (*models.File, error)
	GetResponseByID(ctx context.Context, id int64) (*models.FileResponse, error)
	// ListResponses 按 upload_order 升序返回文件，activeOnly 为 true 时只返回启用的文件
	ListResponses(ctx context.Context, activeOnly bool) ([]models.FileResponse, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	// Reorder 批量设置 upload_order，不存在的 id 被静默跳过
	Reorder(ctx context.Context, orders []models.FileOrder) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// gormFileRepository 是 FileRepository 的 GORM 实现
type gormFileRepository struct {
	db *gorm.DB
}

// NewGormFileRepository 创建一个新的 gormFileRepository 实例
func NewGormFileRepository(db *gorm.DB) FileRepository {
	return &gormFileRepository{db: db}
}

// maxOrder 返回当前最大的 upload_order，没有文件时为 0
func maxOrder(tx *gorm.DB) (int, error) {
	var max *int
	if err := tx.Model(&models.File{}).Select("MAX(upload_order)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// CreateWithNextOrder 插入文件记录，upload_order 取当前最大值 + 1
// 任一步骤失败时事务回滚，不会留下登记记录
func (r *gormFileRepository) CreateWithNextOrder(ctx context.Context, file *models.File) (*models.File, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		max, err := maxOrder(tx)
		if err != nil {
			return err
		}
		file.UploadOrder = max + 1
		return tx.Create(file).Error
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

// GetByID 通过主键查询文件
func (r *gormFileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// responseQuery 显式 LEFT JOIN users 取上传者用户名
func (r *gormFileRepository) responseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.File{}).
		Select("files.*, users.username AS uploader_name").
		Joins("LEFT JOIN users ON users.id = files.uploaded_by")
}

// GetResponseByID 查询单个文件及其上传者用户名
func (r *gormFileRepository) GetResponseByID(ctx context.Context, id int64) (*models.FileResponse, error) {
	var results []models.FileResponse
	if err := r.responseQuery(ctx).Where("files.id = ?", id).Limit(1).Scan(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrRecordNotFound
	}
	return &results[0], nil
}

// ListResponses 按展示顺序列出文件
func (r *gormFileRepository) ListResponses(ctx context.Context, activeOnly bool) ([]models.FileResponse, error) {
	query := r.responseQuery(ctx)
	if activeOnly {
		query = query.Where("files.is_active = ?", true)
	}

	results := make([]models.FileResponse, 0)
	if err := query.Order("files.upload_order asc").Order("files.id asc").Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Update 按字段更新文件，记录不存在时返回 ErrRecordNotFound
func (r *gormFileRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.File{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 值未改变时部分数据库也返回 0，这里再确认记录是否存在
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Reorder 在单个事务中为每个 id 设置新的顺序，返回实际更新的记录数
func (r *gormFileRepository) Reorder(ctx context.Context, orders []models.FileOrder) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range orders {
			result := tx.Model(&models.File{}).Where("id = ?", item.ID).Update("upload_order", item.Order)
			if result.Error != nil {
				return result.Error
			}
			updated += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// Delete 删除文件登记记录
func (r *gormFileRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.File{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
