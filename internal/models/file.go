package models

import (
	"time"
)

// FileType 文件类型，由扩展名推导
type FileType string

const (
	FileTypeVideo    FileType = "video"
	FileTypeDocument FileType = "document"
	FileTypePDF      FileType = "pdf"
)

// DefaultDisplayTime 默认展示时长（秒）
const DefaultDisplayTime = 10

// File 对应于数据库中的 files 表
type File struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Filename     string    `json:"filename" gorm:"column:filename;not null;size:255"`           // 存储文件名 (uuid + 扩展名)
	OriginalName string    `json:"original_name" gorm:"column:original_name;not null;size:255"` // 清洗后的原始文件名
	FileType     FileType  `json:"file_type" gorm:"column:file_type;not null;size:50"`
	FilePath     string    `json:"file_path" gorm:"column:file_path;not null;size:500"` // 存储键 <子目录>/<文件名>
	DisplayTime  int       `json:"display_time" gorm:"column:display_time;not null;default:10"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;not null;default:true"`
	UploadOrder  int       `json:"upload_order" gorm:"column:upload_order;not null;default:0;index"`
	UploadedBy   int64     `json:"uploaded_by" gorm:"column:uploaded_by;not null;index"`
	UploadedAt   time.Time `json:"uploaded_at" gorm:"column:uploaded_at;autoCreateTime"`
}

// TableName 指定 File 结构体对应的数据库表名
func (File) TableName() string {
	return "files"
}

// FileResponse 在文件字段基础上附带上传者用户名（LEFT JOIN users 得到，用户删除后为 null）
type FileResponse struct {
	File
	UploaderName *string `json:"uploader_name" gorm:"column:uploader_name"`
}

// UpdateFilePayload 文件部分更新请求体
type UpdateFilePayload struct {
	DisplayTime *int  `json:"display_time,omitempty" binding:"omitempty,min=1"`
	IsActive    *bool `json:"is_active,omitempty"`
	UploadOrder *int  `json:"upload_order,omitempty"`
}

// FileOrder 单个文件的新顺序
type FileOrder struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// ReorderPayload 批量排序请求体
type ReorderPayload struct {
	FileOrders []FileOrder `json:"file_orders"`
}
