package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrObjectNotFound 表示存储中不存在指定的对象
var ErrObjectNotFound = errors.New("存储对象不存在")

// Storage 定义了上传文件字节的存储接口
// key 形如 <子目录>/<存储文件名>，例如 videos/3f2a...e1.mp4
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Open 打开对象用于读取，对象不存在时返回 ErrObjectNotFound
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete 删除对象，对象不存在不视为错误
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Size(ctx context.Context, key string) (int64, error)
}

// Config 存储配置
type Config struct {
	Type      string // local 或 s3
	BasePath  string // 本地存储根目录
	Bucket    string
	Region    string
	Endpoint  string // 兼容 S3 的自建服务 (MinIO / R2)，设置后使用 path-style
	AccessKey string
	SecretKey string
}

// NewStorage 根据配置创建存储实例
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
