package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/internal/repositories"
	"github.com/signage_dashboard/internal/storage"
	"github.com/signage_dashboard/pkg/utils"
)

// sniffLen 用于识别 Content-Type 的头部字节数
const sniffLen = 3072

// UploadInput 上传请求
type UploadInput struct {
	Filename    string
	Reader      io.Reader
	ContentType string
	DisplayTime int
	UploadedBy  int64
}

// ServedFile 是一个可直接流式输出的存储对象
type ServedFile struct {
	Reader      io.ReadCloser
	ContentType string
	Size        int64
}

// FileService 定义了文件登记与展示顺序的服务接口
type FileService interface {
	Upload(ctx context.Context, input UploadInput) (*models.FileResponse, error)
	ListAll(ctx context.Context) ([]models.FileResponse, error)
	ListActive(ctx context.Context) ([]models.FileResponse, error)
	Get(ctx context.Context, id int64) (*models.FileResponse, error)
	Update(ctx context.Context, id int64, payload models.UpdateFilePayload) (*models.FileResponse, error)
	ToggleActive(ctx context.Context, id int64) (*models.FileResponse, error)
	Reorder(ctx context.Context, orders []models.FileOrder) error
	Delete(ctx context.Context, id int64) error
	Open(ctx context.Context, filename string) (*ServedFile, error)
}

type fileService struct {
	repo  repositories.FileRepository
	store storage.Storage
}

// NewFileService 创建一个新的 fileService 实例
func NewFileService(repo repositories.FileRepository, store storage.Storage) FileService {
	return &fileService{repo: repo, store: store}
}

// Upload 校验扩展名、写入存储并登记文件
func (s *fileService) Upload(ctx context.Context, input UploadInput) (*models.FileResponse, error) {
	if input.Reader == nil {
		return nil, ErrNoFileProvided
	}
	if input.Filename == "" {
		return nil, ErrNoFileSelected
	}

	fileType, err := utils.FileTypeFromFilename(input.Filename)
	if err != nil {
		return nil, ErrUnsupportedFileType
	}
	if !utils.IsAllowedExtension(input.Filename, fileType) {
		return nil, fmt.Errorf("%w: %s", ErrExtensionNotAllowed, fileType)
	}

	originalName := utils.SecureFilename(input.Filename)
	// 存储文件名为 32 位十六进制 uuid 加原扩展名
	storedName := strings.ReplaceAll(uuid.New().String(), "-", "") + "." + utils.Extension(input.Filename)
	key := path.Join(utils.SubfolderFor(fileType), storedName)

	if err := s.store.Save(ctx, key, input.Reader, input.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	displayTime := input.DisplayTime
	if displayTime <= 0 {
		displayTime = models.DefaultDisplayTime
	}

	file, err := s.repo.CreateWithNextOrder(ctx, &models.File{
		Filename:     storedName,
		OriginalName: originalName,
		FileType:     models.FileType(fileType),
		FilePath:     key,
		DisplayTime:  displayTime,
		IsActive:     true,
		UploadedBy:   input.UploadedBy,
	})
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("file stored but registry insert failed, stored object left in place")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"file_id":      file.ID,
		"file_type":    fileType,
		"key":          key,
		"upload_order": file.UploadOrder,
		"uploaded_by":  input.UploadedBy,
	}).Info("file uploaded")
	return s.Get(ctx, file.ID)
}

func (s *fileService) ListAll(ctx context.Context) ([]models.FileResponse, error) {
	return s.repo.ListResponses(ctx, false)
}

// ListActive 返回展示端轮播的文件
func (s *fileService) ListActive(ctx context.Context) ([]models.FileResponse, error) {
	return s.repo.ListResponses(ctx, true)
}

func (s *fileService) Get(ctx context.Context, id int64) (*models.FileResponse, error) {
	file, err := s.repo.GetResponseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

// Update 部分更新，只修改请求中提供的字段
func (s *fileService) Update(ctx context.Context, id int64, payload models.UpdateFilePayload) (*models.FileResponse, error) {
	updates := make(map[string]interface{})
	if payload.DisplayTime != nil {
		updates["display_time"] = *payload.DisplayTime
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if payload.UploadOrder != nil {
		updates["upload_order"] = *payload.UploadOrder
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	logrus.WithField("file_id", id).Info("file updated")
	return s.Get(ctx, id)
}

func (s *fileService) ToggleActive(ctx context.Context, id int64) (*models.FileResponse, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"is_active": !file.IsActive}); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"file_id": id, "is_active": !file.IsActive}).Info("file active flag toggled")
	return s.Get(ctx, id)
}

// Reorder 批量设置顺序，不存在的 id 被跳过且不报错
func (s *fileService) Reorder(ctx context.Context, orders []models.FileOrder) error {
	updated, err := s.repo.Reorder(ctx, orders)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"requested": len(orders), "updated": updated}).Info("files reordered")
	return nil
}

// Delete 先删除存储对象再删除登记记录。存储删除失败时登记记录保留
func (s *fileService) Delete(ctx context.Context, id int64) error {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return err
	}

	exists, err := s.store.Exists(ctx, file.FilePath)
	if err != nil {
		return fmt.Errorf("failed to check stored file: %w", err)
	}
	if exists {
		if err := s.store.Delete(ctx, file.FilePath); err != nil {
			logrus.WithError(err).WithField("file_id", id).Error("failed to delete stored file, registry row kept")
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return err
	}
	logrus.WithFields(logrus.Fields{"file_id": id, "key": file.FilePath}).Info("file deleted")
	return nil
}

// Open 按 videos、documents、pdfs 的顺序查找存储文件名，返回第一个匹配
// 这里不再校验扩展名白名单
func (s *fileService) Open(ctx context.Context, filename string) (*ServedFile, error) {
	if !utils.IsSinglePathElement(filename) {
		return nil, ErrInvalidFilename
	}

	for _, subfolder := range utils.Subfolders {
		key := path.Join(subfolder, filename)
		rc, err := s.store.Open(ctx, key)
		if errors.Is(err, storage.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		size, err := s.store.Size(ctx, key)
		if err != nil {
			rc.Close()
			return nil, err
		}

		head := make([]byte, sniffLen)
		n, err := io.ReadFull(rc, head)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			rc.Close()
			return nil, fmt.Errorf("failed to read stored file: %w", err)
		}
		head = head[:n]
		contentType := mimetype.Detect(head).String()

		// 本地文件可以回到开头，交给 http.ServeContent 处理 Range 请求
		if seeker, ok := rc.(io.ReadSeeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err == nil {
				return &ServedFile{Reader: rc, ContentType: contentType, Size: size}, nil
			}
		}

		return &ServedFile{
			Reader:      readCloser{Reader: io.MultiReader(bytes.NewReader(head), rc), Closer: rc},
			ContentType: contentType,
			Size:        size,
		}, nil
	}
	return nil, ErrFileNotFound
}

type readCloser struct {
	io.Reader
	io.Closer
}
