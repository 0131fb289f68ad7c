package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/internal/services"
	"github.com/signage_dashboard/pkg/utils"
)

// FileHandler 封装了上传、文件登记和文件输出的 HTTP 处理逻辑
type FileHandler struct {
	service services.FileService
}

// NewFileHandler 创建一个新的 FileHandler 实例
func NewFileHandler(service services.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// Upload godoc
// @Summary 上传文件
// @Description 支持 mp4/avi 视频、xlsx/xls/csv/ods 表格和 pdf，display_time 缺省或无效时为 10 秒
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "要上传的文件"
// @Param display_time formData int false "展示时长（秒）"
// @Success 201 {object} FileEnvelope "上传成功"
// @Failure 400 {object} utils.APIErrorResponse "没有文件或不支持的文件类型"
// @Failure 403 {object} utils.APIErrorResponse "需要上传权限"
// @Failure 413 {object} utils.APIErrorResponse "上传文件过大"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /upload [post]
// @Security SessionCookie
func (h *FileHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			respondServiceError(c, services.ErrNoFileProvided, "")
			return
		}
		respondServiceError(c, err, "读取上传文件失败")
		return
	}

	src, err := header.Open()
	if err != nil {
		respondServiceError(c, err, "读取上传文件失败")
		return
	}
	defer src.Close()

	// 与表单的 int 转换一致，无效值回退为默认值
	displayTime, err := strconv.Atoi(c.PostForm("display_time"))
	if err != nil {
		displayTime = models.DefaultDisplayTime
	}

	file, err := h.service.Upload(c.Request.Context(), services.UploadInput{
		Filename:    header.Filename,
		Reader:      src,
		ContentType: header.Header.Get("Content-Type"),
		DisplayTime: displayTime,
		UploadedBy:  auth.CurrentUser(c).ID,
	})
	if err != nil {
		respondServiceError(c, err, "上传文件失败")
		return
	}
	utils.RespondMessage(c, http.StatusCreated, "文件上传成功", "file", file)
}

// ListFiles godoc
// @Summary 文件列表
// @Description 按 upload_order 升序返回全部文件
// @Tags files
// @Produce json
// @Success 200 {array} models.FileResponse
// @Failure 401 {object} utils.APIErrorResponse "需要登录"
// @Router /files [get]
// @Security SessionCookie
func (h *FileHandler) ListFiles(c *gin.Context) {
	files, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取文件列表失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, files)
}

// ListActiveFiles godoc
// @Summary 展示端文件列表
// @Description 只返回启用的文件，按 upload_order 升序，无需登录
// @Tags files
// @Produce json
// @Success 200 {array} models.FileResponse
// @Router /files/active [get]
func (h *FileHandler) ListActiveFiles(c *gin.Context) {
	files, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取文件列表失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, files)
}

// GetFile godoc
// @Summary 获取文件
// @Tags files
// @Produce json
// @Param id path int true "文件ID"
// @Success 200 {object} models.FileResponse
// @Failure 404 {object} utils.APIErrorResponse "文件未找到"
// @Router /files/{id} [get]
// @Security SessionCookie
func (h *FileHandler) GetFile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	file, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "获取文件失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, file)
}

// UpdateFile godoc
// @Summary 更新文件
// @Description 部分更新 display_time、is_active、upload_order
// @Tags files
// @Accept json
// @Produce json
// @Param id path int true "文件ID"
// @Param file body models.UpdateFilePayload true "要更新的字段"
// @Success 200 {object} models.FileResponse
// @Failure 400 {object} utils.APIErrorResponse "参数错误"
// @Failure 404 {object} utils.APIErrorResponse "文件未找到"
// @Router /files/{id} [put]
// @Security SessionCookie
func (h *FileHandler) UpdateFile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload models.UpdateFilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	file, err := h.service.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondServiceError(c, err, "更新文件失败")
		return
	}
	utils.RespondJSON(c, http.StatusOK, file)
}

// DeleteFile godoc
// @Summary 删除文件
// @Description 先删除存储中的文件再删除登记记录，存储删除失败时记录保留
// @Tags files
// @Produce json
// @Param id path int true "文件ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.APIErrorResponse "文件未找到"
// @Failure 500 {object} utils.APIErrorResponse "删除失败"
// @Router /files/{id} [delete]
// @Security SessionCookie
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "删除文件失败")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "文件删除成功", "", nil)
}

// ToggleActive godoc
// @Summary 启用/停用文件
// @Tags files
// @Produce json
// @Param id path int true "文件ID"
// @Success 200 {object} FileEnvelope
// @Failure 404 {object} utils.APIErrorResponse "文件未找到"
// @Router /files/{id}/toggle-active [post]
// @Security SessionCookie
func (h *FileHandler) ToggleActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	file, err := h.service.ToggleActive(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "切换文件状态失败")
		return
	}

	state := "停用"
	if file.IsActive {
		state = "启用"
	}
	utils.RespondMessage(c, http.StatusOK, fmt.Sprintf("文件已%s", state), "file", file)
}

// ReorderFiles godoc
// @Summary 批量调整顺序
// @Description 不存在的文件ID会被跳过
// @Tags files
// @Accept json
// @Produce json
// @Param orders body models.ReorderPayload true "新的顺序"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.APIErrorResponse "参数错误"
// @Router /files/reorder [post]
// @Security SessionCookie
func (h *FileHandler) ReorderFiles(c *gin.Context) {
	var payload models.ReorderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	if err := h.service.Reorder(c.Request.Context(), payload.FileOrders); err != nil {
		respondServiceError(c, err, "调整顺序失败")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "文件顺序更新成功", "", nil)
}

// ServeFile godoc
// @Summary 输出文件内容
// @Description 按 videos、documents、pdfs 的顺序查找存储文件名，无需登录。本地存储支持 Range 请求
// @Tags files
// @Produce octet-stream
// @Param filename path string true "存储文件名"
// @Success 200 {file} binary
// @Failure 400 {object} utils.APIErrorResponse "无效的文件名"
// @Failure 404 {object} utils.APIErrorResponse "文件未找到"
// @Router /serve/{filename} [get]
func (h *FileHandler) ServeFile(c *gin.Context) {
	filename := c.Param("filename")
	served, err := h.service.Open(c.Request.Context(), filename)
	if err != nil {
		respondServiceError(c, err, "读取文件失败")
		return
	}
	defer served.Reader.Close()

	if rs, ok := served.Reader.(io.ReadSeeker); ok {
		c.Header("Content-Type", served.ContentType)
		http.ServeContent(c.Writer, c.Request, filename, time.Time{}, rs)
		return
	}
	c.DataFromReader(http.StatusOK, served.Size, served.ContentType, served.Reader, nil)
}
