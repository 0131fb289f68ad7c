package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/signage_dashboard/internal/services"
	"github.com/signage_dashboard/pkg/utils"
)

// UserEnvelope 带提示信息的用户响应
type UserEnvelope struct {
	Message string      `json:"message"`
	User    interface{} `json:"user"`
}

// FileEnvelope 带提示信息的文件响应
type FileEnvelope struct {
	Message string      `json:"message"`
	File    interface{} `json:"file"`
}

// parseIDParam 解析路径中的数字 id，失败时直接写入 400 响应
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondBadRequest(c, "无效的ID: "+c.Param(name))
		return 0, false
	}
	return id, true
}

// respondServiceError 将服务层错误映射为 HTTP 响应
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.RespondNotFoundError(c, "用户")
	case errors.Is(err, services.ErrFileNotFound):
		utils.RespondNotFoundError(c, "文件")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondUnauthorizedError(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.RespondForbiddenError(c, err.Error())
	case errors.Is(err, services.ErrUsernameExists),
		errors.Is(err, services.ErrCredentialsRequired),
		errors.Is(err, services.ErrCannotDeleteSelf),
		errors.Is(err, services.ErrNoUpdatableField),
		errors.Is(err, services.ErrPasswordTooLong),
		errors.Is(err, services.ErrNoFileProvided),
		errors.Is(err, services.ErrNoFileSelected),
		errors.Is(err, services.ErrUnsupportedFileType),
		errors.Is(err, services.ErrExtensionNotAllowed),
		errors.Is(err, services.ErrInvalidFilename):
		utils.RespondBadRequest(c, err.Error())
	default:
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.RespondAPIError(c, http.StatusRequestEntityTooLarge, "上传文件过大", maxBytesErr.Error())
			return
		}
		utils.RespondInternalServerError(c, fallback, err.Error())
	}
}
