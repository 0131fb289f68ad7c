package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// MessageResponse 带提示信息的成功响应
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON 是一个通用的辅助函数，用于发送 JSON 响应
func RespondJSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// RespondMessage 发送 {message, <key>: data} 形式的成功响应
// key 为空时只返回 message
func RespondMessage(c *gin.Context, status int, message, key string, data interface{}) {
	body := gin.H{"message": message}
	if key != "" {
		body[key] = data
	}
	RespondJSON(c, status, body)
}

// APIErrorResponse 错误响应格式 { "error": "描述信息", "details": ... }
// 注意: details 可以是 map[string]string 或 string
type APIErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondAPIError 发送错误响应并终止后续处理
func RespondAPIError(c *gin.Context, status int, errorMessage string, details interface{}) {
	response := APIErrorResponse{
		Error: errorMessage,
	}
	if details != nil {
		response.Details = details
	}
	c.AbortWithStatusJSON(status, response)
}

// RespondValidationError 发送用于处理参数校验错误的特定响应
// 如果是 validator 的校验错误，details 展开为 字段 -> 规则 的映射
func RespondValidationError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			if fe.Param() != "" {
				fields[fe.Field()] = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
			} else {
				fields[fe.Field()] = fe.Tag()
			}
		}
		RespondAPIError(c, http.StatusBadRequest, "请求参数无效", fields)
		return
	}
	RespondAPIError(c, http.StatusBadRequest, "请求参数无效", err.Error())
}

// RespondBadRequest 发送 400 错误
func RespondBadRequest(c *gin.Context, message string) {
	RespondAPIError(c, http.StatusBadRequest, message, nil)
}

// RespondUnauthorizedError 发送未授权错误
func RespondUnauthorizedError(c *gin.Context, message ...string) {
	errMsg := "需要登录"
	if len(message) > 0 && message[0] != "" {
		errMsg = message[0]
	}
	RespondAPIError(c, http.StatusUnauthorized, errMsg, nil)
}

// RespondForbiddenError 发送权限不足错误
func RespondForbiddenError(c *gin.Context, message string) {
	RespondAPIError(c, http.StatusForbidden, message, nil)
}

// RespondNotFoundError 发送资源未找到错误
func RespondNotFoundError(c *gin.Context, resourceName string) {
	RespondAPIError(c, http.StatusNotFound, resourceName+"未找到", nil)
}

// RespondInternalServerError 发送服务器内部错误
// errDetails 可以是 err.Error()
func RespondInternalServerError(c *gin.Context, message string, errDetails ...string) {
	var details interface{}
	if len(errDetails) > 0 {
		details = errDetails[0]
	}
	RespondAPIError(c, http.StatusInternalServerError, message, details)
}
