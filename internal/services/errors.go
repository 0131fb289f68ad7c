package services

import "errors"

// 服务层错误，handler 通过 errors.Is 映射为 HTTP 状态码
var (
	ErrUserNotFound        = errors.New("用户未找到")
	ErrUsernameExists      = errors.New("用户名已存在")
	ErrCredentialsRequired = errors.New("用户名和密码不能为空")
	ErrInvalidCredentials  = errors.New("用户名或密码错误")
	ErrForbidden           = errors.New("权限不足")
	ErrCannotDeleteSelf    = errors.New("不能删除当前登录的用户")
	ErrNoUpdatableField    = errors.New("没有可更新的字段")
	ErrPasswordTooLong     = errors.New("密码长度不能超过72字节")

	ErrFileNotFound        = errors.New("文件未找到")
	ErrNoFileProvided      = errors.New("没有上传文件")
	ErrNoFileSelected      = errors.New("没有选择文件")
	ErrUnsupportedFileType = errors.New("不支持的文件类型")
	ErrExtensionNotAllowed = errors.New("文件扩展名与类型不匹配")
	ErrInvalidFilename     = errors.New("无效的文件名")
)
