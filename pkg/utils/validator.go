package utils

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrMissingExtension     = errors.New("文件名缺少扩展名")
	ErrUnsupportedExtension = errors.New("不支持的文件类型")
)

// 允许的扩展名，三组互不相交
var (
	AllowedVideoExtensions    = map[string]struct{}{"mp4": {}, "avi": {}}
	AllowedDocumentExtensions = map[string]struct{}{"xlsx": {}, "xls": {}, "csv": {}, "ods": {}}
	AllowedPDFExtensions      = map[string]struct{}{"pdf": {}}
)

// 存储子目录
const (
	SubfolderVideos    = "videos"
	SubfolderDocuments = "documents"
	SubfolderPDFs      = "pdfs"
)

// Subfolders 按查找顺序列出所有存储子目录
var Subfolders = []string{SubfolderVideos, SubfolderDocuments, SubfolderPDFs}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Extension 返回文件名最后一个点之后的小写扩展名，没有点时返回空串
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// FileTypeFromFilename 根据扩展名推导文件类型 ("video" / "document" / "pdf")
func FileTypeFromFilename(filename string) (string, error) {
	if !strings.Contains(filename, ".") {
		return "", ErrMissingExtension
	}
	ext := Extension(filename)
	switch {
	case has(AllowedVideoExtensions, ext):
		return "video", nil
	case has(AllowedDocumentExtensions, ext):
		return "document", nil
	case has(AllowedPDFExtensions, ext):
		return "pdf", nil
	}
	return "", ErrUnsupportedExtension
}

// IsAllowedExtension 校验扩展名是否属于指定类型的白名单
func IsAllowedExtension(filename, fileType string) bool {
	if !strings.Contains(filename, ".") {
		return false
	}
	ext := Extension(filename)
	switch fileType {
	case "video":
		return has(AllowedVideoExtensions, ext)
	case "document":
		return has(AllowedDocumentExtensions, ext)
	case "pdf":
		return has(AllowedPDFExtensions, ext)
	}
	return false
}

// SubfolderFor 返回文件类型对应的存储子目录
func SubfolderFor(fileType string) string {
	switch fileType {
	case "video":
		return SubfolderVideos
	case "document":
		return SubfolderDocuments
	default:
		return SubfolderPDFs
	}
}

// SecureFilename 清洗用户提供的文件名，仅用于展示：
// 去掉路径部分，做 NFKD 归一化并丢弃非 ASCII 字符，空白替换为下划线，只保留 [A-Za-z0-9_.-]。
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		b.WriteRune(r)
	}

	name = strings.Join(strings.Fields(b.String()), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// IsSinglePathElement 判断 name 是否是一个不含目录的普通文件名
func IsSinglePathElement(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

func has(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}
