package util

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const randomSuffixLen = 9

var mimeExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
	"image/svg+xml": ".svg",
	"image/avif":    ".avif",
	"image/heic":    ".heic",
}

// IsImageContentType 只接受 image/ 前缀的 MIME 类型
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// UploadFileName 生成 <毫秒时间戳>-<9位随机串><扩展名> 形式的文件名
func UploadFileName(originalName, contentType string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if ext == "" || len(ext) > 10 {
		ext = mimeExtensions[strings.ToLower(contentType)]
	}

	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:randomSuffixLen]
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + random + ext
}
