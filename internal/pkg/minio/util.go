package minio

import (
	"Pinwall/internal/api/config"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, MainBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(cfg config.MinIOConfig, objectName string) string {
	protocol := "http"
	if cfg.ExternalUseSSL {
		protocol = "https"
	}
	u := url.URL{
		Scheme: protocol,
		Host:   cfg.ExternalEndpoint,
		Path:   "/" + cfg.MainBucket + "/" + objectName,
	}
	return u.String()
}

// ObjectNameFromURL 从公共URL中解析对象名, 不属于主存储桶时返回空串
func ObjectNameFromURL(cfg config.MinIOConfig, publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	prefix := "/" + cfg.MainBucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return ""
	}
	return strings.TrimPrefix(u.Path, prefix)
}
