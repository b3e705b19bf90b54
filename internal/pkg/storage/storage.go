package storage

import (
	"Pinwall/internal/api/config"
	"context"
	"fmt"
	"io"
)

const (
	DriverLocal = "local"
	DriverMinIO = "minio"
)

// ImageStore 图片存储, Save 返回可直接写入帖子的访问地址
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// New 按配置创建图片存储
func New(cfg *config.Config) (ImageStore, error) {
	switch cfg.Upload.Driver {
	case "", DriverLocal:
		return NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix)
	case DriverMinIO:
		return NewMinIOStore(cfg.MinIO), nil
	default:
		return nil, fmt.Errorf("unsupported upload driver %q", cfg.Upload.Driver)
	}
}
