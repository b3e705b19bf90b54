package storage

import (
	"Pinwall/internal/api/config"
	"Pinwall/internal/pkg/minio"
	"context"
	"io"

	"github.com/pkg/errors"
)

// MinIOStore 将图片上传到对象存储
type MinIOStore struct {
	cfg config.MinIOConfig
}

func NewMinIOStore(cfg config.MinIOConfig) *MinIOStore {
	return &MinIOStore{cfg: cfg}
}

func (s *MinIOStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	key, err := minio.UploadFile(ctx, name, r, size, contentType)
	if err != nil {
		return "", errors.Wrap(err, "minio save")
	}
	return minio.GetPublicURL(s.cfg, key), nil
}

func (s *MinIOStore) Delete(ctx context.Context, url string) error {
	objectName := minio.ObjectNameFromURL(s.cfg, url)
	if objectName == "" {
		return nil
	}
	return minio.DeleteFile(ctx, objectName)
}
