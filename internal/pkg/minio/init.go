package minio

import (
	"Pinwall/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// MainBucket 图片存储桶
	MainBucket string
)

// Init 初始化 MinIO 客户端并确保存储桶存在且可公开读取
func Init(cfg config.MinIOConfig) error {
	endpoint, useSSL := cfg.InternalEndpoint, cfg.InternalUseSSL
	if endpoint == "" {
		endpoint, useSSL = cfg.ExternalEndpoint, cfg.ExternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MainBucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.MainBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.MainBucket, err)
		}
		log.Info("MinIO bucket created", "bucket", cfg.MainBucket)
	}

	Client = client
	MainBucket = cfg.MainBucket
	return ensurePublicRead(ctx)
}

// ensurePublicRead 图片通过公开 URL 访问, 存储桶需要匿名只读策略
func ensurePublicRead(ctx context.Context) error {
	current, err := Client.GetBucketPolicy(ctx, MainBucket)
	if err == nil && current != "" {
		return nil
	}

	p := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, MainBucket)
	if err = Client.SetBucketPolicy(ctx, MainBucket, p); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	log.Info("MinIO bucket policy applied", "bucket", MainBucket, "policy", "public-read")
	return nil
}
