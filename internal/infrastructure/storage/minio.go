// Package storage 提供基于 MinIO 的对象存储实现
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"foligo-api/internal/config"
	"foligo-api/pkg/metrics"
)

var tracer = otel.Tracer("storage")

// Client MinIO 对象存储客户端
// 对外只暴露对象名，文件访问统一走 API 代理，不直出存储地址。
type Client struct {
	mc     *minio.Client
	bucket string
}

// NewClient 创建对象存储客户端并确保桶存在
func NewClient(cfg *config.MinioConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Client{mc: mc, bucket: cfg.Bucket}, nil
}

// Upload 上传对象
func (c *Client) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	ctx, span := tracer.Start(ctx, "storage.Upload",
		trace.WithAttributes(
			attribute.String("storage.object", objectName),
			attribute.Int("storage.size", len(data)),
		))
	defer span.End()

	_, err := c.mc.PutObject(ctx, c.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		span.RecordError(err)
		metrics.StorageOperationsTotal.WithLabelValues("upload", "error").Inc()
		return fmt.Errorf("failed to upload object: %w", err)
	}

	metrics.StorageOperationsTotal.WithLabelValues("upload", "success").Inc()
	return nil
}

// Get 获取对象内容流
// 调用方负责关闭返回的 ReadCloser。
func (c *Client) Get(ctx context.Context, objectName string) (io.ReadCloser, error) {
	ctx, span := tracer.Start(ctx, "storage.Get",
		trace.WithAttributes(attribute.String("storage.object", objectName)))
	defer span.End()

	obj, err := c.mc.GetObject(ctx, c.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		span.RecordError(err)
		metrics.StorageOperationsTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	metrics.StorageOperationsTotal.WithLabelValues("get", "success").Inc()
	return obj, nil
}

// Remove 删除对象
func (c *Client) Remove(ctx context.Context, objectName string) error {
	ctx, span := tracer.Start(ctx, "storage.Remove",
		trace.WithAttributes(attribute.String("storage.object", objectName)))
	defer span.End()

	if err := c.mc.RemoveObject(ctx, c.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		span.RecordError(err)
		metrics.StorageOperationsTotal.WithLabelValues("remove", "error").Inc()
		return fmt.Errorf("failed to remove object: %w", err)
	}

	metrics.StorageOperationsTotal.WithLabelValues("remove", "success").Inc()
	return nil
}
