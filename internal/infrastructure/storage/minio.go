package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"borntoday/internal/config"
)

// MinIOStorage handles photo uploads to MinIO
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOStorage khởi tạo MinIO client và đảm bảo bucket tồn tại
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		// ảnh được nhúng trực tiếp bằng <img src>, cần public read cho photos/*
		if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
			return nil, fmt.Errorf("failed to set bucket policy: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("[MINIO] Bucket created")
	}

	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
	}, nil
}

// Upload uploads a file to MinIO
// key: đường dẫn file trong bucket (vd: photos/2024/03/10/<uuid>.jpg)
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return PublicURL(s.publicURL, s.bucket, key), nil
}

// Delete xóa một file khỏi MinIO
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// URL trả về public URL của key (dùng trong template)
func (s *MinIOStorage) URL(key string) string {
	return PublicURL(s.publicURL, s.bucket, key)
}

// StoredObject: object trong bucket (dùng khi dọn ảnh mồ côi)
type StoredObject struct {
	Key          string
	LastModified time.Time
}

// ListPhotos liệt kê toàn bộ object dưới prefix photos/
func (s *MinIOStorage) ListPhotos(ctx context.Context) ([]StoredObject, error) {
	var objects []StoredObject
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    photoPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list photos: %w", obj.Err)
		}
		objects = append(objects, StoredObject{Key: obj.Key, LastModified: obj.LastModified})
	}
	return objects, nil
}

// Ping dùng cho health check
func (s *MinIOStorage) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio unreachable: %w", err)
	}
	return nil
}

const photoPrefix = "photos/"

// PublicURL format: http://localhost:9000/borntoday/photos/2024/03/10/<uuid>.jpg
func PublicURL(base, bucket, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, strings.TrimLeft(key, "/"))
}

// PhotoKey tạo key phân vùng theo ngày upload: photos/YYYY/MM/DD/<uuid>.<ext>
func PhotoKey(uploadedAt time.Time, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s%s/%s.%s", photoPrefix, uploadedAt.Format("2006/01/02"), uuid.NewString(), ext)
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},`+
		`"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/%s*"]}]}`, bucket, photoPrefix)
}
