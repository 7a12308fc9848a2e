//go:build !no_s3

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sakuray/campusvault/pkg/configs"
	nlog "github.com/sakuray/campusvault/pkg/log"
)

// S3Store S3 兼容对象存储 Blob 后端，每个 Blob 是桶内的一个对象.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store 初始化 MinIO 客户端，若 bucket 不存在则尝试创建.
func NewS3Store(ctx context.Context, cfg *configs.BlobConfig) (Store, error) {
	s3cfg := cfg.S3

	endpoint := s3cfg.Endpoint
	useSSL := s3cfg.UseSSL
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s3cfg.AccessKeyID, s3cfg.SecretAccessKey, ""),
		Secure: useSSL,
		Region: s3cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("campusvault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, s3cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", s3cfg.BucketName, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, s3cfg.BucketName, minio.MakeBucketOptions{Region: s3cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", s3cfg.BucketName, err)
		}

		nlog.Logger().Info().Str("bucket", s3cfg.BucketName).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", s3cfg.Endpoint).Str("bucket", s3cfg.BucketName).Msg("s3 connected")

	return &S3Store{client: cli, bucket: s3cfg.BucketName}, nil
}

// isNoSuchKey 判断 MinIO 错误是否为对象不存在.
func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
	}

	return false
}

// Put 写入新对象，对象已存在时返回错误.
func (s *S3Store) Put(ctx context.Context, locator string, r io.Reader, size int64) (int64, error) {
	if err := ValidateLocator(locator); err != nil {
		return 0, err
	}

	if _, err := s.client.StatObject(ctx, s.bucket, locator, minio.StatObjectOptions{}); err == nil {
		return 0, fmt.Errorf("blob already exists: %s", locator)
	}

	info, err := s.client.PutObject(ctx, s.bucket, locator, r, size, minio.PutObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("put blob %s: %w", locator, err)
	}

	return info.Size, nil
}

// Open 打开对象内容流.
func (s *S3Store) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	if err := ValidateLocator(locator); err != nil {
		return nil, err
	}

	// GetObject 是惰性的，先 Stat 以便把对象缺失映射为 ErrNotFound
	if _, err := s.Stat(ctx, locator); err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, locator, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", locator, err)
	}

	return obj, nil
}

// Stat 检查对象是否存在.
func (s *S3Store) Stat(ctx context.Context, locator string) (Entry, error) {
	if err := ValidateLocator(locator); err != nil {
		return Entry{}, err
	}

	info, err := s.client.StatObject(ctx, s.bucket, locator, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return Entry{}, ErrNotFound
		}

		return Entry{}, fmt.Errorf("stat blob %s: %w", locator, err)
	}

	return Entry{Locator: locator, Size: info.Size, ModTime: info.LastModified}, nil
}

// Remove 删除对象.
func (s *S3Store) Remove(ctx context.Context, locator string) error {
	if err := ValidateLocator(locator); err != nil {
		return err
	}

	// RemoveObject 对不存在的对象同样返回成功，先 Stat 以保持删除语义一致
	if _, err := s.Stat(ctx, locator); err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, locator, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove blob %s: %w", locator, err)
	}

	return nil
}

// List 枚举桶内全部对象.
func (s *S3Store) List(ctx context.Context) ([]Entry, error) {
	entries := make([]Entry, 0)

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list blobs: %w", obj.Err)
		}

		entries = append(entries, Entry{
			Locator: obj.Key,
			Size:    obj.Size,
			ModTime: obj.LastModified,
		})
	}

	return entries, nil
}

// Close 关闭后端（MinIO 客户端无需显式关闭）.
func (s *S3Store) Close() error {
	return nil
}

func init() {
	RegisterStoreFactory(configs.BlobTypeS3, NewS3Store)
}
