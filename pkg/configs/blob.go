package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// BlobType Blob存储后端类型.
type BlobType string

const (
	// BlobTypeFS 本地文件系统后端.
	BlobTypeFS BlobType = "fs"
	// BlobTypeS3 S3兼容对象存储后端.
	BlobTypeS3 BlobType = "s3"
)

const (
	DefaultBlobFSRoot = "data/blobs" // 默认文件系统存储根目录

	DefaultS3Endpoint        = "localhost:9000" // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"     // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"     // 默认秘密访问密钥
	DefaultS3UseSSL          = false            // 默认是否使用SSL
	DefaultS3BucketName      = "campusvault"    // 默认存储桶名称
	DefaultS3Region          = "us-east-1"      // 默认区域
)

// BlobConfig Blob存储配置.
// 存储根目录通过该配置在构造时显式注入，进程内不保留可变的全局上传目录.
type BlobConfig struct {
	Type BlobType     `mapstructure:"type" rule:"oneof=fs s3"`
	FS   FSBlobConfig `mapstructure:"fs"`
	S3   S3BlobConfig `mapstructure:"s3"`
}

// FSBlobConfig 文件系统Blob后端配置.
type FSBlobConfig struct {
	Root string `mapstructure:"root" rule:"required"`
}

// S3BlobConfig S3兼容Blob后端配置.
type S3BlobConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
	Region          string `mapstructure:"region"`
}

// GetEndpointURL 获取完整的端点URL.
func (c *S3BlobConfig) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// setDefaults 设置 Blob 配置的默认值.
func (c *BlobConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("blob.type", BlobTypeFS)

	v.SetDefault("blob.fs.root", DefaultBlobFSRoot)

	v.SetDefault("blob.s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("blob.s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("blob.s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("blob.s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("blob.s3.bucket_name", DefaultS3BucketName)
	v.SetDefault("blob.s3.region", DefaultS3Region)
}
