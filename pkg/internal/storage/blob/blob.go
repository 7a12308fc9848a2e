// Package blob 处理文件内容（Blob）的存储操作.
// 元数据保存在数据库中，Blob 内容通过 Locator 定位，后端可选本地文件系统或 S3 兼容对象存储.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sakuray/campusvault/pkg/configs"
)

// ErrNotFound 定位符对应的 Blob 不存在.
var ErrNotFound = errors.New("blob: not found")

// Entry 描述后端中的一个 Blob，用于巡检和孤儿清理.
type Entry struct {
	Locator string
	Size    int64
	ModTime time.Time
}

// Store 定义 Blob 存储接口.
type Store interface {
	// Put 以 locator 为键写入内容，locator 已存在时返回错误.
	Put(ctx context.Context, locator string, r io.Reader, size int64) (int64, error)
	// Open 打开 locator 对应的内容流，不存在时返回 ErrNotFound.
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
	// Stat 检查 locator 是否存在，不存在时返回 ErrNotFound.
	Stat(ctx context.Context, locator string) (Entry, error)
	// Remove 删除 locator 对应的内容，不存在时返回 ErrNotFound.
	Remove(ctx context.Context, locator string) error
	// List 枚举后端中的全部 Blob.
	List(ctx context.Context) ([]Entry, error)
	// Close 释放后端资源.
	Close() error
}

// Client 包装 Store 实现.
type Client struct {
	Store
}

// StoreFactory 定义创建 Store 的工厂函数类型.
type StoreFactory func(ctx context.Context, cfg *configs.BlobConfig) (Store, error)

// storeFactories 存储 Blob 类型到工厂的映射.
var storeFactories = map[configs.BlobType]StoreFactory{}

// RegisterStoreFactory 注册 Blob 后端工厂函数.
func RegisterStoreFactory(blobType configs.BlobType, factory StoreFactory) {
	storeFactories[blobType] = factory
}

// GetRegisteredBlobTypes 返回已注册的 Blob 后端类型列表.
func GetRegisteredBlobTypes() []configs.BlobType {
	types := make([]configs.BlobType, 0, len(storeFactories))
	for blobType := range storeFactories {
		types = append(types, blobType)
	}

	return types
}

// New 按全局配置创建 Blob 客户端.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().Blob

	factory, exists := storeFactories[cfg.Type]
	if !exists {
		return nil, fmt.Errorf("unsupported blob type: %s", cfg.Type)
	}

	store, err := factory(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("init blob store (%s): %w", cfg.Type, err)
	}

	return &Client{Store: store}, nil
}

// ValidateLocator 校验定位符可以安全用作存储键.
// 拒绝空值、路径分隔符和相对路径片段，防止越出存储根目录.
func ValidateLocator(locator string) error {
	if locator == "" {
		return fmt.Errorf("empty locator")
	}

	if strings.ContainsAny(locator, "/\\") {
		return fmt.Errorf("locator contains path separator: %s", locator)
	}

	if locator == "." || locator == ".." || strings.Contains(locator, "..") {
		return fmt.Errorf("locator contains relative path element: %s", locator)
	}

	return nil
}
