package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sakuray/campusvault/pkg/configs"
	nlog "github.com/sakuray/campusvault/pkg/log"
)

// FSStore 本地文件系统 Blob 后端，每个 Blob 是根目录下的一个普通文件.
// 根目录在构造时注入，之后不可更改.
type FSStore struct {
	root string
}

// NewFSStore 创建文件系统后端，根目录不存在时自动创建.
func NewFSStore(ctx context.Context, cfg *configs.BlobConfig) (Store, error) {
	return NewFSStoreAt(cfg.FS.Root)
}

// NewFSStoreAt 以显式根目录创建文件系统后端.
func NewFSStoreAt(root string) (Store, error) {
	if root == "" {
		return nil, fmt.Errorf("blob fs root is empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve blob root %s: %w", root, err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root %s: %w", abs, err)
	}

	nlog.Logger().Info().Str("root", abs).Msg("blob fs store ready")

	return &FSStore{root: abs}, nil
}

// path 把定位符映射为根目录下的文件路径，先做安全校验.
func (s *FSStore) path(locator string) (string, error) {
	if err := ValidateLocator(locator); err != nil {
		return "", err
	}

	return filepath.Join(s.root, locator), nil
}

// Put 写入新 Blob. O_EXCL 保证同一定位符不会被覆盖.
func (s *FSStore) Put(ctx context.Context, locator string, r io.Reader, size int64) (int64, error) {
	path, err := s.path(locator)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create blob %s: %w", locator, err)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		// 写入失败的半成品不保留
		os.Remove(path)

		return 0, fmt.Errorf("write blob %s: %w", locator, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)

		return 0, fmt.Errorf("close blob %s: %w", locator, err)
	}

	return written, nil
}

// Open 打开 Blob 内容流.
func (s *FSStore) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	path, err := s.path(locator)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", locator, err)
	}

	return f, nil
}

// Stat 检查 Blob 是否存在并返回其描述.
func (s *FSStore) Stat(ctx context.Context, locator string) (Entry, error) {
	path, err := s.path(locator)
	if err != nil {
		return Entry{}, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, ErrNotFound
	}

	if err != nil {
		return Entry{}, fmt.Errorf("stat blob %s: %w", locator, err)
	}

	return Entry{Locator: locator, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Remove 删除 Blob.
func (s *FSStore) Remove(ctx context.Context, locator string) error {
	path, err := s.path(locator)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("remove blob %s: %w", locator, err)
	}

	return nil
}

// List 枚举根目录下的全部 Blob，忽略子目录.
func (s *FSStore) List(ctx context.Context) ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list blob root: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))

	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}

		info, err := de.Info()
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			Locator: de.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return entries, nil
}

// Close 关闭后端（文件系统实现无需操作）.
func (s *FSStore) Close() error {
	return nil
}

func init() {
	RegisterStoreFactory(configs.BlobTypeFS, NewFSStore)
}
