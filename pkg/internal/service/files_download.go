package service

import (
	"context"
	"errors"
	"io"

	"github.com/sakuray/campusvault/pkg/cache"
	"github.com/sakuray/campusvault/pkg/internal/storage/blob"
	"github.com/sakuray/campusvault/pkg/internal/types"
)

// Download 按主键打开文件内容流.
// 元数据存在但 Blob 缺失视为悬挂记录，返回带独立消息的 NotFoundError，
// 不会和元数据缺失混为一谈.
func (fs *FileService) Download(ctx context.Context, id uint) (*types.FileView, io.ReadCloser, error) {
	view, err := fs.cachedMeta(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := fs.blobClient.Open(ctx, view.Locator)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil, NewNotFoundError("file content missing for id=%d (dangling record)", id)
	}

	if err != nil {
		return nil, nil, NewStorageError("blob open", err)
	}

	return view, rc, nil
}

// cachedMeta 带缓存地加载元数据视图. 缓存不可用时直接回源数据库.
func (fs *FileService) cachedMeta(ctx context.Context, id uint) (*types.FileView, error) {
	if fs.metaCache == nil {
		return fs.Get(ctx, id)
	}

	view, err := cache.GetOrSet(ctx, fs.metaCache, metaCacheKey(id), func() (types.FileView, error) {
		v, err := fs.Get(ctx, id)
		if err != nil {
			return types.FileView{}, err
		}

		return *v, nil
	}, DefaultMetaCacheTTL)
	if err != nil {
		return nil, err
	}

	return &view, nil
}
