package service

import (
	"context"

	"github.com/sakuray/campusvault/pkg/internal/model"
	"github.com/sakuray/campusvault/pkg/internal/types"
	nlog "github.com/sakuray/campusvault/pkg/log"
	"github.com/sakuray/campusvault/pkg/queue"
)

// List 分页列出文件元数据，默认按上传时间倒序.
func (fs *FileService) List(ctx context.Context, q *types.FilePageQuery) (*types.Page[types.FileView], error) {
	if q.Page < 0 {
		return nil, NewValidationError("page must not be negative")
	}

	q.Normalize()

	order, err := resolveFileOrder(q)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := fs.dbClient.WithContext(ctx).Model(&model.File{}).Count(&total).Error; err != nil {
		return nil, NewStorageError("metadata count", err)
	}

	var records []model.File

	err = fs.dbClient.WithContext(ctx).
		Order(order).
		Offset(q.Page * q.Size).
		Limit(q.Size).
		Find(&records).Error
	if err != nil {
		return nil, NewStorageError("metadata list", err)
	}

	views := make([]types.FileView, 0, len(records))
	for i := range records {
		views = append(views, toFileView(&records[i]))
	}

	page := types.NewPage(views, q.Page, q.Size, total)

	return &page, nil
}

// Update 部分更新文件元数据.
// 请求中缺席的字段保持原值，显式出现的空描述会被应用；定位符和大小不可变.
func (fs *FileService) Update(ctx context.Context, id uint, req *types.FileUpdateRequest) (*types.FileView, error) {
	if req.Name == nil && req.Description == nil {
		return nil, NewValidationError("no updatable field in request")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, NewValidationError("file name cannot be empty")
		}

		if len(*req.Name) > MaxFileNameLength {
			return nil, NewValidationError("file name exceeds %d characters", MaxFileNameLength)
		}
	}

	if req.Description != nil && len(*req.Description) > MaxDescriptionLength {
		return nil, NewValidationError("description exceeds %d characters", MaxDescriptionLength)
	}

	record, err := fs.findFile(ctx, id)
	if err != nil {
		return nil, err
	}

	// 只更新出现的字段，其余列不触碰
	changes := map[string]any{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}

	if req.Description != nil {
		changes["description"] = *req.Description
	}

	err = fs.dbClient.WithContext(ctx).Model(record).Updates(changes).Error
	if err != nil {
		return nil, NewStorageError("metadata update", err)
	}

	fs.invalidateMeta(ctx, id)
	fs.publishFileEvent(ctx, queue.TopicFileUpdated, record)

	view := toFileView(record)

	return &view, nil
}

// Delete 删除文件.
// Blob 删除是尽力而为：失败只记录日志，元数据删除照常进行.
// 元数据不存在时返回 NotFoundError，重复删除同一 ID 也是如此.
func (fs *FileService) Delete(ctx context.Context, id uint) error {
	record, err := fs.findFile(ctx, id)
	if err != nil {
		return err
	}

	if err := fs.blobClient.Remove(ctx, record.Locator); err != nil {
		nlog.Logger().Warn().
			Uint("id", id).
			Str("locator", record.Locator).
			Err(err).
			Msg("blob delete failed, removing metadata anyway")
	}

	if err := fs.dbClient.WithContext(ctx).Delete(&model.File{}, id).Error; err != nil {
		return NewStorageError("metadata delete", err)
	}

	fs.invalidateMeta(ctx, id)
	fs.publishFileEvent(ctx, queue.TopicFileDeleted, record)

	return nil
}

// Get 按主键返回文件元数据视图.
func (fs *FileService) Get(ctx context.Context, id uint) (*types.FileView, error) {
	record, err := fs.findFile(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toFileView(record)

	return &view, nil
}

// invalidateMeta 删除元数据缓存，失败只记录日志.
func (fs *FileService) invalidateMeta(ctx context.Context, id uint) {
	if fs.metaCache == nil {
		return
	}

	if err := fs.metaCache.Delete(ctx, metaCacheKey(id)); err != nil {
		nlog.Logger().Warn().Uint("id", id).Err(err).Msg("meta cache invalidation failed")
	}
}
