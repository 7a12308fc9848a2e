package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"gorm.io/gorm"

	"github.com/sakuray/campusvault/pkg/internal/model"
	"github.com/sakuray/campusvault/pkg/internal/types"
	nlog "github.com/sakuray/campusvault/pkg/log"
	"github.com/sakuray/campusvault/pkg/metrics"
	"github.com/sakuray/campusvault/pkg/queue"
)

// Upload 上传文件：先写 Blob，成功后再写元数据.
// 元数据写入失败时 Blob 保留为孤儿，由后台清理任务回收，上传本身报错.
func (fs *FileService) Upload(ctx context.Context, originalName string, r io.Reader, size int64, description string) (*types.FileView, error) {
	if originalName == "" {
		return nil, NewValidationError("file name is empty")
	}

	if len(originalName) > MaxFileNameLength {
		return nil, NewValidationError("file name exceeds %d characters", MaxFileNameLength)
	}

	if size <= 0 {
		return nil, NewValidationError("uploaded file is empty")
	}

	if len(description) > MaxDescriptionLength {
		return nil, NewValidationError("description exceeds %d characters", MaxDescriptionLength)
	}

	locator := newLocator(originalName)

	// 边写边算内容摘要
	hasher := xxhash.New()
	written, err := fs.blobClient.Put(ctx, locator, io.TeeReader(r, hasher), size)
	if err != nil {
		return nil, NewStorageError("blob write", err)
	}

	record := model.File{
		Name:        originalName,
		Locator:     locator,
		Description: description,
		Size:        written,
		Hash:        fmt.Sprintf("%016x", hasher.Sum64()),
		UploadTime:  time.Now(),
	}

	if err := fs.dbClient.WithContext(ctx).Create(&record).Error; err != nil {
		// Blob 已落盘但没有元数据引用，留给孤儿清理任务处理
		nlog.Logger().Warn().
			Str("locator", locator).
			Err(err).
			Msg("metadata insert failed, blob left orphaned")

		return nil, NewStorageError("metadata insert", err)
	}

	metrics.UploadBytes.Add(float64(written))

	fs.publishFileEvent(ctx, queue.TopicFileUploaded, &record)

	view := toFileView(&record)

	return &view, nil
}

// publishFileEvent 发布文件生命周期事件，失败只记录日志.
func (fs *FileService) publishFileEvent(ctx context.Context, topic string, f *model.File) {
	if fs.mqClient == nil {
		return
	}

	payload := queue.FileEventPayload{
		FileID:   f.ID,
		Name:     f.Name,
		Locator:  f.Locator,
		Size:     f.Size,
		Hash:     f.Hash,
		Occurred: time.Now(),
	}

	if err := queue.Publish(ctx, fs.mqClient, topic, payload); err != nil {
		nlog.Logger().Warn().Str("topic", topic).Err(err).Msg("publish file event failed")
	}
}

// findFile 按主键加载元数据，不存在时返回 NotFoundError.
func (fs *FileService) findFile(ctx context.Context, id uint) (*model.File, error) {
	var record model.File

	err := fs.dbClient.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("file metadata not found: id=%d", id)
	}

	if err != nil {
		return nil, NewStorageError("metadata query", err)
	}

	return &record, nil
}
