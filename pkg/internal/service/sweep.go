package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sakuray/campusvault/pkg/internal/model"
	nlog "github.com/sakuray/campusvault/pkg/log"
	"github.com/sakuray/campusvault/pkg/metrics"
)

const sweepConcurrency = 4

// SweepResult 一次孤儿清理的统计.
type SweepResult struct {
	Scanned int
	Removed int
	Skipped int
}

// SweepOrphans 回收没有元数据引用的孤儿 Blob.
// 新于宽限期的 Blob 不会被动，避免误删正在上传的内容.
func (fs *FileService) SweepOrphans(ctx context.Context, grace time.Duration) (*SweepResult, error) {
	entries, err := fs.blobClient.List(ctx)
	if err != nil {
		return nil, NewStorageError("blob list", err)
	}

	result := &SweepResult{Scanned: len(entries)}
	cutoff := time.Now().Add(-grace)

	// 一次取出全部被引用的定位符，避免逐个查询
	var locators []string
	if err := fs.dbClient.WithContext(ctx).
		Model(&model.File{}).
		Pluck("locator", &locators).Error; err != nil {
		return nil, NewStorageError("locator list", err)
	}

	referenced := make(map[string]struct{}, len(locators))
	for _, loc := range locators {
		referenced[loc] = struct{}{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	removed := make(chan string, len(entries))

	for _, entry := range entries {
		if _, ok := referenced[entry.Locator]; ok {
			continue
		}

		if entry.ModTime.After(cutoff) {
			result.Skipped++
			continue
		}

		g.Go(func() error {
			if err := fs.blobClient.Remove(gctx, entry.Locator); err != nil {
				// 清理是尽力而为，单个失败不终止整轮
				nlog.Logger().Warn().
					Str("locator", entry.Locator).
					Err(err).
					Msg("orphan blob removal failed")

				return nil
			}

			removed <- entry.Locator

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	close(removed)

	for loc := range removed {
		result.Removed++

		metrics.OrphanBlobsSwept.Inc()

		nlog.Logger().Info().Str("locator", loc).Msg("orphan blob removed")
	}

	return result, nil
}
