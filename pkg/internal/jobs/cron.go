// Package jobs 负责注册与实现业务定时任务（基于 scheduler）.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/sakuray/campusvault/pkg/cache"
	"github.com/sakuray/campusvault/pkg/configs"
	ctxPkg "github.com/sakuray/campusvault/pkg/context"
	"github.com/sakuray/campusvault/pkg/internal/service"
	"github.com/sakuray/campusvault/pkg/internal/storage"
	"github.com/sakuray/campusvault/pkg/log"
	"github.com/sakuray/campusvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务.
// 目前只有孤儿 Blob 清理：上传途中元数据写入失败会留下无引用的 Blob，按配置的 cron 周期回收.
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager, cfg configs.JobsConfig) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	if cfg.OrphanSweep.Enabled {
		grace := time.Duration(cfg.OrphanSweep.GraceMinutes) * time.Minute

		err := sched.AddCron(JobOrphanSweep, cfg.OrphanSweep.Cron, func(ctx context.Context) {
			runOrphanSweep(ctx, mgr, grace)
		}, baseCtx)
		if err != nil {
			return err
		}
	}

	return nil
}

// runOrphanSweep 执行一轮孤儿 Blob 清理.
func runOrphanSweep(ctx context.Context, mgr *storage.Manager, grace time.Duration) {
	l := log.Logger().With().Str("job", JobOrphanSweep).Logger()

	var metaCache *cache.Cache
	if mgr.KV != nil {
		metaCache = cache.NewCache(mgr.KV.KVStore)
	}

	svc := service.New(mgr.DB, mgr.Blob, mgr.MQ, metaCache)

	result, err := svc.SweepOrphans(ctx, grace)
	if err != nil {
		l.Error().Err(err).Msg("orphan sweep failed")
		return
	}

	l.Info().
		Int("scanned", result.Scanned).
		Int("removed", result.Removed).
		Int("skipped", result.Skipped).
		Msg("orphan sweep done")
}
