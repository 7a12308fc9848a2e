package configs

import "github.com/spf13/viper"

const (
	// DefaultOrphanSweepCron 默认每天 04:30 执行孤儿Blob清理.
	DefaultOrphanSweepCron = "30 4 * * *"
	// DefaultOrphanSweepGraceMinutes 清理宽限期（分钟），新于该时间的Blob不会被回收.
	DefaultOrphanSweepGraceMinutes = 60
)

// JobsConfig 定时任务配置.
type JobsConfig struct {
	OrphanSweep OrphanSweepConfig `mapstructure:"orphan_sweep"`
}

// OrphanSweepConfig 孤儿Blob清理任务配置.
// 上传过程中元数据写入失败会留下无记录引用的Blob，该任务周期性回收它们.
type OrphanSweepConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Cron         string `mapstructure:"cron"`
	GraceMinutes int    `mapstructure:"grace_minutes" rule:"min=1"`
}

func (c *JobsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("jobs.orphan_sweep.enabled", false)
	v.SetDefault("jobs.orphan_sweep.cron", DefaultOrphanSweepCron)
	v.SetDefault("jobs.orphan_sweep.grace_minutes", DefaultOrphanSweepGraceMinutes)
}
