// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sakuray/campusvault/pkg/configs"
	"github.com/sakuray/campusvault/pkg/internal/jobs"
	"github.com/sakuray/campusvault/pkg/internal/router"
	"github.com/sakuray/campusvault/pkg/internal/storage"
	"github.com/sakuray/campusvault/pkg/log"
	"github.com/sakuray/campusvault/pkg/metrics"
	"github.com/sakuray/campusvault/pkg/middleware"
	"github.com/sakuray/campusvault/pkg/scheduler"
	"github.com/sakuray/campusvault/pkg/tracing"
)

type App struct {
	Engine  *gin.Engine
	config  *configs.AppConfig
	manager *storage.Manager
	sched   *scheduler.Scheduler
}

// NewApp 按配置路径装配整个应用：配置、日志、追踪、监控、存储、中间件、路由和定时任务.
func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	log.Init()

	// 初始化追踪
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.GinLoggerMiddleware(),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.PrometheusMiddleware(),
		middleware.StorageMiddleware(manager),
	)

	if config.Tracing.Enabled {
		engine.Use(middleware.TracingMiddleware())
	}

	router.RegisterRoutes(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	// 定时任务
	var sched *scheduler.Scheduler
	if config.Jobs.OrphanSweep.Enabled {
		sched, err = scheduler.NewScheduler()
		if err != nil {
			fmt.Printf("Error creating scheduler: %v\n", err)
			os.Exit(1)
		}

		if err := jobs.RegisterCronJobs(sched, manager, config.Jobs); err != nil {
			fmt.Printf("Error registering cron jobs: %v\n", err)
			os.Exit(1)
		}

		sched.Start()
	}

	return &App{
		Engine:  engine,
		config:  config,
		manager: manager,
		sched:   sched,
	}
}

// Run 启动 HTTP 服务.
func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

// Shutdown 停止定时任务、刷新追踪数据并释放存储资源.
func (a *App) Shutdown() error {
	if a.sched != nil {
		if err := a.sched.Stop(); err != nil {
			log.Logger().Warn().Err(err).Msg("scheduler stop failed")
		}
	}

	if a.config.Tracing.Enabled {
		if err := tracing.ShutdownTracer(contextPkg.Background()); err != nil {
			log.Logger().Warn().Err(err).Msg("tracer shutdown failed")
		}
	}

	if a.manager != nil {
		return a.manager.Close()
	}

	return nil
}
