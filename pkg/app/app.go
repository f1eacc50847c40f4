// Package app 提供应用程序的初始化和启动.
package app

import (
	contextPkg "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bedrib/mediamover/pkg/api"
	"github.com/bedrib/mediamover/pkg/configs"
	"github.com/bedrib/mediamover/pkg/context"
	"github.com/bedrib/mediamover/pkg/internal/jobs"
	"github.com/bedrib/mediamover/pkg/internal/model"
	"github.com/bedrib/mediamover/pkg/internal/service"
	"github.com/bedrib/mediamover/pkg/internal/storage"
	"github.com/bedrib/mediamover/pkg/log"
	"github.com/bedrib/mediamover/pkg/metrics"
	"github.com/bedrib/mediamover/pkg/middleware"
	"github.com/bedrib/mediamover/pkg/rule"
	"github.com/bedrib/mediamover/pkg/scheduler"
	"github.com/bedrib/mediamover/pkg/tracing"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig

	ctx   contextPkg.Context
	sched *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	if err := rule.ValidateStruct(config); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

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

	ctx = context.WithStorageManager(ctx, manager)

	l := log.Logger()

	// 建表
	if err := manager.GetDBClient().AutoMigrate(
		&model.User{}, &model.FileUpload{}, &model.SystemMetric{},
	); err != nil {
		l.Fatal().Err(err).Msg("auto migrate failed")
	}

	// 创建初始管理员，已存在则跳过
	service.NewUserService(ctx).SeedAdmin(ctx, config.Auth)

	// 启动时验证 rclone 远端可达，失败只告警不阻塞
	if err := manager.GetRcloneClient().HealthCheck(); err != nil {
		l.Warn().Err(err).Msg("rclone configuration check failed")
	}

	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CSPMiddleware(),
		middleware.CORSMiddleware(config.Server),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.StorageMiddleware(manager),
	)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	// 后台任务：系统指标定时采样
	sched, err := scheduler.NewScheduler()
	if err != nil {
		l.Fatal().Err(err).Msg("create scheduler failed")
	}

	if config.Metrics.Enabled {
		if err := jobs.RegisterMetricSampler(sched, ctx, config.Metrics.CollectInterval); err != nil {
			l.Error().Err(err).Msg("register metric sampler failed")
		}
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		l.Error().Err(err).Msg("register cron jobs failed")
	}

	engine.Use(middleware.SchedulerMiddleware(sched))

	api.RegisterRoutes(engine, manager)

	return &App{
		Engine: engine,
		config: config,
		ctx:    ctx,
		sched:  sched,
	}
}

// Run 启动 HTTP 服务并阻塞到收到退出信号.
func (a *App) Run() error {
	l := log.Logger()

	a.sched.Start()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
	}

	errCh := make(chan error, 1)

	go func() {
		l.Info().Str("addr", srv.Addr).Msg("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		l.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := contextPkg.WithTimeout(contextPkg.Background(), a.config.Server.GetTimeoutDuration())
	defer cancel()

	if err := a.sched.Stop(); err != nil {
		l.Warn().Err(err).Msg("scheduler shutdown failed")
	}

	if err := tracing.ShutdownTracer(shutdownCtx); err != nil {
		l.Warn().Err(err).Msg("tracer shutdown failed")
	}

	return srv.Shutdown(shutdownCtx)
}
