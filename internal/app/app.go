package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pfolio_backend/internal/config"
	"pfolio_backend/internal/controller"
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/service"
	"pfolio_backend/pkg/configwatcher"
	"pfolio_backend/pkg/logger"
	"pfolio_backend/pkg/monitoring"
	"pfolio_backend/pkg/security"
	"pfolio_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Store           *repository.Store
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	ai         *service.AIService
	storage    *service.StorageService
	sessions   *service.SessionManager
	auth       *service.AuthService
	user       *service.UserService
	activities *service.ActivityService
	admin      *service.AdminService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	activity  *controller.ActivityController
	dashboard *controller.DashboardController
	admin     *controller.AdminController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initServices(ctx context.Context, store *repository.Store, cfg *config.Config) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.storage = service.NewStorageService(ctx, cfg)

	s.sessions = service.NewSessionManager()
	// 资料更新后同步到所有会话
	store.OnUserUpdate(s.sessions.Refresh)

	s.auth = service.NewAuthService(store, s.sessions, cfg)
	s.user = service.NewUserService(store)
	s.activities = service.NewActivityService(store, s.ai, s.storage, cfg.Storage.MaxProofBytes())
	s.admin = service.NewAdminService(store)
	s.dashboard = service.NewDashboardService(store, s.activities, s.admin)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		activity:  controller.NewActivityController(s.activities),
		dashboard: controller.NewDashboardController(s.dashboard),
		admin:     controller.NewAdminController(s.admin),
		health:    controller.NewHealthController(a.Store, s.ai, s.storage),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	store := repository.NewStore()
	if cfg.Seed.DemoData && repository.SeedDemoData(store) {
		logger.Log.Info("Demo data seeded", zap.Any("counts", store.Counts()))
	}

	app := &App{
		Config: cfg,
		Store:  store,
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	// 监控初始化
	monitoring.Init()

	services := app.initServices(context.Background(), store, cfg)
	app.services = services
	controllers := app.initControllers(services)

	// 热更新只影响AI配置，其余配置需重启
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.ai.UpdateConfig(newCfg.AI)
		logger.Log.Info("AI config reloaded", zap.Bool("configured", newCfg.AI.Configured()))
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = max(cfg.Storage.MaxProofBytes(), 32<<20)
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, services, cfg)

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	if a.Config.ConfigPath == "" {
		return
	}
	err := configwatcher.WatchConfig(ctx, a.Config.ConfigPath, func(newCfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
	if err != nil {
		logger.Log.Warn("Config watcher stopped", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go a.watchConfig(watchCtx)
	go a.services.sessions.Sweep(watchCtx, time.Minute)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting", zap.Int("open_sessions", a.services.sessions.Count()))
}
