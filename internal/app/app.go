package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intellistudy_backend/internal/config"
	"intellistudy_backend/internal/controller"
	"intellistudy_backend/internal/repository"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/pkg/configwatcher"
	"intellistudy_backend/pkg/database"
	"intellistudy_backend/pkg/logger"
	"intellistudy_backend/pkg/monitoring"
	"intellistudy_backend/pkg/security"
	"intellistudy_backend/pkg/tracing"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	pubsub          *gochannel.GoChannel
	tracer          *sdktrace.TracerProvider
	ctx             context.Context
	cancel          context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user             *repository.UserRepository
	quizResult       *repository.QuizResultRepository
	preference       *repository.PreferenceRepository
	translationCache *repository.TranslationCacheRepository
}

type services struct {
	preferences  *service.PreferenceStore
	translator   *service.MyMemoryClient
	translations *service.TranslationCache
	roleLookup   *service.RoleLookupClient
	sessions     *service.SessionManager
	quiz         *service.QuizResultService
	user         *service.UserService
	dashboard    *service.DashboardService
	profileSync  *service.ProfileSyncService
}

type controllers struct {
	quiz        *controller.QuizController
	user        *controller.UserController
	preference  *controller.PreferenceController
	dashboard   *controller.DashboardController
	translation *controller.TranslationController
	admin       *controller.AdminController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:             repository.NewUserRepository(db),
		quizResult:       repository.NewQuizResultRepository(db),
		preference:       repository.NewPreferenceRepository(rdb),
		translationCache: repository.NewTranslationCacheRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.preferences = service.NewPreferenceStore(repos.preference, service.NewPreferenceEvents(a.pubsub))
	s.translator = service.NewMyMemoryClient(cfg.Translation)
	s.translations = service.NewTranslationCache(repos.translationCache, s.translator)
	s.roleLookup = service.NewRoleLookupClient(cfg.RoleLookup)
	s.sessions = service.NewSessionManager(cfg.Session.TTL(), s.preferences, s.translations, s.roleLookup, cfg.Translation.Concurrency)
	s.quiz = service.NewQuizResultService(repos.quizResult, cfg.Quiz.QueryTimeout())
	s.user = service.NewUserService(repos.user)
	s.dashboard = service.NewDashboardService(cfg.Dashboard.CourseCreditLimit)
	s.profileSync = service.NewProfileSyncService(a.pubsub, repos.user, s.sessions)

	// 可热更新的配置
	a.RegisterConfigCallback(func(c *config.Config) {
		s.dashboard.SetCreditLimit(c.Dashboard.CourseCreditLimit)
		s.translator.SetTimeout(c.Translation.Timeout())
		s.roleLookup.SetTimeout(c.RoleLookup.Timeout())
		s.quiz.SetTimeout(c.Quiz.QueryTimeout())
	})

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		quiz:        controller.NewQuizController(s.quiz),
		user:        controller.NewUserController(s.user),
		preference:  controller.NewPreferenceController(s.preferences),
		dashboard:   controller.NewDashboardController(s.dashboard, s.preferences),
		translation: controller.NewTranslationController(s.translations),
		admin:       controller.NewAdminController(s.sessions, repos.translationCache, s.quiz),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit, "/metrics", "/api/health"))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	if err := s.profileSync.Consume(a.ctx); err != nil {
		logger.Log.Error("Failed to start profile sync", zap.Error(err))
	}
}

// New 组装应用，数据库和 Redis 由调用方提供
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		pubsub: service.NewPubSub(),
		ctx:    ctx,
		cancel: cancel,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, repos, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, services, cfg)
	app.startBackgroundTasks(services)

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下只有显式指定才迁移
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("intellistudy-dashboard", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

// WatchConfig 配置文件不存在时不启用热更新
func (a *App) WatchConfig(configFile string) {
	if _, err := os.Stat(configFile); err != nil {
		logger.Log.Info("Config hot reload disabled", zap.String("file", configFile))
		return
	}
	if err := configwatcher.WatchConfig(a.ctx, configFile, a.applyConfig); err != nil {
		logger.Log.Error("Failed to watch config", zap.Error(err))
	}
}

func (a *App) Close() {
	a.cancel()
	if err := a.pubsub.Close(); err != nil {
		logger.Log.Error("Failed to close pubsub", zap.Error(err))
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	a.Close()
	log.Println("Server exiting")
}
