package app

import (
	"context"
	"lawyer_exam_backend/internal/config"
	"lawyer_exam_backend/internal/controller"
	"lawyer_exam_backend/internal/middleware"
	"lawyer_exam_backend/internal/repository"
	"lawyer_exam_backend/internal/service"
	"lawyer_exam_backend/internal/util"
	"lawyer_exam_backend/pkg/configwatcher"
	"lawyer_exam_backend/pkg/database"
	"lawyer_exam_backend/pkg/logger"
	"lawyer_exam_backend/pkg/monitoring"
	"lawyer_exam_backend/pkg/security"
	"lawyer_exam_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	tokenGate       *middleware.APITokenGate
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	exam     *repository.ExamRepository
	report   *repository.ReportRepository
}

type services struct {
	auth        *service.AuthService
	question    *service.QuestionService
	exam        *service.ExamService
	translation *service.TranslationService
	report      *service.ReportService
	storage     *service.StorageService
}

type controllers struct {
	auth        *controller.AuthController
	question    *controller.QuestionController
	exam        *controller.ExamController
	admin       *controller.AdminController
	report      *controller.ReportController
	translation *controller.TranslationController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		exam:     repository.NewExamRepository(db),
		report:   repository.NewReportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.question = service.NewQuestionService(repos.question, cfg)
	s.exam = service.NewExamService(repos.question, repos.exam)
	s.translation = service.NewTranslationService(rdb, cfg.I18N.FallbackPath)
	s.report = service.NewReportService(repos.report)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		question:    controller.NewQuestionController(s.question),
		exam:        controller.NewExamController(s.exam),
		admin:       controller.NewAdminController(s.question, s.storage),
		report:      controller.NewReportController(s.report),
		translation: controller.NewTranslationController(s.translation),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())

	// Service token gate, innermost so rejected requests still show up in
	// the metrics.
	router.Use(a.tokenGate.Handler())
}

// startConfigWatcher reloads the config file on change and fans the new
// config out to the registered callbacks.
func (a *App) startConfigWatcher() {
	go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
		logger.Log.Info("Config reloaded")
		for _, callback := range a.configCallbacks {
			callback(cfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Server.Mode == "debug" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// Redis only backs translations, which degrade to the bundled file,
	// so an unreachable Redis must not stop the server.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, translations served from bundled file", zap.Error(err))
	}

	app := &App{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		tokenGate: middleware.NewAPITokenGate(cfg.Server.APIToken),
	}
	app.RegisterConfigCallback(func(c *config.Config) {
		app.tokenGate.Update(c.Server.APIToken)
	})

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("lawyer-exam-api", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startConfigWatcher()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	logger.Log.Sync()

	log.Println("Server exiting")
}
