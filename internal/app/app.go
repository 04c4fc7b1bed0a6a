package app

import (
	"context"
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/controller"
	"hr_learning_backend/internal/repository"
	"hr_learning_backend/internal/service"
	"hr_learning_backend/pkg/configwatcher"
	"hr_learning_backend/pkg/database"
	"hr_learning_backend/pkg/logger"
	"hr_learning_backend/pkg/monitoring"
	"hr_learning_backend/pkg/security"
	"hr_learning_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
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
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	employee    *repository.EmployeeRepository
	course      *repository.CourseRepository
	progress    *repository.ProgressRepository
	activity    *repository.ActivityRepository
	practice    *repository.PracticeQuizRepository
	quiz        *repository.QuizRepository
	attempt     *repository.QuizAttemptRepository
	liveSession *repository.LiveSessionRepository
}

type services struct {
	identity    *service.IdentityService
	heatmap     *service.HeatmapService
	transcript  *service.TranscriptService
	quiz        *service.QuizService
	assessment  *service.AssessmentService
	progress    *service.ProgressService
	score       *service.ScoreService
	liveSession *service.LiveSessionService
}

type controllers struct {
	learning    *controller.LearningController
	quiz        *controller.QuizController
	progress    *controller.CourseProgressController
	liveSession *controller.LiveSessionController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		employee:    repository.NewEmployeeRepository(db),
		course:      repository.NewCourseRepository(db),
		progress:    repository.NewProgressRepository(db),
		activity:    repository.NewActivityRepository(db),
		practice:    repository.NewPracticeQuizRepository(db),
		quiz:        repository.NewQuizRepository(db),
		attempt:     repository.NewQuizAttemptRepository(db),
		liveSession: repository.NewLiveSessionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.identity = service.NewIdentityService(repos.employee)
	s.heatmap = service.NewHeatmapService(service.HeatmapSources{
		Logs:         repos.activity,
		Practice:     repos.practice,
		Quizzes:      repos.quiz,
		Attendance:   repos.liveSession,
		Participants: repos.liveSession,
		Progress:     repos.progress,
	}, service.PolicyFromConfig(cfg.Learning))

	s.transcript = service.NewTranscriptService(cfg.Transcript, rdb)

	generator, err := service.NewQuestionGenerator(context.Background(), cfg.AI)
	if err != nil {
		logger.Log.Warn("Question generator disabled, placeholder questions will be used", zap.Error(err))
		generator = nil
	}
	if generator == nil {
		logger.Log.Info("No AI provider configured")
	}

	s.quiz = service.NewQuizService(repos.course, repos.quiz, repos.attempt, s.transcript, generator, cfg)
	s.assessment = service.NewAssessmentService(repos.course, repos.progress, s.heatmap, cfg.Learning.QualificationScore)
	s.progress = service.NewProgressService(repos.course, repos.progress, repos.practice)
	s.score = service.NewScoreService(repos.progress, repos.course, repos.quiz, repos.attempt)
	s.liveSession = service.NewLiveSessionService(repos.liveSession)

	// 热更新：评分策略与日志级别
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.heatmap.SetPolicy(service.PolicyFromConfig(newCfg.Learning))
	})
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.ApplyMode(newCfg.Server.Mode)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		learning:    controller.NewLearningController(s.identity, s.heatmap, s.score),
		quiz:        controller.NewQuizController(s.identity, s.quiz, s.assessment),
		progress:    controller.NewCourseProgressController(s.identity, s.progress),
		liveSession: controller.NewLiveSessionController(s.identity, s.liveSession),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不迁移，需要显式 --migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 字幕缓存不可用时直接回源
		logger.Log.Warn("Redis unavailable, transcript cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("hr-learning", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	app.registerRoutes(router, controllers, cfg)
	return app
}

func (a *App) watchConfig() {
	if !a.Config.Server.WatchConfig {
		return
	}
	path := filepath.Join(a.ConfigDir, "config.yaml")
	go func() {
		err := configwatcher.WatchConfig(path, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.watchConfig()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
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
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
