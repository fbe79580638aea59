package app

import (
	"context"
	"log"
	"math_tutor_backend/internal/config"
	"math_tutor_backend/internal/controller"
	"math_tutor_backend/internal/repository"
	"math_tutor_backend/internal/service"
	"math_tutor_backend/pkg/database"
	"math_tutor_backend/pkg/logger"
	"math_tutor_backend/pkg/monitoring"
	"math_tutor_backend/pkg/security"
	"math_tutor_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	Redis   *redis.Client
	sweeper *service.Sweeper
}

type stores struct {
	solution repository.SolutionStore
	student  repository.StudentStore
	teacher  repository.TeacherStore
}

type services struct {
	solution  *service.SolutionService
	analytics *service.AnalyticsService
	teacher   *service.TeacherService
}

type controllers struct {
	solution *controller.SolutionController
	teacher  *controller.TeacherController
	health   *controller.HealthController
}

// initStores 数据库可用时用 MySQL 存储，连不上则降级为内存存储继续服务
func (a *App) initStores(db *gorm.DB, rdb *redis.Client) *stores {
	if db == nil {
		logger.Log.Warn("running with in-memory stores, data will not survive a restart")
		return &stores{
			solution: repository.NewMemorySolutionStore(),
			student:  repository.NewMemoryStudentStore(),
			teacher:  repository.NewMemoryTeacherStore(),
		}
	}
	return &stores{
		solution: repository.NewSolutionRepository(db),
		student:  repository.NewStudentRepository(db),
		teacher:  repository.NewTeacherRepository(db, rdb),
	}
}

func (a *App) initServices(st *stores, cfg *config.Config) *services {
	return &services{
		solution:  service.NewSolutionService(st.solution, st.student, cfg.Share.BaseDomain),
		analytics: service.NewAnalyticsService(st.solution, cfg.Share.BaseDomain),
		teacher:   service.NewTeacherService(st.teacher),
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		solution: controller.NewSolutionController(s.solution),
		teacher:  controller.NewTeacherController(s.analytics, a.Config),
		health:   controller.NewHealthController(),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// 存储连不上只降级不退出：可用性优先于持久性
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Warn("database unavailable, falling back to in-memory storage", zap.Error(err))
		db = nil
	}

	var rdb *redis.Client
	if db != nil {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("redis unavailable, teacher lookups will not be cached", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	st := app.initStores(db, rdb)
	services := app.initServices(st, cfg)
	controllers := app.initControllers(services)

	if err := services.teacher.Bootstrap(cfg.Share.BootstrapTeacherID); err != nil {
		logger.Log.Error("bootstrap teacher creation failed", zap.Error(err))
	}

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("math-tutor", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Error("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, cfg)

	app.sweeper = service.NewSweeper(services.solution, time.Hour)
	app.sweeper.Start()

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
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

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
