package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"

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
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	department *repository.DepartmentRepository
	classroom  *repository.ClassroomRepository
	post       *repository.PostRepository
	meeting    *repository.MeetingRepository
	assignment *repository.AssignmentRepository
	quiz       *repository.QuizRepository
	response   *repository.QuizResponseRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	department *service.DepartmentService
	storage    *service.StorageService
	classroom  *service.ClassroomService
	post       *service.PostService
	meeting    *service.MeetingService
	assignment *service.AssignmentService
	quiz       *service.QuizService
	response   *service.QuizResponseService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	department *controller.DepartmentController
	classroom  *controller.ClassroomController
	post       *controller.PostController
	meeting    *controller.MeetingController
	assignment *controller.AssignmentController
	quiz       *controller.QuizController
	response   *controller.QuizResponseController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口，由 configwatcher 调用
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		department: repository.NewDepartmentRepository(db),
		classroom:  repository.NewClassroomRepository(db),
		post:       repository.NewPostRepository(db),
		meeting:    repository.NewMeetingRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		quiz:       repository.NewQuizRepository(db),
		response:   repository.NewQuizResponseRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, repos.department, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.department = service.NewDepartmentService(repos.department)
	s.classroom = service.NewClassroomService(repos.classroom, repos.user, repos.department)
	s.post = service.NewPostService(repos.post)
	s.meeting = service.NewMeetingService(repos.meeting)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.classroom, s.storage)
	s.quiz = service.NewQuizService(repos.quiz, repos.classroom, rdb)

	var locker service.SubmissionLocker
	if rdb != nil {
		locker = service.NewRedisSubmissionLocker(rdb)
	}
	s.response = service.NewQuizResponseService(repos.response, repos.quiz, repos.classroom, locker)

	s.dashboard = service.NewDashboardService(repos.classroom, repos.assignment, repos.meeting, repos.quiz, repos.response)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user, s.auth),
		department: controller.NewDepartmentController(s.department),
		classroom:  controller.NewClassroomController(s.classroom, s.auth),
		post:       controller.NewPostController(s.post, s.classroom, s.auth),
		meeting:    controller.NewMeetingController(s.meeting, s.classroom, s.auth),
		assignment: controller.NewAssignmentController(s.assignment, s.classroom, s.auth),
		quiz:       controller.NewQuizController(s.quiz, s.classroom, s.auth),
		response:   controller.NewQuizResponseController(s.response, s.quiz, s.classroom, s.auth),
		dashboard:  controller.NewDashboardController(s.dashboard, s.auth),
		health:     controller.NewHealthController(db, rdb),
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

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
