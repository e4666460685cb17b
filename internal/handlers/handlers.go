package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"apexfit/api/internal/config"
	"apexfit/api/internal/middleware"
	"apexfit/api/internal/models"
	"apexfit/api/internal/repository"
	"apexfit/api/internal/service"
	"apexfit/api/internal/storage"
)

type HandlerSet struct {
	log             zerolog.Logger
	cfg             *config.AppConfig
	authService     *service.AuthService
	analyzeService  *service.AnalyzeService
	progressService *service.ProgressService
	db              *pgxpool.Pool
	cache           *redis.Client
	store           storage.Store
	users           *repository.UserRepository
	sessions        *repository.SessionRepository
	analyses        *repository.AnalysisRepository
	photos          *repository.PhotoRepository
}

func NewHandlerSet(
	log zerolog.Logger,
	db *pgxpool.Pool,
	cache *redis.Client,
	store storage.Store,
	model service.ModelClient,
	cfg *config.AppConfig,
) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	timelineCache := service.NewTimelineCache(cache, log)
	auth := service.NewAuthService(userRepo, sessionRepo, cfg, log)
	analyze := service.NewAnalyzeService(model, store, analysisRepo, photoRepo, timelineCache, log)
	progress := service.NewProgressService(photoRepo, analysisRepo, timelineCache, log)

	return HandlerSet{
		log:             log,
		cfg:             cfg,
		authService:     auth,
		analyzeService:  analyze,
		progressService: progress,
		db:              db,
		cache:           cache,
		store:           store,
		users:           userRepo,
		sessions:        sessionRepo,
		analyses:        analysisRepo,
		photos:          photoRepo,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)
	router.GET("/uploads/*filepath", h.ServeUpload)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)

		protected := v1.Group("/auth")
		protected.Use(middleware.Auth(h.cfg, h.users, h.sessions))
		protected.GET("/me", h.Me)
		protected.GET("/sessions", h.ListSessions)
		protected.DELETE("/sessions/:deviceId", h.RevokeSession)
	}

	authed := v1.Group("")
	authed.Use(middleware.Auth(h.cfg, h.users, h.sessions))
	authed.POST("/analyze", h.Analyze)
	authed.POST("/photos", h.UploadPhoto)
	authed.GET("/progress", h.ProgressTimeline)
	authed.GET("/workouts", h.ListWorkoutPlans)
	authed.GET("/workouts/:planId", h.GetWorkoutPlan)

	admin := v1.Group("/admin")
	admin.Use(
		middleware.Auth(h.cfg, h.users, h.sessions),
		middleware.RequireRoles(models.UserRoleAdmin),
	)
	admin.GET("/analyses", h.AdminListAnalyses)
}
