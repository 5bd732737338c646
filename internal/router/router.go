package router

import (
	"net/http"

	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/handlers"
	"github.com/clubhousefc/backend/internal/middleware"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/services"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/clubhousefc/backend/pkg/config"
	"github.com/clubhousefc/backend/pkg/storage"
	"github.com/clubhousefc/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP layer is built from.
// Optional ones may be left nil.
type Deps struct {
	Store  repositories.Store
	Tokens *session.JWTManager
	Logger echo.Logger

	Images   storage.Backend
	Events   events.Publisher
	Firebase session.IDTokenVerifier
	Limiter  *middleware.Limiter
	Health   map[string]handlers.HealthCheck
}

// Migrate creates or updates the relational schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Notification{},
	)
}

// New builds the echo instance with global middleware and every route
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	if d.Logger != nil {
		e.Logger = d.Logger
	}
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(e)

	config.SetupMiddleware(e)
	e.Use(middleware.Metrics())

	SetupRoutes(e, d)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) {
	if d.Events == nil {
		d.Events = events.Noop{}
	}

	verifier := middleware.Verifiers(d.Tokens, d.Firebase, d.Store.Users())
	guards := handlers.Guards{
		Auth:         middleware.RequireAuth(verifier),
		OptionalAuth: middleware.OptionalAuth(verifier),
		RateLimit:    middleware.Noop,
	}
	if d.Limiter != nil {
		guards.RateLimit = middleware.RateLimit(d.Limiter)
	}

	// Health check and metrics - always accessible
	e.GET("/health", handlers.NewHealthHandler(d.Health).Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "ClubHouse FC API"})
	})

	// --- Services ---
	likeService := services.NewLikeService(d.Store, d.Events)
	followService := services.NewFollowService(d.Store, d.Events)
	commentService := services.NewCommentService(d.Store, d.Events)
	notificationService := services.NewNotificationService(d.Store)
	postService := services.NewPostService(d.Store, d.Images)
	memberService := services.NewMemberService(d.Store, d.Images)
	authService := services.NewAuthService(d.Store, d.Tokens, d.Firebase)

	api := e.Group("/api/v1")

	handlers.NewAuthHandler(authService).RegisterAuthRoutes(api, guards)
	handlers.NewPostHandler(postService).RegisterPostRoutes(api, guards)
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(api, guards)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api, guards)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api, guards)
	handlers.NewMemberHandler(memberService).RegisterMemberRoutes(api, guards)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api, guards)

	if d.Images != nil {
		handlers.NewMediaHandler(d.Images).RegisterMediaRoutes(e)
	}

	e.Logger.Info("All routes configured.")
}
