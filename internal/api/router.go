package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/api/handler"
	"github.com/newsdesk/newsreader/internal/api/middleware"
	"github.com/newsdesk/newsreader/internal/api/render"
	"github.com/newsdesk/newsreader/internal/api/session"
	"github.com/newsdesk/newsreader/internal/core/ports"
	"github.com/newsdesk/newsreader/internal/core/service"
	"github.com/newsdesk/newsreader/internal/infrastructure/db/postgres"
	redisstore "github.com/newsdesk/newsreader/internal/infrastructure/db/redis"
	"github.com/newsdesk/newsreader/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs wired from main.
type Dependencies struct {
	DB            *sql.DB
	Redis         *redis.Client
	News          ports.NewsProvider
	SessionSecret string
	SessionTTL    time.Duration
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Dependencies ---
	accountRepo := postgres.NewAccountRepository(deps.DB)
	articleRepo := postgres.NewArticleRepository(deps.DB)
	sessions := redisstore.NewSessionStore(deps.Redis, deps.SessionTTL)
	codec := session.NewCookieCodec(deps.SessionSecret, deps.SessionTTL)

	authService := service.NewAuthService(accountRepo, deps.Log)
	directoryService := service.NewDirectoryService(accountRepo, deps.Log)
	profileService := service.NewProfileService(accountRepo, deps.Log)
	articleService := service.NewArticleService(articleRepo, deps.Log)

	authHandler := handler.NewAuthHandler(authService, sessions, codec, deps.Log)
	adminHandler := handler.NewAdminHandler(directoryService, sessions, deps.Log)
	articleHandler := handler.NewArticleHandler(articleService, sessions, deps.Log)
	pageHandler := handler.NewPageHandler(deps.News, profileService, sessions, deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("newsreader"))
	e.Use(middleware.LoadSession(codec, sessions))

	// --- Public pages ---
	e.GET("/", pageHandler.Landing)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/signup", authHandler.ShowSignup)
	e.POST("/signup", authHandler.Signup)
	e.GET("/logout", authHandler.Logout)
	e.POST("/logout", authHandler.Logout)

	// --- Authenticated pages ---
	authed := e.Group("", middleware.RequireUser())
	authed.GET("/saved", articleHandler.SavedPage)
	authed.GET("/preferences", pageHandler.Preferences)
	authed.POST("/preferences", pageHandler.UpdatePreferences)

	// --- Authenticated JSON endpoints ---
	ajax := e.Group("", middleware.RequireUserJSON())
	ajax.POST("/save-article", articleHandler.Save)
	ajax.DELETE("/unsave-article", articleHandler.Unsave)

	// --- Admin console ---
	admin := e.Group("/admin", middleware.RequireUser(), middleware.RequireAdmin(accountRepo, sessions, deps.Log))
	admin.GET("/users", adminHandler.List)
	admin.GET("/users/new", adminHandler.NewForm)
	admin.POST("/users", adminHandler.Create)
	admin.GET("/users/:id/edit", adminHandler.EditForm)
	admin.POST("/users/:id", adminHandler.Update)
	admin.POST("/users/:id/delete", adminHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
