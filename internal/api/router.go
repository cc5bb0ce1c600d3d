package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sirpyerre/forum-api/docs"
	"github.com/sirpyerre/forum-api/internal/api/graphql"
	"github.com/sirpyerre/forum-api/internal/api/handler"
	"github.com/sirpyerre/forum-api/internal/api/middleware"
	"github.com/sirpyerre/forum-api/internal/core/ports"
)

// RouterConfig carries everything the HTTP layer depends on.
type RouterConfig struct {
	Users    ports.UserService
	Posts    ports.PostService
	Comments ports.CommentService

	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Pinger
	Logger zerolog.Logger
	// Metrics enables the Prometheus middleware and GET /metrics. It registers
	// collectors on the default registry, so at most one router per process
	// may turn it on.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.Metrics {
		e.Use(echoprometheus.NewMiddleware("forum"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Forum actions ---
	userHandler := handler.NewUserHandler(cfg.Users)
	postHandler := handler.NewPostHandler(cfg.Posts, cfg.Comments)
	postsHandler := handler.NewPostsHandler(cfg.Posts)

	e.POST("/user/:action", userHandler.Post)
	e.POST("/post/:action", postHandler.Post)
	e.GET("/post/:action", postHandler.Get)
	e.GET("/posts/:action", postsHandler.Get)

	// --- GraphQL (read only) ---
	gql, err := graphql.New(cfg.Posts, cfg.Comments, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("graphql schema: %w", err)
	}
	e.POST("/graphql", echo.WrapHandler(gql))

	return e, nil
}
