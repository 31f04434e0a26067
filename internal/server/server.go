package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/linqs/GAIA-sub004/internal/server/middleware"
	"github.com/linqs/GAIA-sub004/internal/util"
	"github.com/linqs/GAIA-sub004/pkg/graph"
	"github.com/linqs/GAIA-sub004/pkg/logger"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// Config holds the settings New needs.
type Config struct {
	Secret       []byte
	Key          keyfunc.Keyfunc
	MasterAPIKey string
	BodyLimit    string
}

// New builds the echo instance serving graphs from registry.
func New(registry *graph.Registry, cfg Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	app := &mid.App{
		Graphs:       registry,
		Key:          cfg.Key,
		Secret:       cfg.Secret,
		MasterAPIKey: cfg.MasterAPIKey,
	}
	if !app.AuthEnabled() {
		logger.Warn("[Server] No AUTH_SECRET, AUTH_URL or MASTER_API_KEY set, authentication disabled")
	}

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "64M"
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("[Server] Request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))

	RegisterRoutes(e)
	return e
}

// ConfigFromEnv reads the auth and body limit settings. A JWKS
// endpoint is fetched from AUTH_URL + "/jwks".
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Secret:       []byte(util.GetEnv("AUTH_SECRET")),
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
		BodyLimit:    util.GetEnvString("GRAPH_BODY_LIMIT", "64M"),
	}
	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			return cfg, err
		}
		cfg.Key = k
	}
	return cfg, nil
}

// Init runs the server until SIGINT or SIGTERM.
func Init() {
	cfg, err := ConfigFromEnv()
	if err != nil {
		logger.Fatal("Failed to load jwks keys", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := graph.NewRegistry()
	e := New(registry, cfg)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
