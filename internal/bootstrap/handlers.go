package bootstrap

import (
	"log/slog"
	"os"

	"github.com/atelierpoint/studio-backend/internal/consultation"
	"github.com/atelierpoint/studio-backend/internal/database"
	"github.com/atelierpoint/studio-backend/internal/health"
	"github.com/atelierpoint/studio-backend/internal/portfolio"
	"github.com/atelierpoint/studio-backend/internal/testimonial"
	"github.com/atelierpoint/studio-backend/internal/user"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const version = "1.0.0"

type HandlerParams struct {
	fx.In

	UserHandler         *user.Handler
	PortfolioHandler    *portfolio.Handler
	TestimonialHandler  *testimonial.Handler
	ConsultationHandler *consultation.Handler
	HealthHandler       *health.Handler
	Auth                *user.Middleware
	Config              *Config
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/api")
	api.Use(params.Auth.LoadUser)

	params.UserHandler.RegisterRoutes(api.Group("/auth"))
	params.PortfolioHandler.RegisterRoutes(api.Group("/portfolio"))
	params.TestimonialHandler.RegisterRoutes(api.Group("/testimonials"))
	params.ConsultationHandler.RegisterRoutes(api.Group("/consultations"))

	params.HealthHandler.Register(e)

	// The built client is a static single-page site.
	e.Static("/assets", params.Config.StaticDir)
	e.GET("/*", func(c echo.Context) error {
		return c.File(params.Config.IndexHTML)
	})
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideSessionManager(cfg *Config) *user.SessionManager {
	return user.NewSessionManager(cfg.HMACKey, cfg.CookieSecure, cfg.CookieDomain)
}

func ProvidePortalProvider(cfg *Config) user.Provider {
	p := user.NewPortalProvider(
		cfg.PortalClientID,
		cfg.PortalClientSecret,
		cfg.PortalRedirectURL,
		cfg.PortalAuthURL,
		cfg.PortalTokenURL,
		cfg.PortalUserInfoURL,
	)
	if p == nil {
		return nil
	}
	return p
}

func ProvideAuthMiddleware(sessions *user.SessionManager, store *user.Store) *user.Middleware {
	return user.NewMiddleware(sessions, store)
}

func ProvideUserHandler(store *user.Store, provider user.Provider, sessions *user.SessionManager, logger *slog.Logger) *user.Handler {
	return user.NewHandler(store, provider, sessions, logger.With("handler", "user"))
}

func ProvidePortfolioService(store *portfolio.Store, logger *slog.Logger) *portfolio.Service {
	return portfolio.NewService(store, logger.With("service", "portfolio"))
}

func ProvidePortfolioHandler(svc *portfolio.Service, logger *slog.Logger) *portfolio.Handler {
	return portfolio.NewHandler(svc, logger.With("handler", "portfolio"))
}

func ProvideTestimonialService(store *testimonial.Store, logger *slog.Logger) *testimonial.Service {
	return testimonial.NewService(store, logger.With("service", "testimonial"))
}

func ProvideTestimonialHandler(svc *testimonial.Service, logger *slog.Logger) *testimonial.Handler {
	return testimonial.NewHandler(svc, logger.With("handler", "testimonial"))
}

func ProvideRateLimiter(redisClient *redis.Client, cfg *Config, logger *slog.Logger) *consultation.RateLimiter {
	return consultation.NewRateLimiter(redisClient, cfg.ConsultationRateMax, cfg.ConsultationRateWindow, logger)
}

func ProvideConsultationHandler(store *consultation.Store, limiter *consultation.RateLimiter, logger *slog.Logger) *consultation.Handler {
	return consultation.NewHandler(store, limiter, logger.With("handler", "consultation"))
}

func ProvideHealthHandler(db *database.DB, redisClient *redis.Client) *health.Handler {
	return health.NewHandler(db, redisClient, version)
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideSessionManager,
		ProvidePortalProvider,
		ProvideAuthMiddleware,
		ProvideUserHandler,
		ProvidePortfolioService,
		ProvidePortfolioHandler,
		ProvideTestimonialService,
		ProvideTestimonialHandler,
		ProvideRateLimiter,
		ProvideConsultationHandler,
		ProvideHealthHandler,
	),
	fx.Invoke(RegisterRoutes),
)
