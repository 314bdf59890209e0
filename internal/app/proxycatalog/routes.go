// Package proxycatalog собирает приложение и регистрирует маршруты API.
package proxycatalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nvpn/proxy-catalog/internal/http/handlers/auth/login"
	"github.com/nvpn/proxy-catalog/internal/http/handlers/auth/profile"
	"github.com/nvpn/proxy-catalog/internal/http/handlers/auth/register"
	"github.com/nvpn/proxy-catalog/internal/http/handlers/health"
	"github.com/nvpn/proxy-catalog/internal/http/handlers/proxy/list"
	"github.com/nvpn/proxy-catalog/internal/http/handlers/proxy/read"
	"github.com/nvpn/proxy-catalog/internal/http/handlers/subscription/upgrade"
	"github.com/nvpn/proxy-catalog/internal/http/handlers/webhook/revenuecat"
	"github.com/nvpn/proxy-catalog/internal/http/middlewarectx"
	authservice "github.com/nvpn/proxy-catalog/internal/services/auth"
	catalogservice "github.com/nvpn/proxy-catalog/internal/services/catalog"
	subservice "github.com/nvpn/proxy-catalog/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, catalogService *catalogservice.CatalogService, subscriptionService *subservice.SubscriptionService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Get("/auth/profile", profile.New(logger).ServeHTTP)
			r.Get("/proxies", list.New(logger, catalogService).ServeHTTP)
			r.Get("/proxies/{id}", read.New(logger, catalogService).ServeHTTP)
			r.Post("/subscription/upgrade", upgrade.New(logger, subscriptionService).ServeHTTP)
		})

		// Webhook endpoint (подпись проверяет внешний провайдер)
		r.Post("/webhooks/revenuecat", revenuecat.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
