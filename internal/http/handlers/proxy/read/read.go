// Package read реализует HTTP-обработчик для получения прокси-сервера по ID.
//
// Отсутствующий сервер даёт 404 до проверки подписки; premium-сервер
// при free-подписке даёт 403.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nvpn/proxy-catalog/internal/http/middlewarectx"
	"github.com/nvpn/proxy-catalog/internal/http/response"
	"github.com/nvpn/proxy-catalog/internal/lib/sl"
	"github.com/nvpn/proxy-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения прокси-сервера.
type Service interface {
	Read(ctx context.Context, user *models.User, proxyID string) (*models.ProxyServer, error)
}

// Handler обрабатывает запросы на получение прокси-сервера по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на получение прокси-сервера по ID.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.proxy.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing in request context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	proxyID := chi.URLParam(r, "id")

	proxy, err := h.service.Read(r.Context(), user, proxyID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProxyNotFound):
			log.Error("proxy not found", slog.String("proxy_id", proxyID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("proxy server not found"))
		case errors.Is(err, models.ErrPremiumRequired):
			log.Error("premium required", slog.String("proxy_id", proxyID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("premium subscription required"))
		default:
			log.Error("failed to read proxy", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read proxy server"))
		}
		return
	}

	log.Info("proxy read", slog.String("proxy_id", proxy.ID))
	render.JSON(w, r, proxy)
}
