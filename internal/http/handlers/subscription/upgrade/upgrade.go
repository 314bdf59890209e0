// Package upgrade реализует HTTP-обработчик апгрейда подписки до premium.
package upgrade

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nvpn/proxy-catalog/internal/http/middlewarectx"
	"github.com/nvpn/proxy-catalog/internal/http/response"
	"github.com/nvpn/proxy-catalog/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики апгрейда подписки.
type Service interface {
	Upgrade(ctx context.Context, userID string) error
}

// Handler обрабатывает запросы апгрейда подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP переводит текущего пользователя на premium-уровень.
// Проверка оплаты не выполняется: источник истины — внешняя billing-система.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.upgrade"

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

	if err := h.service.Upgrade(r.Context(), user.ID); err != nil {
		log.Error("failed to upgrade subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not upgrade subscription"))
		return
	}

	log.Info("subscription upgraded", slog.String("user_id", user.ID))
	render.JSON(w, r, map[string]any{
		"message": "subscription upgraded successfully",
	})
}
