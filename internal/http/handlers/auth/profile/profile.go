// Package profile реализует HTTP-обработчик выдачи профиля текущего пользователя.
package profile

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nvpn/proxy-catalog/internal/http/middlewarectx"
	"github.com/nvpn/proxy-catalog/internal/http/response"
	"github.com/nvpn/proxy-catalog/internal/models"
)

// Response — профиль пользователя без чувствительных полей.
type Response struct {
	ID                    string      `json:"id"`
	Email                 string      `json:"email"`
	SubscriptionTier      models.Tier `json:"subscription_tier"`
	SubscriptionExpiresAt *time.Time  `json:"subscription_expires_at"`
	CreatedAt             time.Time   `json:"created_at"`
}

// Handler обрабатывает запросы профиля.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP отдаёт профиль пользователя, положенного в контекст JWT middleware.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

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

	render.JSON(w, r, Response{
		ID:                    user.ID,
		Email:                 user.Email,
		SubscriptionTier:      user.Tier,
		SubscriptionExpiresAt: user.SubscriptionExpiresAt,
		CreatedAt:             user.CreatedAt,
	})
}
