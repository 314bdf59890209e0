// Package list реализует HTTP-обработчик выдачи каталога прокси-серверов.
//
// Каталог фильтруется по актуальному уровню подписки пользователя из контекста:
// free-пользователи получают только бесплатные серверы.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nvpn/proxy-catalog/internal/http/middlewarectx"
	"github.com/nvpn/proxy-catalog/internal/http/response"
	"github.com/nvpn/proxy-catalog/internal/lib/sl"
	"github.com/nvpn/proxy-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики выдачи каталога.
type Service interface {
	List(ctx context.Context, user *models.User) ([]models.ProxyServer, error)
}

// Handler обрабатывает запросы списка прокси-серверов.
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

// ServeHTTP godoc
// @Summary Каталог прокси-серверов
// @Description Возвращает прокси-серверы, доступные по уровню подписки пользователя.
// @Tags Proxies
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.ProxyServer
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Router /proxies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.proxy.list"

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

	proxies, err := h.service.List(r.Context(), user)
	if err != nil {
		log.Error("failed to list proxies", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list proxy servers"))
		return
	}
	if proxies == nil {
		proxies = []models.ProxyServer{}
	}

	log.Info("catalog listed",
		slog.Int("count", len(proxies)),
		slog.String("tier", string(user.Tier)))
	render.JSON(w, r, proxies)
}
