// Package revenuecat принимает webhook-события внешней billing-системы.
//
// Обработчик — заглушка: проверка подписи и разбор типов событий не
// реализованы. Событие читается и логируется, провайдеру отвечается 200,
// чтобы он не ретраил доставку. Точка мутации, которую вызывал бы
// проверенный обработчик, — сервис апгрейда подписки.
package revenuecat

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/nvpn/proxy-catalog/internal/lib/sl"
)

// Handler принимает webhook-события.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

type payload struct {
	Event struct {
		Type      string `json:"type"`
		AppUserID string `json:"app_user_id"`
	} `json:"event"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.revenuecat"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]any{"status": "error"})
		return
	}
	defer func() {
		_ = r.Body.Close()
	}()

	var p payload
	if err := json.Unmarshal(body, &p); err == nil && p.Event.Type != "" {
		log.Info("webhook event received",
			slog.String("event", p.Event.Type),
			slog.String("app_user_id", p.Event.AppUserID))
	} else {
		log.Info("webhook received", slog.Int("size", len(body)))
	}

	render.JSON(w, r, map[string]any{
		"status": "success",
	})
}
