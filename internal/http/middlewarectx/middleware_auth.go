// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization,
// разбирает его через сервис аутентификации и в случае успеха добавляет в контекст
// актуальную запись пользователя для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nvpn/proxy-catalog/internal/http/response"
	"github.com/nvpn/proxy-catalog/internal/lib/jwt"
	"github.com/nvpn/proxy-catalog/internal/lib/sl"
	"github.com/nvpn/proxy-catalog/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey ключ, под которым в контексте лежит *models.User.
const UserKey Key = "user"

// Service описывает интерфейс сервиса для разбора токена и загрузки пользователя.
type Service interface {
	// ResolveUser проверяет токен и возвращает актуальную запись пользователя.
	ResolveUser(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Токен подтверждает только личность: запись пользователя перечитывается из
// хранилища на каждый запрос, поэтому уровень подписки в контексте всегда
// актуальный, а не тот, что был на момент выпуска токена. Если пользователь
// удалён, запрос отклоняется с 401.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ResolveUser(r.Context(), tokenStr)
			if err != nil {
				log.Error("failed to resolve user from token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					render.JSON(w, r, response.Error("token expired"))
				case errors.Is(err, models.ErrUserNotFound):
					render.JSON(w, r, response.Error("user not found"))
				default:
					render.JSON(w, r, response.Error("invalid token"))
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext извлекает пользователя, положенного в контекст JWTMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
