package middlewarectx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/nvpn/proxy-catalog/internal/lib/jwt"
	"github.com/nvpn/proxy-catalog/internal/models"
)

// Мок сервиса аутентификации
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	liveUser := &models.User{
		ID:    "user-1",
		Email: "user1@example.com",
		Tier:  models.TierPremium,
	}

	tests := []struct {
		name           string
		authHeader     string
		resolveToken   string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantDetail     string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer good-token",
			resolveToken:   "good-token",
			mockUser:       liveUser,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantDetail:     "missing or invalid authorization header",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			wantStatusCode: http.StatusUnauthorized,
			wantDetail:     "missing or invalid authorization header",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			resolveToken:   "expired-token",
			mockErr:        customjwt.ErrTokenExpired,
			wantStatusCode: http.StatusUnauthorized,
			wantDetail:     "token expired",
		},
		{
			name:           "tampered token",
			authHeader:     "Bearer bad-token",
			resolveToken:   "bad-token",
			mockErr:        customjwt.ErrTokenInvalid,
			wantStatusCode: http.StatusUnauthorized,
			wantDetail:     "invalid token",
		},
		{
			name:           "user deleted after token issued",
			authHeader:     "Bearer orphan-token",
			resolveToken:   "orphan-token",
			mockErr:        models.ErrUserNotFound,
			wantStatusCode: http.StatusUnauthorized,
			wantDetail:     "user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			if tt.resolveToken != "" {
				serviceMock.On("ResolveUser", mock.Anything, tt.resolveToken).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			var gotUser *models.User
			var gotOK bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, gotOK = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			mw := JWTMiddleware(serviceMock, newNoopLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/proxies", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantDetail != "" {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantDetail, got["detail"])
				assert.False(t, gotOK)
			} else {
				require.True(t, gotOK, "next handler should see user in context")
				assert.Equal(t, liveUser, gotUser)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
