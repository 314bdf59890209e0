package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nvpn/proxy-catalog/internal/models"
	services "github.com/nvpn/proxy-catalog/internal/services/auth"
)

// Мок сервиса с методом Register
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, email, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	okResult := &services.AuthResult{
		AccessToken: "token123",
		User: &models.User{
			ID:    "user-1",
			Email: "user1@example.com",
			Tier:  models.TierFree,
		},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockResult     *services.AuthResult
		mockErr        error
		callService    bool
		wantStatusCode int
		wantBody       map[string]any
		wantDetail     string
	}{
		{
			name: "valid registration",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockResult:     okResult,
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantBody: map[string]any{
				"access_token":      "token123",
				"token_type":        "bearer",
				"user_id":           "user-1",
				"subscription_tier": "free",
			},
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantDetail:     "invalid request body",
		},
		{
			name: "validation error - short password",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "123",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantDetail:     "field Password is too short",
		},
		{
			name: "validation error - bad email",
			requestBody: Request{
				Email:    "not-an-email",
				Password: "password123",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantDetail:     "field Email must be a valid email address",
		},
		{
			name: "email already registered",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockErr:        models.ErrEmailTaken,
			callService:    true,
			wantStatusCode: http.StatusBadRequest,
			wantDetail:     "email already registered",
		},
		{
			name: "storage error",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockErr:        errors.New("connection refused"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantDetail:     "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.callService {
				serviceMock.On("Register", mock.Anything,
					mock.Anything,
					mock.Anything,
				).Return(tt.mockResult, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, got["detail"])
			} else {
				assert.Nil(t, got["detail"])
				for k, v := range tt.wantBody {
					assert.Equal(t, v, got[k])
				}
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
