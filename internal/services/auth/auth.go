// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nvpn/proxy-catalog/internal/lib/jwt"
	"github.com/nvpn/proxy-catalog/internal/lib/password"
	"github.com/nvpn/proxy-catalog/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя; нарушение уникальности email
	// возвращается как models.ErrEmailTaken.
	CreateUser(ctx context.Context, user models.User) error

	// GetUserByEmail возвращает пользователя по email или models.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID или models.ErrUserNotFound.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// UpdateLastLogin фиксирует время последнего входа.
	UpdateLastLogin(ctx context.Context, userID string, loginAt time.Time) error
}

// AuthResult результат успешной регистрации или входа:
// выпущенный токен доступа и актуальная запись пользователя.
type AuthResult struct {
	AccessToken string
	User        *models.User
}

// AuthService отвечает за регистрацию, вход и разбор токена с подгрузкой
// актуальной записи пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с бесплатным уровнем подписки
// и сразу выпускает для него токен доступа.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (*AuthResult, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashed,
		Tier:         models.TierFree,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, string(user.Tier))
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, User: &user}, nil
}

// Login проверяет пароль пользователя, обновляет время последнего входа
// и выпускает токен доступа.
//
// Несуществующий email и неверный пароль дают одну и ту же ошибку
// models.ErrInvalidCredentials, чтобы не раскрывать наличие учетной записи.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := s.jwtMaker.GenerateToken(user.ID, string(user.Tier))
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, User: user}, nil
}

// ResolveUser разбирает токен и возвращает актуальную запись пользователя.
//
// Уровень подписки из claims не используется: запись всегда перечитывается
// из хранилища, чтобы видеть изменения уровня после выпуска токена.
// Если пользователь удалён, возвращается models.ErrUserNotFound.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ResolveUser"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
