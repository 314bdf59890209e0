package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nvpn/proxy-catalog/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных.
//
// Уникальность email обеспечивается индексом: нарушение уникальности
// возвращается как models.ErrEmailTaken. Именно этот сигнал, а не
// предварительная проверка, является источником истины при конкурентной
// регистрации одного и того же email.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, email, password_hash, subscription_tier,
			      subscription_expires_at, created_at, last_login, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, string(user.Tier),
		user.SubscriptionExpiresAt, user.CreatedAt, user.LastLogin, user.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByEmail возвращает пользователя по email.
// Если пользователь не найден, возвращает models.ErrUserNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, subscription_tier,
			      subscription_expires_at, created_at, last_login, is_active
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по его идентификатору.
// Если пользователь не найден, возвращает models.ErrUserNotFound.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, subscription_tier,
			      subscription_expires_at, created_at, last_login, is_active
			  FROM users
			  WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userID), op)
}

// UpdateLastLogin фиксирует время последнего входа пользователя.
func (s *Storage) UpdateLastLogin(ctx context.Context, userID string, loginAt time.Time) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET last_login = $1
			  WHERE id = $2`
	_, err := s.DB.ExecContext(ctx, query, loginAt, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpgradeUser переводит пользователя на premium-уровень и устанавливает
// дату истечения подписки. Повторный вызов лишь сдвигает дату истечения.
func (s *Storage) UpgradeUser(ctx context.Context, userID string, expiresAt time.Time) error {
	const op = "storage.UpgradeUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_tier = $1,
			      subscription_expires_at = $2
			  WHERE id = $3`
	res, err := s.DB.ExecContext(ctx, query, string(models.TierPremium), expiresAt, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var tier string
	var subscriptionExpiresAt, lastLogin sql.NullTime

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &tier,
		&subscriptionExpiresAt, &u.CreatedAt, &lastLogin, &u.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u.Tier = models.Tier(tier)
	if subscriptionExpiresAt.Valid {
		u.SubscriptionExpiresAt = &subscriptionExpiresAt.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}
