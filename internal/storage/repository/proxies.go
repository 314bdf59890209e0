package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nvpn/proxy-catalog/internal/models"
)

// ListProxies возвращает прокси-серверы каталога.
// При onlyFree = true premium-серверы исключаются на уровне запроса.
func (s *Storage) ListProxies(ctx context.Context, onlyFree bool) ([]models.ProxyServer, error) {
	const op = "storage.ListProxies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, country, country_code, city, proxy_type, host, port,
			      is_premium, is_online, load_percentage, ping_ms, created_at
			  FROM proxy_servers`
	if onlyFree {
		query += ` WHERE is_premium = FALSE`
	}
	query += ` ORDER BY created_at`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ProxyServer
	for rows.Next() {
		var p models.ProxyServer
		var proxyType string
		if err = rows.Scan(&p.ID, &p.Name, &p.Country, &p.CountryCode, &p.City,
			&proxyType, &p.Host, &p.Port, &p.IsPremium, &p.IsOnline,
			&p.LoadPercentage, &p.PingMs, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Type = models.ProxyType(proxyType)
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetProxy возвращает прокси-сервер по идентификатору.
// Если сервер не найден, возвращает models.ErrProxyNotFound.
func (s *Storage) GetProxy(ctx context.Context, proxyID string) (*models.ProxyServer, error) {
	const op = "storage.GetProxy"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, country, country_code, city, proxy_type, host, port,
			      is_premium, is_online, load_percentage, ping_ms, created_at
			  FROM proxy_servers
			  WHERE id = $1`
	p := &models.ProxyServer{}
	var proxyType string
	row := s.DB.QueryRowContext(ctx, query, proxyID)
	if err := row.Scan(&p.ID, &p.Name, &p.Country, &p.CountryCode, &p.City,
		&proxyType, &p.Host, &p.Port, &p.IsPremium, &p.IsOnline,
		&p.LoadPercentage, &p.PingMs, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrProxyNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.Type = models.ProxyType(proxyType)
	return p, nil
}
