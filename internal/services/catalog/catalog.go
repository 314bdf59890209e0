// Package services содержит бизнес-логику выдачи каталога прокси-серверов
// с учётом уровня подписки пользователя и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nvpn/proxy-catalog/internal/lib/sl"
	"github.com/nvpn/proxy-catalog/internal/models"
)

// Время жизни кеша каталога. Каталог меняется только миграциями,
// поэтому час — безопасный срок.
const catalogCacheTTL = time.Hour

// ProxyRepository определяет методы для чтения каталога из хранилища.
type ProxyRepository interface {
	// ListProxies возвращает каталог; при onlyFree premium-серверы исключены.
	ListProxies(ctx context.Context, onlyFree bool) ([]models.ProxyServer, error)
	// GetProxy возвращает сервер по ID или models.ErrProxyNotFound.
	GetProxy(ctx context.Context, proxyID string) (*models.ProxyServer, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService применяет правила доступа по уровню подписки к каталогу.
// Единственная форма авторизации — фильтрация: поля записей не усекаются.
type CatalogService struct {
	repo  ProxyRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo ProxyRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает видимую пользователю часть каталога:
// premium-пользователи видят весь каталог, free — только бесплатные серверы.
func (s *CatalogService) List(ctx context.Context, user *models.User) ([]models.ProxyServer, error) {
	var onlyFree bool
	switch user.Tier {
	case models.TierPremium:
		onlyFree = false
	case models.TierFree:
		onlyFree = true
	default:
		return nil, fmt.Errorf("unknown subscription tier: %q", user.Tier)
	}

	cacheKey := "proxies:all"
	if onlyFree {
		cacheKey = "proxies:free"
	}

	var cached []models.ProxyServer
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read catalog from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	proxies, err := s.repo.ListProxies(ctx, onlyFree)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, proxies, catalogCacheTTL); err != nil {
		s.log.Warn("failed to cache catalog", slog.String("key", cacheKey), sl.Err(err))
	}
	return proxies, nil
}

// Read возвращает один прокси-сервер с проверкой доступа.
//
// Отсутствие сервера проверяется до проверки подписки: для несуществующего ID
// всегда возвращается models.ErrProxyNotFound, и только для существующего
// premium-сервера при free-подписке — models.ErrPremiumRequired.
func (s *CatalogService) Read(ctx context.Context, user *models.User, proxyID string) (*models.ProxyServer, error) {
	cacheKey := "proxy:" + proxyID

	var proxy *models.ProxyServer
	found, err := s.cache.Get(cacheKey, &proxy)
	if err != nil {
		s.log.Warn("failed to read proxy from cache", slog.String("key", cacheKey), sl.Err(err))
		found = false
	}
	if !found {
		proxy, err = s.repo.GetProxy(ctx, proxyID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, proxy, catalogCacheTTL); err != nil {
			s.log.Warn("failed to cache proxy", slog.String("key", cacheKey), sl.Err(err))
		}
	}

	if proxy.IsPremium && user.Tier != models.TierPremium {
		return nil, models.ErrPremiumRequired
	}
	return proxy, nil
}
