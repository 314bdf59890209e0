// Package services содержит бизнес-логику управления подпиской пользователя.
package services

import (
	"context"
	"log/slog"
	"time"
)

// Продолжительность оплаченного периода после апгрейда.
const premiumPeriod = 30 * 24 * time.Hour

// UserUpdater описывает контракт обновления подписки в хранилище.
type UserUpdater interface {
	// UpgradeUser переводит пользователя на premium с датой истечения.
	UpgradeUser(ctx context.Context, userID string, expiresAt time.Time) error
}

// SubscriptionService выполняет апгрейд подписки. Проверка оплаты здесь
// не выполняется: источник истины о платеже — внешняя billing-система,
// этот метод — точка мутации, которую вызывал бы проверенный webhook.
type SubscriptionService struct {
	users UserUpdater
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(users UserUpdater, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		users: users,
		log:   log,
	}
}

// Upgrade безусловно переводит пользователя на premium-уровень
// и устанавливает дату истечения через 30 дней. Идемпотентен:
// повторный вызов лишь продлевает дату истечения.
//
// Автоматического понижения после истечения срока нет: уровень остаётся
// premium, пока его явно не изменят.
func (s *SubscriptionService) Upgrade(ctx context.Context, userID string) error {
	expiresAt := time.Now().UTC().Add(premiumPeriod)
	if err := s.users.UpgradeUser(ctx, userID, expiresAt); err != nil {
		return err
	}
	s.log.Info("subscription upgraded",
		slog.String("user_id", userID),
		slog.Time("expires_at", expiresAt))
	return nil
}
