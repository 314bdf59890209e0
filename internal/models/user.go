// Package models содержит доменные структуры пользователя и прокси-сервера,
// а также закрытые перечисления уровня подписки и типа прокси.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Tier уровень подписки пользователя. Закрытое перечисление:
// допустимы только TierFree и TierPremium.
type Tier string

const (
	// TierFree бесплатный уровень, доступны только неплатные прокси.
	TierFree Tier = "free"
	// TierPremium платный уровень, доступен весь каталог.
	TierPremium Tier = "premium"
)

// Valid сообщает, является ли значение допустимым уровнем подписки.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierPremium:
		return true
	}
	return false
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID                    string     `json:"id"`                      // Уникальный идентификатор (uuid)
	Email                 string     `json:"email"`                   // Электронная почта (уникальная)
	PasswordHash          string     `json:"-"`                       // Хэш пароля, наружу не отдается
	Tier                  Tier       `json:"subscription_tier"`       // Уровень подписки
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at"` // Дата истечения платной подписки, только для premium
	CreatedAt             time.Time  `json:"created_at"`              // Дата регистрации
	LastLogin             *time.Time `json:"last_login,omitempty"`    // Время последнего входа
	IsActive              bool       `json:"is_active"`               // Признак активной учетной записи
}
