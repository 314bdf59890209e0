package models

import "time"

// ProxyType протокол прокси-сервера. Закрытое перечисление.
type ProxyType string

const (
	// ProxyHTTP обычный http-прокси.
	ProxyHTTP ProxyType = "http"
	// ProxyHTTPS http-прокси с TLS.
	ProxyHTTPS ProxyType = "https"
	// ProxySOCKS5 socks5-прокси.
	ProxySOCKS5 ProxyType = "socks5"
	// ProxyOpenVPN сервер OpenVPN.
	ProxyOpenVPN ProxyType = "openvpn"
	// ProxyWireGuard сервер WireGuard.
	ProxyWireGuard ProxyType = "wireguard"
)

// Valid сообщает, является ли значение допустимым типом прокси.
func (p ProxyType) Valid() bool {
	switch p {
	case ProxyHTTP, ProxyHTTPS, ProxySOCKS5, ProxyOpenVPN, ProxyWireGuard:
		return true
	}
	return false
}

// ProxyServer представляет прокси-сервер из каталога.
// Каталог заполняется миграциями и в рамках API только читается.
type ProxyServer struct {
	ID             string    `json:"id"`              // Уникальный идентификатор (uuid)
	Name           string    `json:"name"`            // Отображаемое имя, например "Turkey - Istanbul"
	Country        string    `json:"country"`         // Страна
	CountryCode    string    `json:"country_code"`    // Код страны ISO 3166-1 alpha-2
	City           string    `json:"city"`            // Город
	Type           ProxyType `json:"proxy_type"`      // Протокол
	Host           string    `json:"host"`            // Хост сервера
	Port           int       `json:"port"`            // Порт
	IsPremium      bool      `json:"is_premium"`      // Доступен только premium-пользователям
	IsOnline       bool      `json:"is_online"`       // Признак доступности сервера
	LoadPercentage int       `json:"load_percentage"` // Загрузка сервера, 0-100
	PingMs         int       `json:"ping_ms"`         // Оценка задержки в миллисекундах
	CreatedAt      time.Time `json:"created_at"`      // Дата добавления в каталог
}
