package models

import "errors"

// Доменные ошибки. Обработчики сопоставляют их с HTTP-статусами,
// хранилище и сервисы возвращают их как сигнальные значения через errors.Is.
var (
	// ErrEmailTaken пользователь с таким email уже зарегистрирован.
	// Источник истины — уникальный индекс в базе, а не предварительная проверка.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials неверная пара email/пароль. Одна и та же ошибка
	// для несуществующего пользователя и для неверного пароля.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound пользователь не найден по идентификатору.
	ErrUserNotFound = errors.New("user not found")

	// ErrProxyNotFound прокси-сервер не найден в каталоге.
	ErrProxyNotFound = errors.New("proxy server not found")

	// ErrPremiumRequired прокси-сервер доступен только по premium-подписке.
	ErrPremiumRequired = errors.New("premium subscription required")
)
