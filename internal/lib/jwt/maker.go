// Package jwt реализует выпуск и проверку JWT токенов доступа.
//
// Maker определяет интерфейс для создания и проверки токенов с идентификатором
// пользователя и уровнем подписки. MakerImpl — конкретная реализация с
// использованием секретного ключа (HS256) и срока жизни токена.
package jwt

import (
	"errors"
	"time"
)

// Ошибки разбора токена. Разделение важно для вызывающего кода:
// просроченный и некорректный токен дают разные сообщения клиенту.
var (
	// ErrTokenExpired подпись верна, но срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid токен повреждён, подпись не сходится
	// или отсутствуют обязательные claim-поля.
	ErrTokenInvalid = errors.New("invalid token")
)

// Maker описывает интерфейс для выпуска и разбора JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен с user id и уровнем подписки.
	GenerateToken(userID, tier string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
