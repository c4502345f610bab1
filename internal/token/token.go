package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims — полезная нагрузка токена: код сессии посетителя.
type Claims struct {
	jwt.RegisteredClaims
	UserCode string
}

const tokenExp = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// BuildJWTString подписывает код сессии.
func BuildJWTString(userCode string, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExp)),
		},
		UserCode: userCode,
	})

	return token.SignedString([]byte(secret))
}

// GetUserCode проверяет подпись и возвращает код сессии.
func GetUserCode(tokenString string, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(secret), nil
		})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.UserCode, nil
}
