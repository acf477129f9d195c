package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenMaker подписывает и разбирает сессионные токены. Токен — это JWT,
// в поле ID которого лежит идентификатор серверной сессии: подпись лишь
// защищает таблицу сессий от перебора ключей, действительность сессии
// определяет сама таблица.
type TokenMaker interface {
	GenerateToken(sessionID, username string) (string, error)
	ParseToken(tokenStr string) (*jwt.RegisteredClaims, error)
}

type TokenMakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

func NewTokenMaker(secretKey string, ttl time.Duration) *TokenMakerImpl {
	return &TokenMakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

func (j *TokenMakerImpl) GenerateToken(sessionID, username string) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *TokenMakerImpl) ParseToken(tokenStr string) (*jwt.RegisteredClaims, error) {
	const op = "session.parsetoken"
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			return []byte(j.secretKey), nil
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
