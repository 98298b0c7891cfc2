package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identify the external account behind a signed-in browser.
type SessionClaims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func CreateSessionToken(secret []byte, accountID, email, name string, ttl time.Duration) (string, error) {
	if accountID == "" {
		return "", errors.New("account id is required")
	}
	now := time.Now()
	claims := &SessionClaims{
		AccountID: accountID,
		Email:     email,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateSessionToken(secret []byte, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.AccountID == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
