package utils

import (
	"errors"
	"time"

	"laundrypos/checkout"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the worker session inside the token.
type Claims struct {
	WorkerID uint     `json:"workerId"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *Claims) Session() checkout.Session {
	return checkout.Session{WorkerID: c.WorkerID, Email: c.Email, Name: c.Name, Roles: c.Roles}
}

func GenerateToken(s checkout.Session, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		WorkerID: s.WorkerID,
		Email:    s.Email,
		Name:     s.Name,
		Roles:    s.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.WorkerID == 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
