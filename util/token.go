package util

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const SessionTTL = time.Hour

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims are the claims carried by a login token.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs an HS256 token for userID valid for ttl.
func GenerateSessionToken(userID uint, role string, ttl time.Duration) (string, error) {
	secret := GetJWTSecretByte()
	if len(secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	now := time.Now()
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseSessionToken validates tokenString and returns the user id and role it was issued for.
func ParseSessionToken(tokenString string) (uint, string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return GetJWTSecretByte(), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || uid == 0 {
		return 0, "", fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return uint(uid), claims.Role, nil
}
