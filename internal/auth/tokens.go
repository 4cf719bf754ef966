package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arenapass/arenapass/internal/user"
)

// Claims is the identity payload embedded in issued tokens.
type Claims struct {
	UserID           string `json:"id"`
	StellarPublicKey string `json:"stellarPublicKey"`
	IsAdmin          bool   `json:"is_admin"`
	IsStaff          bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for the user with the given lifetime.
func SignToken(u user.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:           u.ID,
		StellarPublicKey: u.StellarPublicKey,
		IsAdmin:          u.IsAdmin,
		IsStaff:          u.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the embedded claims.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	return claims, nil
}
