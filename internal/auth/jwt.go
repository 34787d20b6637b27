package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock swaps the time source; used by tests to move past expiry.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *tm
	cp.now = now
	return &cp
}

type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"uname"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) Issue(userID, username string) (string, error) {
	now := tm.now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

func (tm *TokenManager) Validate(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
