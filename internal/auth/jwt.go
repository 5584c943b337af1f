package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskdash/apigateway/internal/domain"
)

var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is kept distinct for logging; the HTTP surface maps
	// both token errors to the same generic 401 message.
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the token payload. The nested "user" object matches the tokens
// the dashboard client already stores, so existing sessions keep working.
type Claims struct {
	User domain.Identity `json:"user"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 bearer tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for the given identity.
func (m *JWTManager) Generate(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token and returns the embedded identity.
func (m *JWTManager) Verify(tokenString string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &claims.User, nil
}
