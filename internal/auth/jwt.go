package auth

import (
	"errors"
	"time"

	"chirp/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

// Verification failures are kept distinguishable for logging and metrics;
// the HTTP layer collapses all of them into a uniform 401 body.
var (
	ErrTokenMissing = errors.New("missing token")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("expired token")
)

// Identity is the resolved caller, produced once per request by the auth
// middleware and threaded to handlers as a typed context value.
type Identity struct {
	UserID   uint
	Username string
}

// Claims is the JWT payload carried by every issued token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens with a shared HMAC key.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given signing key and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user's stable id, username and expiry.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates signature and expiry and yields the caller's identity.
// It has no side effects and never touches the store.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenInvalid
	}
	if !token.Valid {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
