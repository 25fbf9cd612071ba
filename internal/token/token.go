// Package token issues and verifies the signed bearer tokens that gate
// protected routes.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
)

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	UserID   int64
	Username string
}

type Config struct {
	Secret []byte
	TTL    time.Duration
}

const DefaultTTL = 24 * time.Hour

// Manager is stateless and safe for concurrent use.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}

	// Zero means "use the default". Negative TTLs are honored as-is and
	// produce already-expired tokens.
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &Manager{secret: cfg.Secret, ttl: ttl}, nil
}

func (m *Manager) Issue(userID int64, username string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (m *Manager) Verify(tokenString string) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, classifyError(err)
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenSignatureInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}

	claims := Claims{}
	claims.Username, _ = claimsMap["username"].(string)

	switch sub := claimsMap["sub"].(type) {
	case float64:
		claims.UserID = int64(sub)
	default:
		return Claims{}, ErrTokenMalformed
	}
	if claims.UserID <= 0 {
		return Claims{}, ErrTokenMalformed
	}

	return claims, nil
}

func classifyError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignatureInvalid):
		return ErrTokenSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}
