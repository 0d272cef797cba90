package adapters

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/your-org/catalog/internal/domain"
)

// ErrInvalidToken is returned for tokens that fail verification
var ErrInvalidToken = errors.New("invalid token")

// subjectClaims carries the subject under the "id" claim
type subjectClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTAdapter signs and verifies HS256 tokens
type JWTAdapter struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ domain.TokenIssuer = (*JWTAdapter)(nil)

// NewJWTAdapter creates an adapter. A zero ttl issues tokens without expiry.
func NewJWTAdapter(secret string, ttl time.Duration) (*JWTAdapter, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTAdapter{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Encrypt signs a token for subject
func (a *JWTAdapter) Encrypt(subject string) (string, error) {
	now := a.now()
	claims := subjectClaims{
		ID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if a.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(a.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decrypt verifies token and returns its subject
func (a *JWTAdapter) Decrypt(token string) (string, error) {
	claims := &subjectClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}
