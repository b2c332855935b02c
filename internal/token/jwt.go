// Package token signs and verifies the HS256 JWTs handed out to clients.
// Access and refresh tokens share one key and one claim shape; only their
// expiry differs.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/authd/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 72 * time.Hour

	minKeyLength = 32
)

// Claims is the token payload: {id, iat, exp, jti}.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type Manager struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(key []byte, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if len(key) < minKeyLength {
		return nil, fmt.Errorf("jwt key must be at least %d bytes", minKeyLength)
	}
	if accessTTL <= 0 || refreshTTL <= accessTTL {
		return nil, errors.New("refresh token ttl must be longer than a positive access token ttl")
	}
	return &Manager{
		key:        key,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// Sign returns a token for userID that expires after ttl.
func (m *Manager) Sign(userID string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Issue signs a fresh access/refresh pair for userID.
func (m *Manager) Issue(userID string) (domain.TokenPair, error) {
	access, err := m.Sign(userID, m.accessTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("access token: %w", err)
	}
	refresh, err := m.Sign(userID, m.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("refresh token: %w", err)
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature and expiry. Every failure wraps domain.ErrTokenInvalid.
func (m *Manager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
