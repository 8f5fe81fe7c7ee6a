// Package token issues and verifies the signed session marker that keeps an
// identity alive across reloads.
package token

import (
	"encoding/json"
	"fmt"
	"time"

	identityerrors "pawsteps/internal/identity/errors"
	"pawsteps/pkg/model"

	"github.com/cristalhq/jwt/v4"
)

type Claims struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Manager struct {
	builder  *jwt.Builder
	verifier jwt.Verifier
	ttl      time.Duration
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	key := []byte(secret)

	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}
	verifier, err := jwt.NewVerifierHS(jwt.HS256, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	return &Manager{
		builder:  jwt.NewBuilder(signer),
		verifier: verifier,
		ttl:      ttl,
	}, nil
}

// Issue signs a session token for the identity and returns it with its expiry.
func (m *Manager) Issue(identity *model.Identity) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.ttl).UTC()

	tok, err := m.builder.Build(&Claims{
		UserID:    identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build session token: %w", err)
	}

	return tok.String(), expiresAt, nil
}

// Verify checks the signature and expiry and returns the embedded identity
// together with the token's expiry.
func (m *Manager) Verify(raw string) (*model.Identity, time.Time, error) {
	tok, err := jwt.Parse([]byte(raw), m.verifier)
	if err != nil {
		return nil, time.Time{}, identityerrors.ErrTokenInvalid
	}

	var claims Claims
	if err := json.Unmarshal(tok.Claims(), &claims); err != nil {
		return nil, time.Time{}, identityerrors.ErrTokenInvalid
	}

	if claims.UserID == "" {
		return nil, time.Time{}, identityerrors.ErrTokenInvalid
	}
	if time.Now().After(claims.ExpiresAt) {
		return nil, time.Time{}, identityerrors.ErrTokenExpired
	}

	return &model.Identity{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
	}, claims.ExpiresAt, nil
}
