package service

import (
	"errors"

	identityerrors "pawsteps/internal/identity/errors"
	"pawsteps/internal/identity/repository"
	"pawsteps/internal/identity/token"
	"pawsteps/pkg/config"
	apperrors "pawsteps/pkg/errors"
	"pawsteps/pkg/model"
)

func issueSession(tokens *token.Manager, identity *model.Identity) (*model.Session, error) {
	raw, expiresAt, err := tokens.Issue(identity)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue session token", err)
	}
	return &model.Session{
		Token:     raw,
		Identity:  *identity,
		ExpiresAt: expiresAt,
	}, nil
}

// signOut revokes the token until its natural expiry. Tokens that fail to
// verify have nothing to revoke; signing out without a session is a no-op, so
// the operation stays idempotent.
func signOut(tokens *token.Manager, revoked repository.RevocationStore, cfg *config.Config, raw string) error {
	if raw == "" {
		return nil
	}

	identity, expiresAt, err := tokens.Verify(raw)
	if err != nil {
		return nil
	}

	if err := revoked.Revoke(raw, expiresAt); err != nil {
		cfg.Log.Error("Failed to revoke session", "identity_id", identity.ID, "error", err)
		return apperrors.Internal("Failed to sign out", err)
	}

	cfg.Log.Info("Identity signed out", "identity_id", identity.ID)
	return nil
}

func restore(tokens *token.Manager, revoked repository.RevocationStore, raw string) (*model.Identity, error) {
	if raw == "" {
		return nil, apperrors.Unauthorized("No active session")
	}

	identity, _, err := tokens.Verify(raw)
	if err != nil {
		if errors.Is(err, identityerrors.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("Session has expired")
		}
		return nil, apperrors.Unauthorized("Invalid session token")
	}

	isRevoked, err := revoked.IsRevoked(raw)
	if err != nil {
		return nil, apperrors.Internal("Failed to check session state", err)
	}
	if isRevoked {
		return nil, apperrors.Unauthorized("Session has been signed out")
	}

	return identity, nil
}
