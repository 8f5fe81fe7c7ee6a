package service

import (
	"context"
	"errors"

	identityerrors "pawsteps/internal/identity/errors"
	"pawsteps/internal/identity/repository"
	"pawsteps/internal/identity/token"
	"pawsteps/internal/identity/validator"
	"pawsteps/pkg/config"
	apperrors "pawsteps/pkg/errors"
	"pawsteps/pkg/model"
	"pawsteps/pkg/sanitizer"

	"github.com/google/uuid"
)

type localIdentityService struct {
	identities *repository.LocalIdentityRepository
	tokens     *token.Manager
	revoked    repository.RevocationStore
	validator  *validator.CredentialsValidator
	cfg        *config.Config
}

// NewLocalIdentityService fabricates identities without checking credentials:
// any sign-in establishes an identity derived from the submitted email. The
// identity is persisted to the identity file so a matching email keeps its id
// across sessions.
func NewLocalIdentityService(
	identities *repository.LocalIdentityRepository,
	tokens *token.Manager,
	revoked repository.RevocationStore,
	validator *validator.CredentialsValidator,
	cfg *config.Config,
) IdentityService {
	return &localIdentityService{
		identities: identities,
		tokens:     tokens,
		revoked:    revoked,
		validator:  validator,
		cfg:        cfg,
	}
}

func (s *localIdentityService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.Session, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Name = sanitizer.SanitizeDisplayName(req.Name)

	if err := s.validator.ValidateSignUp(req); err != nil {
		s.cfg.Log.Warn("Sign-up validation failed", "error", err)
		return nil, apperrors.Validation("Sign-up validation failed", map[string]any{"error": err.Error()})
	}

	name := req.Name
	if name == "" {
		name = displayNameFromEmail(req.Email)
	}

	return s.establish(req.Email, name)
}

func (s *localIdentityService) SignIn(ctx context.Context, req *model.SignInRequest) (*model.Session, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateSignIn(req); err != nil {
		s.cfg.Log.Warn("Sign-in validation failed", "error", err)
		return nil, apperrors.Validation("Sign-in validation failed", map[string]any{"error": err.Error()})
	}

	return s.establish(req.Email, displayNameFromEmail(req.Email))
}

// establish reuses the persisted identity when the email matches, otherwise
// fabricates a fresh one and persists it.
func (s *localIdentityService) establish(email, name string) (*model.Session, error) {
	identity, err := s.identities.Load()
	if err != nil && !errors.Is(err, identityerrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to load persisted identity", "error", err)
		return nil, apperrors.Internal("Failed to restore identity", err)
	}

	if identity == nil || identity.Email != email {
		identity = &model.Identity{
			ID:    uuid.NewString(),
			Name:  name,
			Email: email,
		}
	}

	if err := s.identities.Save(identity); err != nil {
		s.cfg.Log.Error("Failed to persist identity", "error", err)
		return nil, apperrors.Internal("Failed to persist identity", err)
	}

	s.cfg.Log.Info("Identity established", "identity_id", identity.ID)
	return issueSession(s.tokens, identity)
}

func (s *localIdentityService) SignOut(ctx context.Context, tokenStr string) error {
	if err := signOut(s.tokens, s.revoked, s.cfg, tokenStr); err != nil {
		return err
	}
	if err := s.identities.Clear(); err != nil {
		s.cfg.Log.Error("Failed to clear persisted identity", "error", err)
		return apperrors.Internal("Failed to sign out", err)
	}
	return nil
}

func (s *localIdentityService) Restore(ctx context.Context, tokenStr string) (*model.Identity, error) {
	return restore(s.tokens, s.revoked, tokenStr)
}
