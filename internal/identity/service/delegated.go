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
	"golang.org/x/crypto/bcrypt"
)

type delegatedIdentityService struct {
	credentials repository.CredentialsRepository
	profiles    repository.ProfileRepository
	tokens      *token.Manager
	revoked     repository.RevocationStore
	validator   *validator.CredentialsValidator
	cfg         *config.Config
}

// NewDelegatedIdentityService backs identity with managed auth records plus a
// mirrored relational profile row.
func NewDelegatedIdentityService(
	credentials repository.CredentialsRepository,
	profiles repository.ProfileRepository,
	tokens *token.Manager,
	revoked repository.RevocationStore,
	validator *validator.CredentialsValidator,
	cfg *config.Config,
) IdentityService {
	return &delegatedIdentityService{
		credentials: credentials,
		profiles:    profiles,
		tokens:      tokens,
		revoked:     revoked,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *delegatedIdentityService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.Session, error) {
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

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	credentials := &model.Credentials{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         name,
		PasswordHash: string(hash),
	}

	if err := s.credentials.Create(ctx, credentials); err != nil {
		if errors.Is(err, identityerrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("An account with this email already exists")
		}
		s.cfg.Log.Error("Failed to create credentials", "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	// Second step of a non-atomic pair: the auth identity already exists. A
	// profile write failure leaves an identity without a profile row; that
	// inconsistency is logged and tolerated rather than rolled back.
	if err := s.profiles.Create(ctx, &model.Profile{
		ID:    credentials.ID,
		Email: credentials.Email,
		Name:  credentials.Name,
	}); err != nil {
		s.cfg.Log.Warn("Identity created without profile row",
			"identity_id", credentials.ID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Identity signed up", "identity_id", credentials.ID)
	return s.issueSession(&model.Identity{
		ID:    credentials.ID,
		Name:  credentials.Name,
		Email: credentials.Email,
	})
}

func (s *delegatedIdentityService) SignIn(ctx context.Context, req *model.SignInRequest) (*model.Session, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateSignIn(req); err != nil {
		s.cfg.Log.Warn("Sign-in validation failed", "error", err)
		return nil, apperrors.Validation("Sign-in validation failed", map[string]any{"error": err.Error()})
	}

	credentials, err := s.credentials.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, identityerrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		s.cfg.Log.Error("Failed to look up credentials", "error", err)
		return nil, apperrors.Internal("Failed to sign in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credentials.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	s.cfg.Log.Info("Identity signed in", "identity_id", credentials.ID)
	return s.issueSession(&model.Identity{
		ID:    credentials.ID,
		Name:  credentials.Name,
		Email: credentials.Email,
	})
}

func (s *delegatedIdentityService) SignOut(ctx context.Context, tokenStr string) error {
	return signOut(s.tokens, s.revoked, s.cfg, tokenStr)
}

func (s *delegatedIdentityService) Restore(ctx context.Context, tokenStr string) (*model.Identity, error) {
	return restore(s.tokens, s.revoked, tokenStr)
}

func (s *delegatedIdentityService) issueSession(identity *model.Identity) (*model.Session, error) {
	return issueSession(s.tokens, identity)
}
