package service

import (
	"context"
	"errors"
	"testing"
	"time"

	identityerrors "pawsteps/internal/identity/errors"
	"pawsteps/internal/identity/repository"
	"pawsteps/internal/identity/token"
	"pawsteps/internal/identity/validator"
	"pawsteps/pkg/config"
	apperrors "pawsteps/pkg/errors"
	"pawsteps/pkg/logger"
	"pawsteps/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

type mockCredentialsRepository struct {
	createFunc      func(ctx context.Context, credentials *model.Credentials) error
	findByEmailFunc func(ctx context.Context, email string) (*model.Credentials, error)
}

func (m *mockCredentialsRepository) Create(ctx context.Context, credentials *model.Credentials) error {
	return m.createFunc(ctx, credentials)
}

func (m *mockCredentialsRepository) FindByEmail(ctx context.Context, email string) (*model.Credentials, error) {
	return m.findByEmailFunc(ctx, email)
}

type mockProfileRepository struct {
	createFunc   func(ctx context.Context, profile *model.Profile) error
	findByIDFunc func(ctx context.Context, id string) (*model.Profile, error)
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return m.createFunc(ctx, profile)
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	return m.findByIDFunc(ctx, id)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "info",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func testTokens(t *testing.T) *token.Manager {
	t.Helper()
	tokens, err := token.NewManager("test-secret-at-least-16-bytes", time.Hour)
	if err != nil {
		t.Fatalf("token.NewManager() error = %v", err)
	}
	return tokens
}

func newLocalService(t *testing.T, dataDir string) IdentityService {
	t.Helper()
	cfg := testConfig()

	identities, err := repository.NewLocalIdentityRepository(dataDir)
	if err != nil {
		t.Fatalf("NewLocalIdentityRepository() error = %v", err)
	}

	return NewLocalIdentityService(
		identities,
		testTokens(t),
		repository.NewMemoryRevocationStore(),
		validator.NewCredentialsValidator(cfg.Log),
		cfg,
	)
}

func TestLocalSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("establishes a session with a fabricated identity", func(t *testing.T) {
		svc := newLocalService(t, t.TempDir())

		session, err := svc.SignUp(ctx, &model.SignUpRequest{
			Email:    "Jamie.Park@Example.com",
			Password: "hunter2hunter2",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}
		if session.Token == "" {
			t.Error("expected a session token")
		}
		if session.Identity.ID == "" {
			t.Error("expected a fabricated identity id")
		}
		if session.Identity.Email != "jamie.park@example.com" {
			t.Errorf("Email = %q, expected normalized address", session.Identity.Email)
		}
		if session.Identity.Name != "jamie park" {
			t.Errorf("Name = %q, expected name derived from email", session.Identity.Name)
		}
	})

	t.Run("restore returns the signed-up identity", func(t *testing.T) {
		svc := newLocalService(t, t.TempDir())

		session, err := svc.SignUp(ctx, &model.SignUpRequest{
			Email:    "jamie@example.com",
			Password: "hunter2hunter2",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}

		identity, err := svc.Restore(ctx, session.Token)
		if err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if identity.ID != session.Identity.ID || identity.Email != session.Identity.Email {
			t.Errorf("restored identity %+v does not match session identity %+v", identity, session.Identity)
		}
	})

	t.Run("same email keeps its id across sessions", func(t *testing.T) {
		dir := t.TempDir()
		svc := newLocalService(t, dir)

		first, err := svc.SignIn(ctx, &model.SignInRequest{Email: "jamie@example.com", Password: "whatever1"})
		if err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}

		reopened := newLocalService(t, dir)
		second, err := reopened.SignIn(ctx, &model.SignInRequest{Email: "jamie@example.com", Password: "whatever1"})
		if err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}
		if second.Identity.ID != first.Identity.ID {
			t.Errorf("id changed across sessions: %q vs %q", second.Identity.ID, first.Identity.ID)
		}
	})

	t.Run("different email gets a fresh identity", func(t *testing.T) {
		svc := newLocalService(t, t.TempDir())

		first, err := svc.SignIn(ctx, &model.SignInRequest{Email: "jamie@example.com", Password: "whatever1"})
		if err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}
		second, err := svc.SignIn(ctx, &model.SignInRequest{Email: "alex@example.com", Password: "whatever1"})
		if err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}
		if second.Identity.ID == first.Identity.ID {
			t.Error("expected a fresh id for a different email")
		}
	})

	t.Run("rejects an invalid email", func(t *testing.T) {
		svc := newLocalService(t, t.TempDir())

		_, err := svc.SignUp(ctx, &model.SignUpRequest{Email: "not-an-email", Password: "hunter2hunter2"})
		if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestLocalSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the session", func(t *testing.T) {
		svc := newLocalService(t, t.TempDir())

		session, err := svc.SignUp(ctx, &model.SignUpRequest{
			Email:    "jamie@example.com",
			Password: "hunter2hunter2",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}
		if err := svc.SignOut(ctx, session.Token); err != nil {
			t.Fatalf("SignOut() error = %v", err)
		}

		_, err = svc.Restore(ctx, session.Token)
		if apperrors.AsAppError(err).Code != apperrors.CodeUnauthorized {
			t.Errorf("expected unauthorized after sign-out, got %v", err)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		svc := newLocalService(t, t.TempDir())

		session, err := svc.SignUp(ctx, &model.SignUpRequest{
			Email:    "jamie@example.com",
			Password: "hunter2hunter2",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}

		for i := 0; i < 2; i++ {
			if err := svc.SignOut(ctx, session.Token); err != nil {
				t.Fatalf("SignOut() attempt %d error = %v", i+1, err)
			}
		}
		if err := svc.SignOut(ctx, ""); err != nil {
			t.Errorf("SignOut() without a session error = %v, want nil", err)
		}
	})
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	svc := newLocalService(t, t.TempDir())

	t.Run("no token means no active session", func(t *testing.T) {
		_, err := svc.Restore(ctx, "")
		if apperrors.AsAppError(err).Code != apperrors.CodeUnauthorized {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := svc.Restore(ctx, "not-a-token")
		if apperrors.AsAppError(err).Code != apperrors.CodeUnauthorized {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})
}

func newDelegatedService(
	t *testing.T,
	credentials repository.CredentialsRepository,
	profiles repository.ProfileRepository,
) IdentityService {
	t.Helper()
	cfg := testConfig()
	return NewDelegatedIdentityService(
		credentials,
		profiles,
		testTokens(t),
		repository.NewMemoryRevocationStore(),
		validator.NewCredentialsValidator(cfg.Log),
		cfg,
	)
}

func TestDelegatedSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed credentials and mirrors a profile row", func(t *testing.T) {
		var storedCredentials *model.Credentials
		var storedProfile *model.Profile

		credentials := &mockCredentialsRepository{
			createFunc: func(ctx context.Context, c *model.Credentials) error {
				storedCredentials = c
				return nil
			},
		}
		profiles := &mockProfileRepository{
			createFunc: func(ctx context.Context, p *model.Profile) error {
				storedProfile = p
				return nil
			},
		}
		svc := newDelegatedService(t, credentials, profiles)

		session, err := svc.SignUp(ctx, &model.SignUpRequest{
			Email:    "jamie@example.com",
			Password: "hunter2hunter2",
			Name:     "Jamie Park",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}

		if storedCredentials == nil {
			t.Fatal("expected credentials to be stored")
		}
		if storedCredentials.PasswordHash == "hunter2hunter2" {
			t.Error("password must not be stored in the clear")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(storedCredentials.PasswordHash), []byte("hunter2hunter2")); err != nil {
			t.Errorf("stored hash does not verify against the password: %v", err)
		}

		if storedProfile == nil {
			t.Fatal("expected a mirrored profile row")
		}
		if storedProfile.ID != storedCredentials.ID || storedProfile.Email != "jamie@example.com" {
			t.Errorf("profile row does not mirror credentials: %+v", storedProfile)
		}

		if session.Identity.ID != storedCredentials.ID || session.Identity.Name != "Jamie Park" {
			t.Errorf("session identity mismatch: %+v", session.Identity)
		}
	})

	t.Run("duplicate email surfaces as a conflict", func(t *testing.T) {
		credentials := &mockCredentialsRepository{
			createFunc: func(ctx context.Context, c *model.Credentials) error {
				return identityerrors.ErrEmailTaken
			},
		}
		svc := newDelegatedService(t, credentials, &mockProfileRepository{})

		_, err := svc.SignUp(ctx, &model.SignUpRequest{
			Email:    "jamie@example.com",
			Password: "hunter2hunter2",
		})
		if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("profile write failure does not fail the sign-up", func(t *testing.T) {
		credentials := &mockCredentialsRepository{
			createFunc: func(ctx context.Context, c *model.Credentials) error { return nil },
		}
		profiles := &mockProfileRepository{
			createFunc: func(ctx context.Context, p *model.Profile) error {
				return errors.New("relational store unavailable")
			},
		}
		svc := newDelegatedService(t, credentials, profiles)

		session, err := svc.SignUp(ctx, &model.SignUpRequest{
			Email:    "jamie@example.com",
			Password: "hunter2hunter2",
		})
		if err != nil {
			t.Fatalf("SignUp() error = %v, profile failures must be tolerated", err)
		}
		if session.Token == "" {
			t.Error("expected a session despite the missing profile row")
		}
	})

	t.Run("short password is rejected before any store call", func(t *testing.T) {
		credentials := &mockCredentialsRepository{
			createFunc: func(ctx context.Context, c *model.Credentials) error {
				t.Error("store must not be touched for an invalid request")
				return nil
			},
		}
		svc := newDelegatedService(t, credentials, &mockProfileRepository{})

		_, err := svc.SignUp(ctx, &model.SignUpRequest{Email: "jamie@example.com", Password: "short"})
		if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestDelegatedSignIn(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword() error = %v", err)
	}
	stored := &model.Credentials{
		ID:           "user-1",
		Email:        "jamie@example.com",
		Name:         "Jamie Park",
		PasswordHash: string(hash),
	}

	t.Run("valid credentials establish a session", func(t *testing.T) {
		credentials := &mockCredentialsRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*model.Credentials, error) {
				return stored, nil
			},
		}
		svc := newDelegatedService(t, credentials, &mockProfileRepository{})

		session, err := svc.SignIn(ctx, &model.SignInRequest{
			Email:    "Jamie@Example.com",
			Password: "hunter2hunter2",
		})
		if err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}
		if session.Identity.ID != "user-1" {
			t.Errorf("Identity.ID = %q, want %q", session.Identity.ID, "user-1")
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		credentials := &mockCredentialsRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*model.Credentials, error) {
				return stored, nil
			},
		}
		svc := newDelegatedService(t, credentials, &mockProfileRepository{})

		_, err := svc.SignIn(ctx, &model.SignInRequest{Email: "jamie@example.com", Password: "wrong-password"})
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeUnauthorized {
			t.Errorf("expected unauthorized, got %v", err)
		}
		if appErr.Message != "Invalid email or password" {
			t.Errorf("Message = %q, credential failures must not say which part was wrong", appErr.Message)
		}
	})

	t.Run("unknown email is unauthorized with the same message", func(t *testing.T) {
		credentials := &mockCredentialsRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*model.Credentials, error) {
				return nil, identityerrors.ErrNotFound
			},
		}
		svc := newDelegatedService(t, credentials, &mockProfileRepository{})

		_, err := svc.SignIn(ctx, &model.SignInRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeUnauthorized || appErr.Message != "Invalid email or password" {
			t.Errorf("expected the generic unauthorized message, got %v", err)
		}
	})
}

func TestDisplayNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jamie@example.com", "jamie"},
		{"jamie.park@example.com", "jamie park"},
		{"jamie_park@example.com", "jamie park"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tt := range tests {
		if got := displayNameFromEmail(tt.email); got != tt.want {
			t.Errorf("displayNameFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
