package service

import (
	"context"
	"strings"

	"pawsteps/pkg/model"
)

// IdentityService answers "who is the current user" and owns the full session
// lifecycle. Exactly one identity is active per session token, or none.
type IdentityService interface {
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.Session, error)
	SignIn(ctx context.Context, req *model.SignInRequest) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
	Restore(ctx context.Context, token string) (*model.Identity, error)
}

// displayNameFromEmail derives a usable display name from the address local
// part when the user did not supply one.
func displayNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	local = strings.ReplaceAll(local, ".", " ")
	local = strings.ReplaceAll(local, "_", " ")
	return strings.TrimSpace(local)
}
