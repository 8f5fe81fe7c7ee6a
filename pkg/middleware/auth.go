package middleware

import (
	"context"
	"net/http"
	"strings"

	"pawsteps/pkg/logger"
	"pawsteps/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	identityKey contextKey = "identity"

	// SessionCookieName is the persisted session marker; it is what lets an
	// identity survive a page reload.
	SessionCookieName = "pawsteps_session"
)

// IdentityRestorer resolves a session token back to the identity it was issued
// for. Implemented by the identity service.
type IdentityRestorer interface {
	Restore(ctx context.Context, token string) (*model.Identity, error)
}

// RequireIdentity guards an API route. Requests without a restorable identity
// are answered with 401 and the handler never runs.
func RequireIdentity(restorer IdentityRestorer, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			identity, ok := restoreIdentity(w, r, restorer, log)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
				return
			}
			next(w, r.WithContext(WithIdentity(r.Context(), identity)), ps)
		}
	}
}

// RequirePageIdentity guards a navigable page route. Unauthenticated visitors
// are redirected to the identity page with 303 See Other, so that following
// the redirect replaces the gated location and back-navigation does not loop.
// No protected content is written before the redirect.
func RequirePageIdentity(restorer IdentityRestorer, log *logger.Logger, redirectTo string) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			identity, ok := restoreIdentity(w, r, restorer, log)
			if !ok {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}
			next(w, r.WithContext(WithIdentity(r.Context(), identity)), ps)
		}
	}
}

func restoreIdentity(w http.ResponseWriter, r *http.Request, restorer IdentityRestorer, log *logger.Logger) (*model.Identity, bool) {
	token := ExtractToken(r)
	if token == "" {
		return nil, false
	}

	identity, err := restorer.Restore(r.Context(), token)
	if err != nil {
		log.Debug("Session restore rejected",
			"request_id", requestIDFrom(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		return nil, false
	}
	return identity, true
}

// ExtractToken reads the session token from the Authorization header, falling
// back to the session cookie.
func ExtractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the identity placed in the context by the guard.
// Calling it outside a guarded route is a programming error and panics.
func IdentityFrom(ctx context.Context) *model.Identity {
	identity, ok := ctx.Value(identityKey).(*model.Identity)
	if !ok || identity == nil {
		panic("middleware: identity accessed outside an authenticated request")
	}
	return identity
}
