package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawsteps/pkg/logger"
	"pawsteps/pkg/middleware"
	"pawsteps/pkg/model"

	"github.com/julienschmidt/httprouter"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

// passthroughGuard plants a fixed identity, standing in for a valid session.
func passthroughGuard(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity := &model.Identity{ID: "user-1", Name: "Jamie Park", Email: "jamie@example.com"}
		next(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)), ps)
	}
}

// redirectingGuard rejects every visitor, standing in for no session.
func redirectingGuard(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func newRouter(guard func(httprouter.Handle) httprouter.Handle) *httprouter.Router {
	router := httprouter.New()
	NewPagesHandler(guard, testLogger()).RegisterRoutes(router)
	return router
}

func TestMarketingPages(t *testing.T) {
	router := newRouter(redirectingGuard)

	tests := []struct {
		path      string
		wantSlug  string
		wantTitle string
	}{
		{"/", "home", "Pawsteps"},
		{"/services", "services", "Services"},
		{"/pricing", "pricing", "Pricing"},
		{"/testimonials", "testimonials", "Testimonials"},
		{"/login", "login", "Sign in"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("GET %s status = %d, want %d", tt.path, rec.Code, http.StatusOK)
			}

			var response struct {
				Data Page `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to decode page response: %v", err)
			}
			if response.Data.Slug != tt.wantSlug {
				t.Errorf("slug = %q, want %q", response.Data.Slug, tt.wantSlug)
			}
			if response.Data.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", response.Data.Title, tt.wantTitle)
			}
		})
	}
}

func TestGatedPagesRedirectWithoutIdentity(t *testing.T) {
	router := newRouter(redirectingGuard)

	for _, path := range []string{"/book", "/profile"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			if rec.Code != http.StatusSeeOther {
				t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusSeeOther)
			}
			if loc := rec.Header().Get("Location"); loc != "/login" {
				t.Errorf("Location = %q, want %q", loc, "/login")
			}
		})
	}
}

func TestBookPage(t *testing.T) {
	router := newRouter(passthroughGuard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/book", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /book status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response struct {
		Data BookPage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode book page: %v", err)
	}

	form := response.Data.Form
	if len(form.Services) != 3 {
		t.Errorf("form lists %d services, want 3", len(form.Services))
	}
	if form.MinDurationMins != 20 || form.MaxDurationMins != 240 {
		t.Errorf("duration bounds = %d..%d, want 20..240", form.MinDurationMins, form.MaxDurationMins)
	}
	if form.MinPets != 1 || form.MaxPets != 6 {
		t.Errorf("pet bounds = %d..%d, want 1..6", form.MinPets, form.MaxPets)
	}
}

func TestProfilePage(t *testing.T) {
	router := newRouter(passthroughGuard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /profile status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response struct {
		Data ProfilePage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode profile page: %v", err)
	}
	if response.Data.Identity == nil || response.Data.Identity.Email != "jamie@example.com" {
		t.Errorf("profile identity = %+v, expected the session identity", response.Data.Identity)
	}
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	router := newRouter(redirectingGuard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
}
