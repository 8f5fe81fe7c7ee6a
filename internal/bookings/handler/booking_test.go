package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "pawsteps/pkg/errors"
	"pawsteps/pkg/logger"
	"pawsteps/pkg/middleware"
	"pawsteps/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc func(ctx context.Context, ownerID string, req *model.BookingRequest) (*model.Booking, error)
	listFunc   func(ctx context.Context, ownerID string) ([]*model.Booking, int64, error)
}

func (m *mockBookingService) Create(ctx context.Context, ownerID string, req *model.BookingRequest) (*model.Booking, error) {
	return m.createFunc(ctx, ownerID, req)
}

func (m *mockBookingService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Booking, int64, error) {
	return m.listFunc(ctx, ownerID)
}

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

// denyingGuard rejects every request, standing in for no session.
func denyingGuard(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusUnauthorized)
	}
}

func newRouter(svc *mockBookingService, guard func(httprouter.Handle) httprouter.Handle) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, guard, testLogger()).RegisterRoutes(router)
	return router
}

func TestCreateBooking(t *testing.T) {
	t.Run("owner comes from the session identity, not the body", func(t *testing.T) {
		var gotOwnerID string
		svc := &mockBookingService{
			createFunc: func(ctx context.Context, ownerID string, req *model.BookingRequest) (*model.Booking, error) {
				gotOwnerID = ownerID
				return &model.Booking{ID: "b1", OwnerID: ownerID, Service: req.Service}, nil
			},
		}
		router := newRouter(svc, passthroughGuard)

		body := `{"service":"walk","date":"2024-06-01","time":"09:00","duration_mins":30,"pets":1,"owner_id":"attacker"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if gotOwnerID != "user-1" {
			t.Errorf("ownerID = %q, want the session identity %q", gotOwnerID, "user-1")
		}
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		svc := &mockBookingService{
			createFunc: func(ctx context.Context, ownerID string, req *model.BookingRequest) (*model.Booking, error) {
				t.Error("service must not run for a malformed body")
				return nil, nil
			},
		}
		router := newRouter(svc, passthroughGuard)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{oops`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("service errors keep their status", func(t *testing.T) {
		svc := &mockBookingService{
			createFunc: func(ctx context.Context, ownerID string, req *model.BookingRequest) (*model.Booking, error) {
				return nil, apperrors.Validation("Booking validation failed", nil)
			},
		}
		router := newRouter(svc, passthroughGuard)

		body := `{"service":"walk","date":"2024-06-01","time":"09:00","duration_mins":5,"pets":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
	})

	t.Run("guard rejection blocks the route", func(t *testing.T) {
		svc := &mockBookingService{
			createFunc: func(ctx context.Context, ownerID string, req *model.BookingRequest) (*model.Booking, error) {
				t.Error("service must not run without an identity")
				return nil, nil
			},
		}
		router := newRouter(svc, denyingGuard)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

func TestListMine(t *testing.T) {
	t.Run("returns the owner's bookings with the total", func(t *testing.T) {
		svc := &mockBookingService{
			listFunc: func(ctx context.Context, ownerID string) ([]*model.Booking, int64, error) {
				if ownerID != "user-1" {
					t.Errorf("ownerID = %q, want the session identity", ownerID)
				}
				return []*model.Booking{{ID: "b1", OwnerID: ownerID}}, 1, nil
			},
		}
		router := newRouter(svc, passthroughGuard)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var response struct {
			Data       []*model.Booking `json:"data"`
			TotalCount int64            `json:"total_count"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(response.Data) != 1 || response.TotalCount != 1 {
			t.Errorf("got %d bookings with total %d, want 1/1", len(response.Data), response.TotalCount)
		}
	})

	t.Run("empty list serializes as an array", func(t *testing.T) {
		svc := &mockBookingService{
			listFunc: func(ctx context.Context, ownerID string) ([]*model.Booking, int64, error) {
				return []*model.Booking{}, 0, nil
			},
		}
		router := newRouter(svc, passthroughGuard)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), `"data":[]`) {
			t.Errorf("body = %s, expected an empty array, not null", rec.Body.String())
		}
	})
}
