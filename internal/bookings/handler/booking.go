package handler

import (
	"encoding/json"
	"net/http"

	"pawsteps/internal/bookings/service"
	httputil "pawsteps/pkg/http"
	"pawsteps/pkg/logger"
	"pawsteps/pkg/middleware"
	"pawsteps/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	guard   func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

// NewBookingHandler serves the booking API. Every route is wrapped by the
// guard; the owner id always comes from the verified context identity.
func NewBookingHandler(service service.BookingService, guard func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := middleware.IdentityFrom(r.Context())

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), identity.ID, &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := middleware.IdentityFrom(r.Context())

	bookings, total, err := h.service.ListByOwner(r.Context(), identity.ID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListMine", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteList(w, bookings, total); err != nil {
		h.log.Error("failed to write list response", "handler", "ListMine", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.guard(h.Create))
	router.GET("/api/v1/bookings", h.guard(h.ListMine))
}
