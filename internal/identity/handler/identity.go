package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pawsteps/internal/identity/service"
	httputil "pawsteps/pkg/http"
	"pawsteps/pkg/logger"
	"pawsteps/pkg/middleware"
	"pawsteps/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type IdentityHandler struct {
	service service.IdentityService
	guard   func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewIdentityHandler(service service.IdentityService, guard func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *IdentityHandler {
	return &IdentityHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *IdentityHandler) SignUp(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SignUp", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	session, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SignUp", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	setSessionCookie(w, session)
	if err := httputil.WriteCreated(w, session); err != nil {
		h.log.Error("failed to write created response", "handler", "SignUp", "operation", "WriteCreated", "error", err)
	}
}

func (h *IdentityHandler) SignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SignIn", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	session, err := h.service.SignIn(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SignIn", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	setSessionCookie(w, session)
	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "SignIn", "operation", "WriteSuccess", "error", err)
	}
}

func (h *IdentityHandler) SignOut(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := middleware.ExtractToken(r)

	if err := h.service.SignOut(r.Context(), token); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SignOut", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	clearSessionCookie(w)
	httputil.WriteNoContent(w)
}

// Session restores the identity behind the persisted session marker so a
// reload does not spuriously log the user out.
func (h *IdentityHandler) Session(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, err := h.service.Restore(r.Context(), middleware.ExtractToken(r))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Session", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, identity); err != nil {
		h.log.Error("failed to write success response", "handler", "Session", "operation", "WriteSuccess", "error", err)
	}
}

func (h *IdentityHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := middleware.IdentityFrom(r.Context())

	if err := httputil.WriteSuccess(w, identity); err != nil {
		h.log.Error("failed to write success response", "handler", "Profile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *IdentityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/signup", h.SignUp)
	router.POST("/api/v1/auth/signin", h.SignIn)
	router.POST("/api/v1/auth/signout", h.SignOut)
	router.GET("/api/v1/session", h.Session)
	router.GET("/api/v1/profile", h.guard(h.Profile))
}

func setSessionCookie(w http.ResponseWriter, session *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
