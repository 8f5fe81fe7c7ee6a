// Package health exposes liveness and readiness endpoints. Readiness pings
// whichever backing stores the active variant configured.
package health

import (
	"context"
	"net/http"
	"time"

	"pawsteps/pkg/config"
	httputil "pawsteps/pkg/http"
	"pawsteps/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type Handler struct {
	cfg *config.Config
	log *logger.Logger
}

func NewHandler(cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		cfg: cfg,
		log: log,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pingStores(ctx); err != nil {
		h.log.Error("Store health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Database: "error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) pingStores(ctx context.Context) error {
	if mongoClient := h.cfg.Client.Mongo; mongoClient != nil {
		if err := mongoClient.Ping(ctx, nil); err != nil {
			return err
		}
	}
	if db := h.cfg.Client.Postgres; db != nil {
		if err := db.PingContext(ctx); err != nil {
			return err
		}
	}
	if rdb := h.cfg.Client.Redis; rdb != nil {
		if _, err := rdb.Ping().Result(); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
