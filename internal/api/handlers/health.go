package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/config"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/repository"
)

// HealthHandler reports service readiness, including whether storage is
// reachable and which labeler mode is configured. The configured mode is
// reported as-is, even when the server fell back to the heuristic labeler.
type HealthHandler struct {
	cfg     *config.Config
	storage repository.ScoreRepository // nil when persistence is disabled
}

// NewHealthHandler builds a HealthHandler.
func NewHealthHandler(cfg *config.Config, storage repository.ScoreRepository) *HealthHandler {
	return &HealthHandler{cfg: cfg, storage: storage}
}

// RegisterRoutes registers the health and root routes.
func (h *HealthHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)
}

// Root answers a bare liveness probe.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": h.cfg.AppName,
		"version": h.cfg.AppVersion,
	})
}

// Health reports service and storage readiness.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := model.HealthResponse{
		Status:             "ok",
		App:                h.cfg.AppName,
		Version:            h.cfg.AppVersion,
		LabelerMode:        h.cfg.Labeler.Mode,
		LLMConfigured:      h.cfg.Labeler.OpenAIAPIKey != "",
		PersistenceEnabled: h.cfg.Persistence.Enabled,
	}

	if !h.cfg.Persistence.Enabled || h.storage == nil {
		resp.PersistenceAvailable = false
	} else if _, err := h.storage.GetFeatureQuantiles(c.Context(), 1, 1); err != nil {
		resp.PersistenceAvailable = false
		resp.PersistenceError = err.Error()
		resp.Status = "degraded"
	} else {
		resp.PersistenceAvailable = true
	}

	return c.JSON(resp)
}
