package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/prompts"
)

// PromptsHandler exposes the labeler's prompt templates for inspection.
type PromptsHandler struct {
	set prompts.Set
}

// NewPromptsHandler builds a PromptsHandler.
func NewPromptsHandler(set prompts.Set) *PromptsHandler {
	return &PromptsHandler{set: set}
}

// RegisterRoutes registers the prompts route.
func (h *PromptsHandler) RegisterRoutes(api fiber.Router) {
	api.Get("/prompts", h.ListPrompts)
}

// ListPrompts returns the labeler's prompt templates. Disambiguation and
// drift templates are included for transparency even though no labeler
// currently invokes them.
func (h *PromptsHandler) ListPrompts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"usage_classification": h.set.Usage,
		"severity_scoring":     h.set.Severity,
		"ambiguity_resolution": h.set.Disambiguation,
		"drift_detection":      h.set.Drift,
	})
}
