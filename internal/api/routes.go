package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/api/handlers"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/api/middleware"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/audit"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/auth"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/config"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/prompts"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/repository"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/scoring"
)

// SetupRoutes configures every route the service exposes. Scoring reads are
// open; feedback submission and history lookups require an admin bearer
// token since they expose or mutate review history.
func SetupRoutes(app *fiber.App, cfg *config.Config, svc *scoring.Service, storage repository.ScoreRepository, jwtService *auth.JWTService, auditLog audit.Logger, promptSet prompts.Set) {
	health := handlers.NewHealthHandler(cfg, storage)
	health.RegisterRoutes(app)

	scoringHandler := handlers.NewScoringHandler(svc, auditLog, cfg.Persistence.Enabled)
	scoringHandler.RegisterRoutes(app)

	promptsHandler := handlers.NewPromptsHandler(promptSet)
	promptsHandler.RegisterRoutes(app)

	admin := app.Group("", middleware.RequireAdmin(jwtService))
	handlers.NewTermHistoryHandler(svc).RegisterRoutes(admin)
	handlers.NewFeedbackHandler(svc, auditLog).RegisterRoutes(admin)
}
