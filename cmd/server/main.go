package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/api"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/audit"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/auth"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/config"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/database"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/fusion"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/labeler"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/prompts"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/repository"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/repository/postgres"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/scoring"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var storage repository.ScoreRepository
	if cfg.Persistence.Enabled {
		db, err := database.NewConnection(cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(cfg.Database); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}

		storage = postgres.New(db.DB)
		log.Info("persistence enabled")
	} else {
		log.Warn("persistence disabled; term scores and feedback will not be stored")
	}

	var termLabeler labeler.Labeler
	promptSet := prompts.Load()
	heuristic := labeler.NewHeuristicLabeler()
	switch cfg.Labeler.Mode {
	case "openai":
		if cfg.Labeler.OpenAIAPIKey == "" {
			log.Warn("labeler.mode is openai but no API key is configured; falling back to heuristic labeler")
			termLabeler = heuristic
		} else {
			timeout := time.Duration(cfg.Labeler.OpenAITimeoutS * float64(time.Second))
			termLabeler = labeler.NewRemoteLabeler(cfg.Labeler.OpenAIAPIKey, cfg.Labeler.OpenAIModel, timeout, promptSet, log)
		}
	default:
		termLabeler = heuristic
	}

	fusionEngine := fusion.NewEngine()
	fusionEngine.ReviewThreshold = cfg.Fusion.ReviewThreshold
	fusionEngine.BlockThreshold = cfg.Fusion.BlockThreshold

	svc := &scoring.Service{
		EmbeddingDim: cfg.EmbeddingDim,
		Labeler:      termLabeler,
		FusionEngine: fusionEngine,
		Storage:      storage,
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.AppName)
	auditLog := audit.NewLogrusLogger(log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	api.SetupRoutes(app, cfg, svc, storage, jwtService, auditLog, promptSet)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Infof("%s starting on %s", cfg.AppName, addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
