// Package handlers adapts HTTP requests into calls against the scoring
// service, following the teacher's handler-per-resource style.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/apierr"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/api/middleware"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/audit"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/scoring"
)

// ScoringHandler handles the term- and text-scoring endpoints.
type ScoringHandler struct {
	svc      *scoring.Service
	auditLog audit.Logger
	persist  bool
}

// NewScoringHandler builds a ScoringHandler. persist controls whether
// successfully scored terms are written to storage by default.
func NewScoringHandler(svc *scoring.Service, auditLog audit.Logger, persist bool) *ScoringHandler {
	return &ScoringHandler{svc: svc, auditLog: auditLog, persist: persist}
}

// RegisterRoutes registers the scoring routes.
func (h *ScoringHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/score/term", h.ScoreTerm)
	api.Post("/score/text", h.ScoreText)
}

// ScoreTerm scores a single term against its contexts.
func (h *ScoringHandler) ScoreTerm(c *fiber.Ctx) error {
	var req model.TermScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, apierr.InvalidArgumentf("invalid request body: %v", err))
	}
	if req.Locale == "" {
		req.Locale = "en-US"
	}

	result, err := h.svc.ScoreTerm(c.Context(), req.Term, req.Contexts, req.Locale, req.TrendVelocity, h.persist)
	if err != nil {
		return writeError(c, err)
	}

	h.auditLog.Log(c.Context(), audit.NewTermScoredEvent(result.Term, middleware.Subject(c), result.Score, result.Confidence, string(result.Band)))
	return c.JSON(result)
}

// ScoreText scores every candidate term found within free-form text.
func (h *ScoringHandler) ScoreText(c *fiber.Ctx) error {
	var req model.TextScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, apierr.InvalidArgumentf("invalid request body: %v", err))
	}
	if req.Locale == "" {
		req.Locale = "en-US"
	}

	result, err := h.svc.ScoreText(c.Context(), req.Text, req.CandidateTerms, req.Locale, h.persist)
	if err != nil {
		return writeError(c, err)
	}

	for _, termResult := range result.Results {
		h.auditLog.Log(c.Context(), audit.NewTermScoredEvent(termResult.Term, middleware.Subject(c), termResult.Score, termResult.Confidence, string(termResult.Band)))
	}
	return c.JSON(result)
}

// TermHistoryHandler handles the per-term scoring history endpoint.
type TermHistoryHandler struct {
	svc *scoring.Service
}

// NewTermHistoryHandler builds a TermHistoryHandler.
func NewTermHistoryHandler(svc *scoring.Service) *TermHistoryHandler {
	return &TermHistoryHandler{svc: svc}
}

// RegisterRoutes registers the term history route.
func (h *TermHistoryHandler) RegisterRoutes(api fiber.Router) {
	api.Get("/term/:term/history", h.GetHistory)
}

// GetHistory returns the persisted scoring history for a term.
func (h *TermHistoryHandler) GetHistory(c *fiber.Ctx) error {
	term := c.Params("term")
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			return writeError(c, apierr.InvalidArgumentf("limit must be an integer between 1 and 200"))
		}
		limit = parsed
	}

	history, err := h.svc.GetTermHistory(c.Context(), term, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(history)
}

// FeedbackHandler handles reviewer feedback submission.
type FeedbackHandler struct {
	svc      *scoring.Service
	auditLog audit.Logger
}

// NewFeedbackHandler builds a FeedbackHandler.
func NewFeedbackHandler(svc *scoring.Service, auditLog audit.Logger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, auditLog: auditLog}
}

// RegisterRoutes registers the feedback route.
func (h *FeedbackHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/feedback", h.SubmitFeedback)
}

// SubmitFeedback records a reviewer correction against a previously scored term.
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req model.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, apierr.InvalidArgumentf("invalid request body: %v", err))
	}
	if req.Term == "" {
		return writeError(c, apierr.InvalidArgumentf("term is required"))
	}

	result, err := h.svc.SubmitFeedback(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	h.auditLog.Log(c.Context(), audit.NewFeedbackSubmittedEvent(req.Term, middleware.Subject(c), string(req.FeedbackType)))
	return c.Status(fiber.StatusCreated).JSON(result)
}
