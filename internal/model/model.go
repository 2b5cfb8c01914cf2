// Package model holds the request/response and persistence types shared
// across the labeler, fusion, scoring, and API layers.
package model

// Band is the disposition a scored term or piece of text is routed to.
type Band string

const (
	BandMonitor Band = "monitor"
	BandReview  Band = "review"
	BandBlock   Band = "block"
)

// ContextLabel is a single labeler's judgment of how a term was used within
// one context.
type ContextLabel struct {
	Targetedness   float64 `json:"targetedness"`
	Severity       float64 `json:"severity"`
	Reclaimed      bool    `json:"reclaimed"`
	IsQuoted       bool    `json:"is_quoted"`
	Confidence     float64 `json:"confidence"`
	RationaleCode  string  `json:"rationale_code"`
}

// TermScoreRequest is the inbound payload for scoring a single term.
type TermScoreRequest struct {
	Term          string   `json:"term"`
	Contexts      []string `json:"contexts"`
	Locale        string   `json:"locale"`
	TrendVelocity float64  `json:"trend_velocity"`
}

// TermScoreResponse is the full scored result for a term.
type TermScoreResponse struct {
	Term              string   `json:"term"`
	Locale            string   `json:"locale"`
	SampleSize        int      `json:"sample_size"`
	EigenCtx          float64  `json:"eigen_ctx"`
	EigenGraph        float64  `json:"eigen_graph"`
	SeverityMean      float64  `json:"severity_mean"`
	TargetednessMean  float64  `json:"targetedness_mean"`
	ReclaimedRate     float64  `json:"reclaimed_rate"`
	TrendVelocity     float64  `json:"trend_velocity"`
	Score             float64  `json:"score"`
	Confidence        float64  `json:"confidence"`
	Band              Band     `json:"band"`
	ModelVersion      string   `json:"model_version"`
	Warnings          []string `json:"warnings"`
}

// TermScoreHistoryItem is one persisted row of a term's scoring history.
type TermScoreHistoryItem struct {
	ID           int64   `json:"id"`
	Term         string  `json:"term"`
	Locale       string  `json:"locale"`
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
	Band         Band    `json:"band"`
	ModelVersion string  `json:"model_version"`
	CreatedAt    string  `json:"created_at"`
}

// TermHistoryResponse answers a term history lookup.
type TermHistoryResponse struct {
	Term    string                 `json:"term"`
	Count   int                    `json:"count"`
	History []TermScoreHistoryItem `json:"history"`
}

// TextScoreRequest scores every candidate term found within a free-form text.
type TextScoreRequest struct {
	Text           string   `json:"text"`
	CandidateTerms []string `json:"candidate_terms"`
	Locale         string   `json:"locale"`
}

// TextTermScore is the abbreviated per-term result within a TextScoreResponse.
type TextTermScore struct {
	Term       string  `json:"term"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Band       Band    `json:"band"`
}

// TextScoreResponse is the result of scoring every candidate term detected
// in a text.
type TextScoreResponse struct {
	Locale     string          `json:"locale"`
	TermsFound int             `json:"terms_found"`
	Results    []TextTermScore `json:"results"`
}

// FeedbackType classifies a human correction submitted against a scored term.
type FeedbackType string

const (
	FeedbackFalsePositive  FeedbackType = "false_positive"
	FeedbackFalseNegative  FeedbackType = "false_negative"
	FeedbackPolicyOverride FeedbackType = "policy_override"
	FeedbackOther          FeedbackType = "other"
)

// FeedbackRequest is a reviewer correction against a previously scored term.
type FeedbackRequest struct {
	Term           string       `json:"term"`
	Locale         string       `json:"locale"`
	FeedbackType   FeedbackType `json:"feedback_type"`
	ProposedBand   *Band        `json:"proposed_band,omitempty"`
	ProposedScore  *float64     `json:"proposed_score,omitempty"`
	Notes          string       `json:"notes"`
}

// FeedbackResponse confirms a feedback submission was persisted.
type FeedbackResponse struct {
	Status     string `json:"status"`
	FeedbackID int64  `json:"feedback_id"`
}

// HealthResponse reports service readiness and which collaborators are wired.
type HealthResponse struct {
	Status               string `json:"status"`
	App                  string `json:"app"`
	Version              string `json:"version"`
	LabelerMode          string `json:"labeler_mode"`
	LLMConfigured        bool   `json:"llm_configured"`
	PersistenceEnabled   bool   `json:"persistence_enabled"`
	PersistenceAvailable bool   `json:"persistence_available"`
	PersistenceError     string `json:"persistence_error,omitempty"`
}

// FeatureQuantiles are the historical percentile snapshots used to calibrate
// fusion features and tune band thresholds. A nil *float64 pointer is never
// used here: callers that lack enough history return a nil *FeatureQuantiles
// instead, matching the "insufficient samples" fallback.
type FeatureQuantiles struct {
	SampleCount   float64
	EigenCtxP50   float64
	EigenCtxP90   float64
	EigenGraphP50 float64
	EigenGraphP90 float64
	ScoreP70      float64
	ScoreP90      float64
}
