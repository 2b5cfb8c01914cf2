// Package repository defines the persistence contract for scored terms and
// feedback, and the Postgres implementation of it.
package repository

import (
	"context"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
)

// ScoreRepository persists term scores and reviewer feedback, and serves the
// aggregate queries the fusion engine and threshold tuner depend on.
type ScoreRepository interface {
	// SaveTermScore persists a scored term and returns its assigned row ID.
	SaveTermScore(ctx context.Context, score model.TermScoreResponse) (int64, error)

	// GetFeatureQuantiles returns the historical percentile snapshot used to
	// calibrate fusion features and tune band thresholds, computed over the
	// most recent sampleLimit rows. It returns nil if fewer than minSamples
	// rows are available.
	GetFeatureQuantiles(ctx context.Context, sampleLimit, minSamples int) (*model.FeatureQuantiles, error)

	// GetTermHistory returns the most recent scored rows for term, newest
	// first, capped at limit.
	GetTermHistory(ctx context.Context, term string, limit int) ([]model.TermScoreHistoryItem, error)

	// SaveFeedback persists a reviewer correction and returns its assigned
	// row ID.
	SaveFeedback(ctx context.Context, feedback model.FeedbackRequest) (int64, error)
}
