// Package postgres implements repository.ScoreRepository against a
// PostgreSQL database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/textutil"
)

// ScoreRepository persists term scores and feedback in Postgres.
type ScoreRepository struct {
	db *sqlx.DB
}

// New wraps a connected *sqlx.DB as a repository.ScoreRepository.
func New(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) SaveTermScore(ctx context.Context, score model.TermScoreResponse) (int64, error) {
	const query = `
		INSERT INTO term_scores (
			term, locale, sample_size, eigen_ctx, eigen_graph,
			severity_mean, targetedness_mean, reclaimed_rate, trend_velocity,
			score, confidence, band, model_version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		textutil.NormalizeTerm(score.Term),
		score.Locale,
		score.SampleSize,
		score.EigenCtx,
		score.EigenGraph,
		score.SeverityMean,
		score.TargetednessMean,
		score.ReclaimedRate,
		score.TrendVelocity,
		score.Score,
		score.Confidence,
		string(score.Band),
		score.ModelVersion,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save term score: %w", err)
	}
	return id, nil
}

func (r *ScoreRepository) GetFeatureQuantiles(ctx context.Context, sampleLimit, minSamples int) (*model.FeatureQuantiles, error) {
	safeLimit := sampleLimit
	if safeLimit < minSamples {
		safeLimit = minSamples
	}
	if safeLimit > 5000 {
		safeLimit = 5000
	}

	const query = `
		WITH recent AS (
			SELECT eigen_ctx, eigen_graph, score
			FROM term_scores
			ORDER BY id DESC
			LIMIT $1
		)
		SELECT
			count(*) AS sample_count,
			percentile_cont(0.5) WITHIN GROUP (ORDER BY eigen_ctx) AS eigen_ctx_p50,
			percentile_cont(0.9) WITHIN GROUP (ORDER BY eigen_ctx) AS eigen_ctx_p90,
			percentile_cont(0.5) WITHIN GROUP (ORDER BY eigen_graph) AS eigen_graph_p50,
			percentile_cont(0.9) WITHIN GROUP (ORDER BY eigen_graph) AS eigen_graph_p90,
			percentile_cont(0.7) WITHIN GROUP (ORDER BY score) AS score_p70,
			percentile_cont(0.9) WITHIN GROUP (ORDER BY score) AS score_p90
		FROM recent
	`

	var row struct {
		SampleCount   int64           `db:"sample_count"`
		EigenCtxP50   sql.NullFloat64 `db:"eigen_ctx_p50"`
		EigenCtxP90   sql.NullFloat64 `db:"eigen_ctx_p90"`
		EigenGraphP50 sql.NullFloat64 `db:"eigen_graph_p50"`
		EigenGraphP90 sql.NullFloat64 `db:"eigen_graph_p90"`
		ScoreP70      sql.NullFloat64 `db:"score_p70"`
		ScoreP90      sql.NullFloat64 `db:"score_p90"`
	}
	if err := r.db.GetContext(ctx, &row, query, safeLimit); err != nil {
		return nil, fmt.Errorf("get feature quantiles: %w", err)
	}

	if row.SampleCount < int64(minSamples) || !row.EigenCtxP50.Valid || !row.EigenGraphP50.Valid {
		return nil, nil
	}

	return &model.FeatureQuantiles{
		SampleCount:   float64(row.SampleCount),
		EigenCtxP50:   row.EigenCtxP50.Float64,
		EigenCtxP90:   row.EigenCtxP90.Float64,
		EigenGraphP50: row.EigenGraphP50.Float64,
		EigenGraphP90: row.EigenGraphP90.Float64,
		ScoreP70:      row.ScoreP70.Float64,
		ScoreP90:      row.ScoreP90.Float64,
	}, nil
}

func (r *ScoreRepository) GetTermHistory(ctx context.Context, term string, limit int) ([]model.TermScoreHistoryItem, error) {
	safeLimit := limit
	if safeLimit < 1 {
		safeLimit = 1
	}
	if safeLimit > 200 {
		safeLimit = 200
	}

	const query = `
		SELECT id, term, locale, score, confidence, band, model_version,
		       to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS.USZ') AS created_at
		FROM term_scores
		WHERE term = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	var rows []struct {
		ID           int64   `db:"id"`
		Term         string  `db:"term"`
		Locale       string  `db:"locale"`
		Score        float64 `db:"score"`
		Confidence   float64 `db:"confidence"`
		Band         string  `db:"band"`
		ModelVersion string  `db:"model_version"`
		CreatedAt    string  `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, textutil.NormalizeTerm(term), safeLimit); err != nil {
		return nil, fmt.Errorf("get term history: %w", err)
	}

	history := make([]model.TermScoreHistoryItem, 0, len(rows))
	for _, row := range rows {
		history = append(history, model.TermScoreHistoryItem{
			ID:           row.ID,
			Term:         row.Term,
			Locale:       row.Locale,
			Score:        row.Score,
			Confidence:   row.Confidence,
			Band:         model.Band(row.Band),
			ModelVersion: row.ModelVersion,
			CreatedAt:    row.CreatedAt,
		})
	}
	return history, nil
}

func (r *ScoreRepository) SaveFeedback(ctx context.Context, feedback model.FeedbackRequest) (int64, error) {
	const query = `
		INSERT INTO feedback (term, locale, feedback_type, proposed_band, proposed_score, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var proposedBand *string
	if feedback.ProposedBand != nil {
		value := string(*feedback.ProposedBand)
		proposedBand = &value
	}

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		textutil.NormalizeTerm(feedback.Term),
		feedback.Locale,
		string(feedback.FeedbackType),
		proposedBand,
		feedback.ProposedScore,
		feedback.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save feedback: %w", err)
	}
	return id, nil
}
