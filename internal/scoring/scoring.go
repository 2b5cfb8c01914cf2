// Package scoring orchestrates labeling, spectral analysis, and fusion into
// the term- and text-scoring operations the API exposes.
package scoring

import (
	"context"
	"sort"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/apierr"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/embedding"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/fusion"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/labeler"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/repository"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/spectral"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/textutil"
)

// tunedThresholdMinSamples is the minimum historical sample count required
// before band thresholds are tuned away from the engine's defaults.
const tunedThresholdMinSamples = 80

// quantileSampleLimit bounds how many recent rows feed the feature quantile
// snapshot, keeping that query bounded regardless of table size.
const quantileSampleLimit = 1000

// quantileMinSamples is the minimum historical sample count before feature
// calibration switches on.
const quantileMinSamples = 40

// Service wires a labeler, fusion engine, and optional storage backend into
// the term- and text-scoring operations.
type Service struct {
	EmbeddingDim int
	Labeler      labeler.Labeler
	FusionEngine *fusion.Engine
	Storage      repository.ScoreRepository // nil disables persistence
}

// ScoreTerm scores a single term against its contexts (spec.md §4.7).
func (s *Service) ScoreTerm(ctx context.Context, term string, contexts []string, locale string, trendVelocity float64, persist bool) (model.TermScoreResponse, error) {
	if len(contexts) == 0 {
		return model.TermScoreResponse{}, apierr.InvalidArgumentf("at least one context is required")
	}
	if len(term) < 1 || len(term) > 128 {
		return model.TermScoreResponse{}, apierr.InvalidArgumentf("term must be between 1 and 128 characters")
	}
	if len(locale) < 2 || len(locale) > 16 {
		return model.TermScoreResponse{}, apierr.InvalidArgumentf("locale must be between 2 and 16 characters")
	}

	target := textutil.NormalizeTerm(term)
	if target == "" {
		return model.TermScoreResponse{}, apierr.InvalidArgumentf("term must contain at least one token")
	}
	targetTokens := textutil.Tokenize(target)

	termFoundInContext := false
	for _, text := range contexts {
		if textutil.TokenSequenceContains(textutil.Tokenize(text), targetTokens) {
			termFoundInContext = true
			break
		}
	}

	var warnings []string
	if !termFoundInContext {
		warnings = append(warnings, "The scored term was not found in any provided context. Add contexts that include the exact term for reliable scoring.")
	}

	labels, err := s.Labeler.LabelBatch(ctx, target, contexts, locale)
	if err != nil {
		return model.TermScoreResponse{}, apierr.Wrap(apierr.Internal, "labeler failed", err)
	}
	sampleSize := len(contexts)

	var severitySum, targetednessSum float64
	var reclaimedCount int
	for _, label := range labels {
		severitySum += label.Severity
		targetednessSum += label.Targetedness
		if label.Reclaimed {
			reclaimedCount++
		}
	}
	severityMean := severitySum / float64(sampleSize)
	targetednessMean := targetednessSum / float64(sampleSize)
	reclaimedRate := float64(reclaimedCount) / float64(sampleSize)

	if s.EmbeddingDim < embedding.MinDim {
		return model.TermScoreResponse{}, apierr.InvalidArgumentf("embedding_dim must be >= %d", embedding.MinDim)
	}
	if s.EmbeddingDim > 2048 {
		return model.TermScoreResponse{}, apierr.InvalidArgumentf("embedding_dim must be <= 2048")
	}
	eigenCtx := spectral.ContextCovarianceLargestEigenvalue(contexts, s.EmbeddingDim)

	graph, err := spectral.BuildCooccurrenceGraph(contexts, spectral.NewGraphOptions())
	if err != nil {
		return model.TermScoreResponse{}, apierr.Wrap(apierr.Internal, "failed to build co-occurrence graph", err)
	}
	eigenGraph := spectral.TermGraphSpectralRadius(target, graph)
	if termFoundInContext && eigenGraph <= 0 {
		warnings = append(warnings, "No graph signal was found for this term in the provided contexts. Add more varied contexts where the term co-occurs with descriptive language.")
	}

	var quantiles *model.FeatureQuantiles
	if s.Storage != nil {
		quantiles, err = s.Storage.GetFeatureQuantiles(ctx, quantileSampleLimit, quantileMinSamples)
		if err != nil {
			return model.TermScoreResponse{}, apierr.Wrap(apierr.ServiceUnavailable, "failed to load feature quantiles", err)
		}
	}

	reviewThreshold, blockThreshold := fusion.TunedBandThresholds(
		s.FusionEngine.ReviewThreshold,
		s.FusionEngine.BlockThreshold,
		quantiles,
		tunedThresholdMinSamples,
	)

	fused := s.FusionEngine.Fuse(fusion.FeatureVector{
		LambdaGraph:      eigenGraph,
		LambdaCtx:        eigenCtx,
		SeverityMean:     severityMean,
		TargetednessMean: targetednessMean,
		ReclaimedRate:    reclaimedRate,
		TrendVelocity:    trendVelocity,
		SampleSize:       sampleSize,
	}, quantiles)
	band := fusion.ScoreBand(fused.Score, reviewThreshold, blockThreshold)

	response := model.TermScoreResponse{
		Term:             target,
		Locale:           locale,
		SampleSize:       sampleSize,
		EigenCtx:         eigenCtx,
		EigenGraph:       eigenGraph,
		SeverityMean:     severityMean,
		TargetednessMean: targetednessMean,
		ReclaimedRate:    reclaimedRate,
		TrendVelocity:    trendVelocity,
		Score:            fused.Score,
		Confidence:       fused.Confidence,
		Band:             band,
		ModelVersion:     fused.ModelVersion,
		Warnings:         warnings,
	}

	if persist && s.Storage != nil {
		if _, err := s.Storage.SaveTermScore(ctx, response); err != nil {
			return model.TermScoreResponse{}, apierr.Wrap(apierr.ServiceUnavailable, "failed to persist term score", err)
		}
	}
	return response, nil
}

// ScoreText finds every candidate term that actually occurs in text and
// scores each against the sentences it appears in (spec.md §4.7).
func (s *Service) ScoreText(ctx context.Context, text string, candidateTerms []string, locale string, persist bool) (model.TextScoreResponse, error) {
	textTokens := textutil.Tokenize(text)
	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		sentences = []string{text}
	}

	normalizedSet := make(map[string]bool)
	for _, term := range candidateTerms {
		if term == "" {
			continue
		}
		normalized := textutil.NormalizeTerm(term)
		if normalized != "" {
			normalizedSet[normalized] = true
		}
	}
	candidates := make([]string, 0, len(normalizedSet))
	for term := range normalizedSet {
		candidates = append(candidates, term)
	}
	sort.Strings(candidates)

	var results []model.TextTermScore
	for _, candidate := range candidates {
		candidateTokens := textutil.Tokenize(candidate)
		if !textutil.TokenSequenceContains(textTokens, candidateTokens) {
			continue
		}

		var termContexts []string
		for _, sentence := range sentences {
			if textutil.TokenSequenceContains(textutil.Tokenize(sentence), candidateTokens) {
				termContexts = append(termContexts, sentence)
			}
		}
		if len(termContexts) == 0 {
			termContexts = []string{text}
		}

		scored, err := s.ScoreTerm(ctx, candidate, termContexts, locale, 0, persist)
		if err != nil {
			return model.TextScoreResponse{}, err
		}
		results = append(results, model.TextTermScore{
			Term:       scored.Term,
			Score:      scored.Score,
			Confidence: scored.Confidence,
			Band:       scored.Band,
		})
	}

	return model.TextScoreResponse{
		Locale:     locale,
		TermsFound: len(results),
		Results:    results,
	}, nil
}

// GetTermHistory returns the persisted scoring history for term, or an
// empty history if persistence is disabled.
func (s *Service) GetTermHistory(ctx context.Context, term string, limit int) (model.TermHistoryResponse, error) {
	normalized := textutil.NormalizeTerm(term)
	if s.Storage == nil {
		return model.TermHistoryResponse{Term: normalized, Count: 0, History: nil}, nil
	}

	history, err := s.Storage.GetTermHistory(ctx, normalized, limit)
	if err != nil {
		return model.TermHistoryResponse{}, apierr.Wrap(apierr.ServiceUnavailable, "failed to load term history", err)
	}
	return model.TermHistoryResponse{Term: normalized, Count: len(history), History: history}, nil
}

// SubmitFeedback records a reviewer correction. It fails with
// ServiceUnavailable when persistence is disabled, since there is nowhere
// to record the correction.
func (s *Service) SubmitFeedback(ctx context.Context, payload model.FeedbackRequest) (model.FeedbackResponse, error) {
	if len(payload.Notes) > 4000 {
		return model.FeedbackResponse{}, apierr.InvalidArgumentf("notes must be at most 4000 characters")
	}
	if s.Storage == nil {
		return model.FeedbackResponse{}, apierr.New(apierr.ServiceUnavailable, "persistence is disabled; feedback cannot be recorded")
	}

	id, err := s.Storage.SaveFeedback(ctx, payload)
	if err != nil {
		return model.FeedbackResponse{}, apierr.Wrap(apierr.ServiceUnavailable, "failed to persist feedback", err)
	}
	return model.FeedbackResponse{Status: "accepted", FeedbackID: id}, nil
}
