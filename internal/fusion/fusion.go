// Package fusion combines spectral and labeler-derived features into a
// single bounded risk score, confidence, and disposition band.
package fusion

import (
	"math"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
)

func clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

func compressNonnegative(value float64) float64 {
	return math.Tanh(math.Log1p(math.Max(0, value)))
}

func sigmoid(value float64) float64 {
	return 1.0 / (1.0 + math.Exp(-value))
}

func calibrateNonnegativeFeature(value float64, p50, p90 *float64) float64 {
	baseline := compressNonnegative(value)
	if p50 == nil || p90 == nil || *p90 <= *p50 {
		return baseline
	}

	spread := math.Max(1e-6, *p90-*p50)
	zScore := (value - *p50) / spread
	calibrated := sigmoid(1.2 * zScore)
	return clamp((0.45*baseline)+(0.55*calibrated), 0, 1)
}

func quantile(q *model.FeatureQuantiles, get func(*model.FeatureQuantiles) float64) *float64 {
	if q == nil {
		return nil
	}
	v := get(q)
	return &v
}

// FeatureVector holds the raw, uncalibrated inputs to fusion for one
// scored term.
type FeatureVector struct {
	LambdaGraph      float64
	LambdaCtx        float64
	SeverityMean     float64
	TargetednessMean float64
	ReclaimedRate    float64
	TrendVelocity    float64
	SampleSize       int
}

// Output is the fused result: a bounded score, a confidence estimate, and
// the band it falls into under the engine's default thresholds.
type Output struct {
	Score        float64
	Confidence   float64
	Band         model.Band
	LinearValue  float64
	ModelVersion string
}

// Engine fuses FeatureVectors into Outputs using a fixed logistic-regression
// prior over the spectral and labeler features. The coefficients are an
// initial rule-based prior, not a fit model.
type Engine struct {
	ReviewThreshold float64
	BlockThreshold  float64
	ModelVersion    string

	B0, B1, B2, B3, B4, B5, B6 float64
}

// NewEngine returns the default fusion engine: review/block thresholds of
// 0.35/0.65 and the baseline coefficient prior.
func NewEngine() *Engine {
	return &Engine{
		ReviewThreshold: 0.35,
		BlockThreshold:  0.65,
		ModelVersion:    "fusion_v1",
		B0:              -0.8,
		B1:              0.9,
		B2:              0.7,
		B3:              1.1,
		B4:              1.0,
		B5:              0.9,
		B6:              0.4,
	}
}

// Fuse combines features (optionally calibrated against historical
// quantiles) into a fused Output.
func (e *Engine) Fuse(features FeatureVector, quantiles *model.FeatureQuantiles) Output {
	graphSignal := calibrateNonnegativeFeature(
		features.LambdaGraph,
		quantile(quantiles, func(q *model.FeatureQuantiles) float64 { return q.EigenGraphP50 }),
		quantile(quantiles, func(q *model.FeatureQuantiles) float64 { return q.EigenGraphP90 }),
	)
	ctxSignal := calibrateNonnegativeFeature(
		features.LambdaCtx,
		quantile(quantiles, func(q *model.FeatureQuantiles) float64 { return q.EigenCtxP50 }),
		quantile(quantiles, func(q *model.FeatureQuantiles) float64 { return q.EigenCtxP90 }),
	)

	linear := e.B0 +
		(e.B1 * graphSignal) +
		(e.B2 * ctxSignal) +
		(e.B3 * features.SeverityMean) +
		(e.B4 * features.TargetednessMean) -
		(e.B5 * features.ReclaimedRate) +
		(e.B6 * features.TrendVelocity)
	score := sigmoid(linear)

	sampleStrength := math.Min(1.0, float64(features.SampleSize)/20.0)
	confidence := 0.45 + (0.25 * math.Abs((score-0.5)*2.0)) + (0.2 * sampleStrength)
	confidence -= 0.1 * features.ReclaimedRate
	confidence = clamp(confidence, 0, 1)

	var band model.Band
	switch {
	case score >= e.BlockThreshold:
		band = model.BandBlock
	case score >= e.ReviewThreshold:
		band = model.BandReview
	default:
		band = model.BandMonitor
	}

	return Output{
		Score:        clamp(score, 0, 1),
		Confidence:   confidence,
		Band:         band,
		LinearValue:  linear,
		ModelVersion: e.ModelVersion,
	}
}

// TunedBandThresholds blends the engine's default thresholds with recent
// score quantiles once there is enough history, widening or tightening the
// review/block boundary to the population actually being scored.
func TunedBandThresholds(defaultReview, defaultBlock float64, quantiles *model.FeatureQuantiles, minSamples int) (review, block float64) {
	if quantiles == nil || int(quantiles.SampleCount) < minSamples {
		return defaultReview, defaultBlock
	}

	review = clamp((0.7*defaultReview)+(0.3*quantiles.ScoreP70), 0.2, 0.75)
	blockCandidate := (0.7 * defaultBlock) + (0.3 * quantiles.ScoreP90)
	minBlock := review + 0.08
	block = clamp(math.Max(blockCandidate, minBlock), minBlock, 0.95)
	return review, block
}

// ScoreBand maps a fused score to its disposition under the given
// (possibly tuned) thresholds.
func ScoreBand(score, reviewThreshold, blockThreshold float64) model.Band {
	switch {
	case score >= blockThreshold:
		return model.BandBlock
	case score >= reviewThreshold:
		return model.BandReview
	default:
		return model.BandMonitor
	}
}
