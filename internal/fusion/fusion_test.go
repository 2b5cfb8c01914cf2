package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
)

func TestFuseLowSignalFeaturesStayInMonitor(t *testing.T) {
	engine := NewEngine()
	out := engine.Fuse(FeatureVector{
		LambdaGraph:      0,
		LambdaCtx:        0,
		SeverityMean:     0.1,
		TargetednessMean: 0.1,
		ReclaimedRate:    0,
		TrendVelocity:    0,
		SampleSize:       5,
	}, nil)
	assert.Equal(t, model.BandMonitor, out.Band)
	assert.GreaterOrEqual(t, out.Score, 0.0)
	assert.LessOrEqual(t, out.Score, 1.0)
}

func TestFuseHighSignalFeaturesReachBlock(t *testing.T) {
	engine := NewEngine()
	out := engine.Fuse(FeatureVector{
		LambdaGraph:      3.0,
		LambdaCtx:        3.0,
		SeverityMean:     0.95,
		TargetednessMean: 0.95,
		ReclaimedRate:    0,
		TrendVelocity:    1.0,
		SampleSize:       25,
	}, nil)
	assert.Equal(t, model.BandBlock, out.Band)
}

func TestFuseReclaimedRateLowersScore(t *testing.T) {
	engine := NewEngine()
	base := FeatureVector{
		LambdaGraph:      1.0,
		LambdaCtx:        1.0,
		SeverityMean:     0.6,
		TargetednessMean: 0.6,
		SampleSize:       15,
	}
	withoutReclaim := engine.Fuse(base, nil)
	reclaimed := base
	reclaimed.ReclaimedRate = 1.0
	withReclaim := engine.Fuse(reclaimed, nil)

	assert.Less(t, withReclaim.Score, withoutReclaim.Score)
}

func TestCalibrateNonnegativeFeatureFallsBackWithoutQuantiles(t *testing.T) {
	engine := NewEngine()
	out := engine.Fuse(FeatureVector{LambdaGraph: 1.5, LambdaCtx: 0, SampleSize: 1}, nil)
	assert.NotZero(t, out.Score)
}

func TestCalibrateNonnegativeFeatureUsesQuantilesWhenAvailable(t *testing.T) {
	engine := NewEngine()
	quantiles := &model.FeatureQuantiles{
		SampleCount:   100,
		EigenGraphP50: 0.5,
		EigenGraphP90: 1.5,
		EigenCtxP50:   0.5,
		EigenCtxP90:   1.5,
		ScoreP70:      0.4,
		ScoreP90:      0.7,
	}
	out := engine.Fuse(FeatureVector{LambdaGraph: 2.0, LambdaCtx: 2.0, SampleSize: 10}, quantiles)
	assert.GreaterOrEqual(t, out.Score, 0.0)
	assert.LessOrEqual(t, out.Score, 1.0)
}

func TestTunedBandThresholdsFallBackBelowMinSamples(t *testing.T) {
	quantiles := &model.FeatureQuantiles{SampleCount: 10, ScoreP70: 0.9, ScoreP90: 0.95}
	review, block := TunedBandThresholds(0.35, 0.65, quantiles, 80)
	assert.Equal(t, 0.35, review)
	assert.Equal(t, 0.65, block)
}

func TestTunedBandThresholdsBlendWithEnoughHistory(t *testing.T) {
	quantiles := &model.FeatureQuantiles{SampleCount: 200, ScoreP70: 0.5, ScoreP90: 0.9}
	review, block := TunedBandThresholds(0.35, 0.65, quantiles, 80)
	assert.InDelta(t, 0.395, review, 1e-9)
	assert.Greater(t, block, review+0.079)
}

func TestTunedBandThresholdsKeepsMinimumGapFromReview(t *testing.T) {
	quantiles := &model.FeatureQuantiles{SampleCount: 200, ScoreP70: 0.74, ScoreP90: 0.2}
	review, block := TunedBandThresholds(0.35, 0.65, quantiles, 80)
	assert.GreaterOrEqual(t, block, review+0.08-1e-9)
}

func TestScoreBandBoundaries(t *testing.T) {
	assert.Equal(t, model.BandMonitor, ScoreBand(0.1, 0.35, 0.65))
	assert.Equal(t, model.BandReview, ScoreBand(0.35, 0.35, 0.65))
	assert.Equal(t, model.BandBlock, ScoreBand(0.65, 0.35, 0.65))
}
