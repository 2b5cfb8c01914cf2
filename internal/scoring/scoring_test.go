package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/apierr"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/fusion"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/labeler"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/repository"
)

type fakeRepository struct {
	savedScores   []model.TermScoreResponse
	savedFeedback []model.FeedbackRequest
	quantiles     *model.FeatureQuantiles
	history       []model.TermScoreHistoryItem
	failQuantiles bool
}

func (f *fakeRepository) SaveTermScore(ctx context.Context, score model.TermScoreResponse) (int64, error) {
	f.savedScores = append(f.savedScores, score)
	return int64(len(f.savedScores)), nil
}

func (f *fakeRepository) GetFeatureQuantiles(ctx context.Context, sampleLimit, minSamples int) (*model.FeatureQuantiles, error) {
	if f.failQuantiles {
		return nil, errors.New("boom")
	}
	return f.quantiles, nil
}

func (f *fakeRepository) GetTermHistory(ctx context.Context, term string, limit int) ([]model.TermScoreHistoryItem, error) {
	return f.history, nil
}

func (f *fakeRepository) SaveFeedback(ctx context.Context, feedback model.FeedbackRequest) (int64, error) {
	f.savedFeedback = append(f.savedFeedback, feedback)
	return int64(len(f.savedFeedback)), nil
}

func newTestService(storage repository.ScoreRepository) *Service {
	return &Service{
		EmbeddingDim: 64,
		Labeler:      labeler.NewHeuristicLabeler(),
		FusionEngine: fusion.NewEngine(),
		Storage:      storage,
	}
}

func TestScoreTermRequiresAtLeastOneContext(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.ScoreTerm(context.Background(), "term", nil, "en-US", 0, false)
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.InvalidArgument, apiErr.Kind)
}

func TestScoreTermWarnsWhenTermMissingFromContext(t *testing.T) {
	svc := newTestService(nil)
	result, err := svc.ScoreTerm(context.Background(), "alpha", []string{"completely unrelated sentence"}, "en-US", 0, false)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings)
}

func TestScoreTermNoWarningWhenTermPresent(t *testing.T) {
	svc := newTestService(nil)
	result, err := svc.ScoreTerm(context.Background(), "slur", []string{
		"you are such a slur and I hate you",
		"slur is used against immigrant workers daily",
		"the slur was shouted at the crowd of immigrants",
	}, "en-US", 0, false)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
	assert.Equal(t, "slur", result.Term)
}

func TestScoreTermPersistsWhenRequested(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)
	_, err := svc.ScoreTerm(context.Background(), "slur", []string{"a slur was used here"}, "en-US", 0, true)
	require.NoError(t, err)
	assert.Len(t, repo.savedScores, 1)
}

func TestScoreTermDoesNotPersistWhenNotRequested(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)
	_, err := svc.ScoreTerm(context.Background(), "slur", []string{"a slur was used here"}, "en-US", 0, false)
	require.NoError(t, err)
	assert.Empty(t, repo.savedScores)
}

func TestScoreTermPropagatesQuantileFailureAsServiceUnavailable(t *testing.T) {
	repo := &fakeRepository{failQuantiles: true}
	svc := newTestService(repo)
	_, err := svc.ScoreTerm(context.Background(), "slur", []string{"a slur was used here"}, "en-US", 0, false)
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.ServiceUnavailable, apiErr.Kind)
}

func TestScoreTextFindsOnlyPresentCandidates(t *testing.T) {
	svc := newTestService(nil)
	result, err := svc.ScoreText(context.Background(), "The slur was shouted at workers. Nothing else happened here.", []string{"slur", "absent"}, "en-US", false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TermsFound)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "slur", result.Results[0].Term)
}

func TestScoreTextDeduplicatesCandidates(t *testing.T) {
	svc := newTestService(nil)
	result, err := svc.ScoreText(context.Background(), "The slur appeared twice, slur slur.", []string{"slur", "SLUR", " slur "}, "en-US", false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TermsFound)
}

func TestGetTermHistoryWithoutStorageReturnsEmpty(t *testing.T) {
	svc := newTestService(nil)
	history, err := svc.GetTermHistory(context.Background(), "slur", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, history.Count)
}

func TestGetTermHistoryWithStorage(t *testing.T) {
	repo := &fakeRepository{history: []model.TermScoreHistoryItem{{ID: 1, Term: "slur"}}}
	svc := newTestService(repo)
	history, err := svc.GetTermHistory(context.Background(), "slur", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, history.Count)
}

func TestSubmitFeedbackFailsWithoutStorage(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.SubmitFeedback(context.Background(), model.FeedbackRequest{Term: "slur", FeedbackType: model.FeedbackFalsePositive})
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.ServiceUnavailable, apiErr.Kind)
}

func TestSubmitFeedbackPersists(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)
	resp, err := svc.SubmitFeedback(context.Background(), model.FeedbackRequest{Term: "slur", FeedbackType: model.FeedbackFalsePositive})
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)
	assert.Len(t, repo.savedFeedback, 1)
}
