package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCooccurrenceGraphRejectsSmallWindow(t *testing.T) {
	_, err := BuildCooccurrenceGraph([]string{"a b c"}, GraphOptions{WindowSize: 1, MinTokenLength: 2})
	assert.ErrorIs(t, err, ErrWindowTooSmall)
}

func TestBuildCooccurrenceGraphEmptyContexts(t *testing.T) {
	graph, err := BuildCooccurrenceGraph(nil, NewGraphOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, graph.ContextCount)
	assert.Empty(t, graph.Adjacency)
}

func TestBuildCooccurrenceGraphLinksNearbyTokens(t *testing.T) {
	contexts := []string{
		"hostile rhetoric targets immigrant workers daily",
		"hostile rhetoric escalates against immigrant families",
		"hostile commentary singles out immigrant neighborhoods",
	}
	graph, err := BuildCooccurrenceGraph(contexts, NewGraphOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, graph.ContextCount)
	require.Contains(t, graph.Adjacency, "hostile")
	require.Contains(t, graph.Adjacency["hostile"], "immigrant")
	assert.Greater(t, graph.Adjacency["hostile"]["immigrant"], 0.0)

	assert.Equal(t, graph.Adjacency["hostile"]["immigrant"], graph.Adjacency["immigrant"]["hostile"])
}

func TestBuildCooccurrenceGraphFiltersStopwordsAndShortTokens(t *testing.T) {
	contexts := []string{"the a an of it is to"}
	graph, err := BuildCooccurrenceGraph(contexts, NewGraphOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, graph.ContextCount)
}

func TestBuildCooccurrenceGraphIgnoresSelfPairs(t *testing.T) {
	contexts := []string{"repeat repeat repeat token token"}
	graph, err := BuildCooccurrenceGraph(contexts, NewGraphOptions())
	require.NoError(t, err)
	assert.NotContains(t, graph.Adjacency["repeat"], "repeat")
}
