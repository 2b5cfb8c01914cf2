package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denseContexts() []string {
	return []string{
		"hostile rhetoric targets immigrant workers every single day",
		"hostile rhetoric escalates against immigrant families nightly",
		"hostile commentary singles out immigrant neighborhoods constantly",
		"hostile voices attack immigrant communities without pause",
		"hostile crowds confront immigrant shopkeepers downtown",
	}
}

func TestTermGraphSpectralRadiusEmptyTermIsZero(t *testing.T) {
	graph, err := BuildCooccurrenceGraph(denseContexts(), NewGraphOptions())
	require.NoError(t, err)
	assert.Zero(t, TermGraphSpectralRadius("   ", graph))
}

func TestTermGraphSpectralRadiusUnknownTermIsZero(t *testing.T) {
	graph, err := BuildCooccurrenceGraph(denseContexts(), NewGraphOptions())
	require.NoError(t, err)
	assert.Zero(t, TermGraphSpectralRadius("xenozorp", graph))
}

func TestTermGraphSpectralRadiusPositiveForWellConnectedTerm(t *testing.T) {
	graph, err := BuildCooccurrenceGraph(denseContexts(), NewGraphOptions())
	require.NoError(t, err)
	radius := TermGraphSpectralRadius("immigrant", graph)
	assert.Greater(t, radius, 0.0)
}

func TestEgoNodesDeterministicUnderCap(t *testing.T) {
	graph, err := BuildCooccurrenceGraph(denseContexts(), NewGraphOptions())
	require.NoError(t, err)

	first := egoNodes(graph.Adjacency, "immigrant")
	second := egoNodes(graph.Adjacency, "immigrant")
	assert.Equal(t, first, second)
}

func TestEgoNodesMissingCenter(t *testing.T) {
	graph, err := BuildCooccurrenceGraph(denseContexts(), NewGraphOptions())
	require.NoError(t, err)
	assert.Nil(t, egoNodes(graph.Adjacency, "absent"))
}
