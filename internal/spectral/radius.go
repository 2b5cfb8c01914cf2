package spectral

import (
	"math"
	"sort"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/textutil"
)

const (
	egoHops    = 2
	egoMaxNode = 128
)

// egoNodes returns the sorted hop-bounded neighborhood of center in graph,
// including center itself. Expansion visits nodes in sorted order at each
// hop so that truncation at egoMaxNode is deterministic regardless of map
// iteration order.
func egoNodes(graph map[string]map[string]float64, center string) []string {
	if _, ok := graph[center]; !ok {
		return nil
	}

	visited := map[string]bool{center: true}
	frontier := []string{center}

	for hop := 0; hop < egoHops; hop++ {
		var nextFrontier []string
		sorted := append([]string(nil), frontier...)
		sort.Strings(sorted)

		for _, node := range sorted {
			neighbors := sortedKeys(graph[node])
			for _, neighbor := range neighbors {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				nextFrontier = append(nextFrontier, neighbor)
				if len(visited) >= egoMaxNode {
					return sortedSet(visited)
				}
			}
		}
		if len(nextFrontier) == 0 {
			break
		}
		frontier = nextFrontier
	}
	return sortedSet(visited)
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// idfWeight returns the inverse-document-frequency weight for a token given
// the graph's per-token document frequency and total context count.
func idfWeight(token string, tokenDocFreq map[string]int, contextCount int) float64 {
	if contextCount <= 0 {
		return 1.0
	}
	df := tokenDocFreq[token]
	return 1.0 + math.Log((float64(contextCount)+1.0)/(float64(df)+1.0))
}

// nonTrivialNormalizedSpectralSignal builds the symmetric, degree-normalized
// adjacency over nodes, and returns the non-trivial spectral signal: the
// largest-magnitude eigenvalue after excluding the Perron eigenvalue (the
// largest signed eigenvalue of the normalized adjacency), damped by how much
// of the ego subgraph was actually explored.
func nonTrivialNormalizedSpectralSignal(nodes []string, graph map[string]map[string]float64) float64 {
	n := len(nodes)
	index := make(map[string]int, n)
	for i, node := range nodes {
		index[node] = i
	}

	adjacency := make([][]float64, n)
	for i := range adjacency {
		adjacency[i] = make([]float64, n)
	}
	for _, nodeA := range nodes {
		row := index[nodeA]
		for nodeB, weight := range graph[nodeA] {
			col, ok := index[nodeB]
			if !ok {
				continue
			}
			adjacency[row][col] = weight
		}
	}

	symmetric := make([][]float64, n)
	degrees := make([]float64, n)
	for i := range symmetric {
		symmetric[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			symmetric[i][j] = (adjacency[i][j] + adjacency[j][i]) / 2.0
			degrees[i] += symmetric[i][j]
		}
	}

	anyPositive := false
	for _, d := range degrees {
		if d > 0 {
			anyPositive = true
			break
		}
	}
	if !anyPositive {
		return 0
	}

	invSqrt := make([]float64, n)
	for i, d := range degrees {
		if d > 0 {
			invSqrt[i] = 1.0 / math.Sqrt(d)
		}
	}

	normalized := make([][]float64, n)
	for i := range normalized {
		normalized[i] = make([]float64, n)
		for j := range normalized[i] {
			normalized[i][j] = symmetric[i][j] * invSqrt[i] * invSqrt[j]
		}
	}

	eigenvalues := symmetricEigenvalues(normalized)
	if len(eigenvalues) <= 1 {
		return 0
	}
	sort.Float64s(eigenvalues)

	nonTrivial := 0.0
	for _, v := range eigenvalues[:len(eigenvalues)-1] {
		if math.Abs(v) > nonTrivial {
			nonTrivial = math.Abs(v)
		}
	}

	coverage := 1.0 - math.Exp(-float64(len(nodes)-1)/3.0)
	signal := nonTrivial * coverage
	if signal < 0 {
		return 0
	}
	return signal
}

// TermGraphSpectralRadius computes the IDF-weighted average, across the
// term's constituent tokens, of the non-trivial normalized spectral signal
// of each token's ego subgraph within graph (spec.md §4.5).
func TermGraphSpectralRadius(term string, graph *CooccurrenceGraph) float64 {
	targets := textutil.Tokenize(textutil.NormalizeTerm(term))
	if len(targets) == 0 {
		return 0
	}

	var weightedRadius, weightTotal float64
	for _, target := range targets {
		nodes := egoNodes(graph.Adjacency, target)
		if len(nodes) < 2 {
			continue
		}

		signal := nonTrivialNormalizedSpectralSignal(nodes, graph.Adjacency)
		if signal <= 0 {
			continue
		}

		weight := idfWeight(target, graph.TokenDocumentFreq, graph.ContextCount)
		weightedRadius += signal * weight
		weightTotal += weight
	}

	if weightTotal == 0 {
		return 0
	}
	return weightedRadius / weightTotal
}
