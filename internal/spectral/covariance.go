package spectral

import (
	"math"
	"strings"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/embedding"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/textutil"
)

// covarianceViews derives the set of "views" a covariance matrix is built
// from: the contexts themselves when there are several, otherwise a set of
// sub-spans carved out of the single context (spec.md §4.3 step 1).
func covarianceViews(contexts []string) []string {
	cleaned := make([]string, 0, len(contexts))
	for _, text := range contexts {
		trimmed := strings.TrimSpace(text)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) >= 2 {
		return cleaned
	}
	if len(cleaned) == 0 {
		return nil
	}

	source := cleaned[0]
	sentences := textutil.SplitSentences(source)
	if len(sentences) >= 2 {
		return sentences
	}

	tokens := textutil.Tokenize(source)
	if len(tokens) < 2 {
		return cleaned
	}

	window := int(math.Sqrt(float64(len(tokens)))) + 1
	if window < 3 {
		window = 3
	}
	if window > 8 {
		window = 8
	}
	stride := window / 2
	if stride < 1 {
		stride = 1
	}

	seen := make(map[string]bool)
	var spans []string
	for start := 0; start < len(tokens); start += stride {
		end := start + window
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := tokens[start:end]
		if len(chunk) < 2 {
			continue
		}
		span := strings.Join(chunk, " ")
		if !seen[span] {
			seen[span] = true
			spans = append(spans, span)
		}
	}
	if len(spans) >= 2 {
		return spans
	}

	midpoint := len(tokens) / 2
	if midpoint < 1 {
		midpoint = 1
	}
	halves := []string{
		strings.Join(tokens[:midpoint], " "),
		strings.Join(tokens[midpoint:], " "),
	}
	var nonEmpty []string
	for _, half := range halves {
		if half != "" {
			nonEmpty = append(nonEmpty, half)
		}
	}
	return nonEmpty
}

// ContextCovarianceLargestEigenvalue computes the largest eigenvalue of the
// shrinkage-regularized, centered covariance of the embedded views of
// contexts (spec.md §4.3).
func ContextCovarianceLargestEigenvalue(contexts []string, dim int) float64 {
	views := covarianceViews(contexts)
	if len(views) < 2 {
		return 0
	}

	m := len(views)
	matrix := make([][]float64, m)
	for i, view := range views {
		matrix[i] = embedding.Embed(view, dim)
	}

	mean := make([]float64, dim)
	for _, row := range matrix {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(m)
	}

	centered := make([][]float64, m)
	for i, row := range matrix {
		centered[i] = make([]float64, dim)
		for j, v := range row {
			centered[i][j] = v - mean[j]
		}
	}

	// The d x d covariance is built directly rather than via the Gram (M x M)
	// shortcut: the shrinkage step below mixes in the per-dimension diagonal,
	// which does not commute with the Gram reduction, so exploiting M < dim
	// would change the result. The embedding dimension bounds validated by
	// callers (MinDim up to 2048) keep this bounded instead.
	cov := make([][]float64, dim)
	for i := range cov {
		cov[i] = make([]float64, dim)
	}
	denom := float64(m - 1)

	for a := 0; a < dim; a++ {
		for b := a; b < dim; b++ {
			var dot float64
			for i := 0; i < m; i++ {
				dot += centered[i][a] * centered[i][b]
			}
			cov[a][b] = dot / denom
			cov[b][a] = cov[a][b]
		}
	}

	shrinkage := 4.0 / float64(m+3)
	if shrinkage > 0.35 {
		shrinkage = 0.35
	}
	for i := range cov {
		for j := range cov[i] {
			if i != j {
				cov[i][j] *= 1 - shrinkage
			}
		}
	}

	largest := largestEigenvalue(cov)
	if largest < 0 {
		return 0
	}
	return largest
}
