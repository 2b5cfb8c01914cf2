// Package labeler provides the pluggable per-context judgment step: given a
// term and a context it appeared in, estimate how targeted and severe the
// usage was. HeuristicLabeler is a cheap cue-word rule set; RemoteLabeler
// defers to an LLM and falls back to the heuristic on any upstream failure.
package labeler

import (
	"context"
	"strings"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/textutil"
)

// Labeler judges a term's usage across a batch of contexts.
type Labeler interface {
	LabelBatch(ctx context.Context, term string, contexts []string, locale string) ([]model.ContextLabel, error)
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// HeuristicLabeler scores context usage with a fixed set of cue words. It
// requires no network access and is always available as a fallback.
type HeuristicLabeler struct {
	SecondPersonCues []string
	AggressionCues   []string
	ReclaimCues      []string
}

// NewHeuristicLabeler returns the default cue-word labeler.
func NewHeuristicLabeler() *HeuristicLabeler {
	return &HeuristicLabeler{
		SecondPersonCues: []string{" you ", " your ", " yourself ", "@"},
		AggressionCues:   []string{"hate", "kill", "attack", "destroy", "worthless", "disgusting", "stupid", "filthy"},
		ReclaimCues:      []string{"we", "our", "ours", "us", "reclaim", "reclaimed"},
	}
}

// LabelContext scores a single context. locale is reserved for
// locale-specific rule variants and currently unused.
func (h *HeuristicLabeler) LabelContext(term, context string, locale string) model.ContextLabel {
	_ = locale
	termNorm := textutil.NormalizeTerm(term)
	text := " " + strings.ToLower(context) + " "

	isQuoted := strings.Contains(text, `"`+termNorm+`"`) || strings.Contains(text, "'"+termNorm+"'")

	targetedHits := 0
	for _, cue := range h.SecondPersonCues {
		if strings.Contains(text, cue) {
			targetedHits++
		}
	}
	aggressionHits := 0
	for _, cue := range h.AggressionCues {
		if strings.Contains(text, cue) {
			aggressionHits++
		}
	}
	reclaimHits := 0
	for _, cue := range h.ReclaimCues {
		if strings.Contains(text, " "+cue+" ") {
			reclaimHits++
		}
	}

	targetedness := 0.2 + (0.25 * float64(targetedHits))
	if strings.Contains(text, "they") || strings.Contains(text, "those people") {
		targetedness += 0.15
	}
	if isQuoted {
		targetedness *= 0.75
	}

	severity := 0.15 + (0.17 * float64(aggressionHits))
	if strings.Contains(context, "!") {
		severity += 0.05
	}
	if isQuoted {
		severity *= 0.65
	}

	reclaimed := reclaimHits >= 2 && strings.Contains(text, termNorm)
	if reclaimed {
		severity *= 0.55
		targetedness *= 0.8
	}

	confidence := 0.58 + min(0.25, 0.04*float64(targetedHits+aggressionHits))
	if isQuoted && targetedHits == 0 {
		confidence -= 0.08
	}

	return model.ContextLabel{
		Targetedness:  clamp01(targetedness),
		Severity:      clamp01(severity),
		Reclaimed:     reclaimed,
		IsQuoted:      isQuoted,
		Confidence:    clamp01(confidence),
		RationaleCode: "heuristic_v1",
	}
}

// LabelBatch scores every context independently.
func (h *HeuristicLabeler) LabelBatch(_ context.Context, term string, contexts []string, locale string) ([]model.ContextLabel, error) {
	labels := make([]model.ContextLabel, len(contexts))
	for i, text := range contexts {
		labels[i] = h.LabelContext(term, text, locale)
	}
	return labels, nil
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
