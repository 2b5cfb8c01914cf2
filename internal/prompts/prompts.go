// Package prompts embeds the labeler's prompt templates so the binary has
// no runtime dependency on a prompts directory being present on disk.
package prompts

import (
	"embed"
)

//go:embed templates/*.md
var templatesFS embed.FS

// Set is the fixed collection of prompt templates the labeler draws on.
// Disambiguation and drift are loaded but not currently invoked by any
// labeler, mirroring the unused templates carried in the original service.
type Set struct {
	Usage          string
	Severity       string
	Disambiguation string
	Drift          string
}

func mustRead(name string) string {
	data, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		panic("prompts: missing embedded template " + name)
	}
	return string(data)
}

// Load returns the embedded prompt Set.
func Load() Set {
	return Set{
		Usage:          mustRead("A_usage_classification.md"),
		Severity:       mustRead("B_severity_scoring.md"),
		Disambiguation: mustRead("C_ambiguity_resolution.md"),
		Drift:          mustRead("D_drift_detection.md"),
	}
}
