package labeler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/model"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/prompts"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/textutil"
)

// usageClassification mirrors the JSON contract the usage prompt enforces.
type usageClassification struct {
	IsTargeted       bool    `json:"is_targeted"`
	TargetType       string  `json:"target_type"`
	IsQuoted         bool    `json:"is_quoted"`
	IsReclaimed      bool    `json:"is_reclaimed"`
	Targetedness01   float64 `json:"targetedness_0_1"`
	Confidence01     float64 `json:"confidence_0_1"`
}

// severityClassification mirrors the JSON contract the severity prompt
// enforces.
type severityClassification struct {
	Severity01     float64 `json:"severity_0_1"`
	HarmType       string  `json:"harm_type"`
	ViolenceSignal bool    `json:"violence_signal"`
	Confidence01   float64 `json:"confidence_0_1"`
}

const severityPolicyRubric = "0.0-0.2 neutral, 0.2-0.5 ambiguous insult, 0.5-0.8 targeted abuse, 0.8-1.0 violent hate."

// RemoteLabeler defers usage and severity judgments to a JSON-mode chat
// completion model, falling back to a heuristic labeler whenever the
// upstream call fails or returns something that does not parse into the
// expected schema. Fallback is internal: RemoteLabeler.LabelBatch never
// returns an error on account of the upstream failing.
type RemoteLabeler struct {
	client   *openai.Client
	model    string
	prompts  prompts.Set
	fallback *HeuristicLabeler
	log      *logrus.Logger
}

// NewRemoteLabeler builds a RemoteLabeler backed by an OpenAI-compatible
// chat completions API.
func NewRemoteLabeler(apiKey, modelName string, timeout time.Duration, promptSet prompts.Set, log *logrus.Logger) *RemoteLabeler {
	config := openai.DefaultConfig(apiKey)
	config.HTTPClient.Timeout = timeout

	return &RemoteLabeler{
		client:   openai.NewClientWithConfig(config),
		model:    modelName,
		prompts:  promptSet,
		fallback: NewHeuristicLabeler(),
		log:      log,
	}
}

func (r *RemoteLabeler) runJSONPrompt(ctx context.Context, systemPrompt string, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(body)},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("labeler: LLM returned an empty response")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// LabelContext runs the two-prompt (usage, severity) classification for one
// context, falling back to the heuristic labeler on any failure.
func (r *RemoteLabeler) LabelContext(ctx context.Context, term, text, locale string) model.ContextLabel {
	normalized := textutil.NormalizeTerm(term)
	sharedPayload := map[string]any{
		"term":                normalized,
		"sentence":            text,
		"surrounding_context": text,
		"locale":              locale,
	}

	usage, severity, err := r.classify(ctx, sharedPayload)
	if err != nil {
		r.log.WithError(err).WithField("term", normalized).Warn("labeler: falling back to heuristic after upstream failure")
		fallback := r.fallback.LabelContext(normalized, text, locale)
		return model.ContextLabel{
			Targetedness:  fallback.Targetedness,
			Severity:      fallback.Severity,
			Reclaimed:     fallback.Reclaimed,
			IsQuoted:      fallback.IsQuoted,
			Confidence:    fallback.Confidence,
			RationaleCode: "llm_fallback_heuristic_v1",
		}
	}

	confidence := clamp01((usage.Confidence01 + severity.Confidence01) / 2.0)
	return model.ContextLabel{
		Targetedness:  usage.Targetedness01,
		Severity:      severity.Severity01,
		Reclaimed:     usage.IsReclaimed,
		IsQuoted:      usage.IsQuoted,
		Confidence:    confidence,
		RationaleCode: "openai_json_v1",
	}
}

func (r *RemoteLabeler) classify(ctx context.Context, sharedPayload map[string]any) (usageClassification, severityClassification, error) {
	var usage usageClassification
	var severity severityClassification

	usagePayload, err := r.runJSONPrompt(ctx, r.prompts.Usage, sharedPayload)
	if err != nil {
		return usage, severity, err
	}
	if err := remarshal(usagePayload, &usage); err != nil {
		return usage, severity, err
	}

	severityPayload := map[string]any{"policy_rubric": severityPolicyRubric}
	for k, v := range sharedPayload {
		severityPayload[k] = v
	}
	severityResult, err := r.runJSONPrompt(ctx, r.prompts.Severity, severityPayload)
	if err != nil {
		return usage, severity, err
	}
	if err := remarshal(severityResult, &severity); err != nil {
		return usage, severity, err
	}

	if usage.Targetedness01 < 0 || usage.Targetedness01 > 1 || severity.Severity01 < 0 || severity.Severity01 > 1 {
		return usage, severity, errors.New("labeler: LLM response field out of [0,1] range")
	}
	return usage, severity, nil
}

func remarshal(src map[string]any, dst any) error {
	body, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// LabelBatch scores every context, falling back per-context on upstream
// failure. The returned error is always nil: failures are absorbed into the
// fallback rationale code instead of propagating.
func (r *RemoteLabeler) LabelBatch(ctx context.Context, term string, contexts []string, locale string) ([]model.ContextLabel, error) {
	labels := make([]model.ContextLabel, len(contexts))
	for i, text := range contexts {
		labels[i] = r.LabelContext(ctx, term, text, locale)
	}
	return labels, nil
}
