package labeler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/prompts"
)

func newTestRemoteLabeler(t *testing.T, handler http.HandlerFunc) *RemoteLabeler {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	return &RemoteLabeler{
		client:   client,
		model:    "test-model",
		prompts:  prompts.Load(),
		fallback: NewHeuristicLabeler(),
		log:      logrus.New(),
	}
}

func chatCompletionJSON(content string) string {
	payload := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
	body, _ := json.Marshal(payload)
	return string(body)
}

func TestRemoteLabelerParsesWellFormedResponses(t *testing.T) {
	calls := 0
	labeler := newTestRemoteLabeler(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var inner string
		if calls == 1 {
			inner = `{"is_targeted":true,"target_type":"individual","is_quoted":false,"is_reclaimed":false,"targetedness_0_1":0.8,"confidence_0_1":0.9}`
		} else {
			inner = `{"severity_0_1":0.7,"harm_type":"harassment","violence_signal":false,"confidence_0_1":0.85}`
		}
		fmt.Fprint(w, chatCompletionJSON(inner))
	})

	label := labeler.LabelContext(context.Background(), "term", "you are such a term", "en-US")
	assert.Equal(t, "openai_json_v1", label.RationaleCode)
	assert.InDelta(t, 0.8, label.Targetedness, 1e-9)
	assert.InDelta(t, 0.7, label.Severity, 1e-9)
	assert.InDelta(t, 0.875, label.Confidence, 1e-9)
	assert.Equal(t, 2, calls)
}

func TestRemoteLabelerFallsBackOnUpstreamError(t *testing.T) {
	labeler := newTestRemoteLabeler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"message": "boom"}}`)
	})

	label := labeler.LabelContext(context.Background(), "term", "you are such a term", "en-US")
	assert.Equal(t, "llm_fallback_heuristic_v1", label.RationaleCode)
}

func TestRemoteLabelerFallsBackOnMalformedJSON(t *testing.T) {
	labeler := newTestRemoteLabeler(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatCompletionJSON("not json"))
	})

	label := labeler.LabelContext(context.Background(), "term", "you are such a term", "en-US")
	assert.Equal(t, "llm_fallback_heuristic_v1", label.RationaleCode)
}

func TestRemoteLabelerFallsBackOnOutOfRangeField(t *testing.T) {
	calls := 0
	labeler := newTestRemoteLabeler(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var inner string
		if calls == 1 {
			inner = `{"is_targeted":true,"target_type":"individual","is_quoted":false,"is_reclaimed":false,"targetedness_0_1":1.4,"confidence_0_1":0.9}`
		} else {
			inner = `{"severity_0_1":0.7,"harm_type":"harassment","violence_signal":false,"confidence_0_1":0.85}`
		}
		fmt.Fprint(w, chatCompletionJSON(inner))
	})

	label := labeler.LabelContext(context.Background(), "term", "you are such a term", "en-US")
	assert.Equal(t, "llm_fallback_heuristic_v1", label.RationaleCode)
}

func TestRemoteLabelerBatchNeverReturnsError(t *testing.T) {
	labeler := newTestRemoteLabeler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	labels, err := labeler.LabelBatch(context.Background(), "term", []string{"a", "b"}, "en-US")
	require.NoError(t, err)
	assert.Len(t, labels, 2)
}

func TestNewRemoteLabelerBuildsClient(t *testing.T) {
	labeler := NewRemoteLabeler("key", "gpt-4o-mini", 5*time.Second, prompts.Load(), logrus.New())
	assert.NotNil(t, labeler.client)
}
