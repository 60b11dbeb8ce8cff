package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-harmonizer/internal/schema"
)

type chatRequest struct {
	Model       string   `json:"model"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

func chatServer(t *testing.T, content string, seen *chatRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}

		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}

		reply := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestOpenAICapability_Suggest(t *testing.T) {
	var seen chatRequest

	srv := chatServer(t, `{"target_field": "price", "confidence": "0.9", "reasoning": "prezzo means price"}`, &seen)

	capability, err := NewOpenAI(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"}, nil)
	require.NoError(t, err)

	sug, err := capability.Suggest(context.Background(), Input{Column: "prezzo", Translated: "price", Sample: "32000"})
	require.NoError(t, err)

	assert.Equal(t, "price", sug.TargetField)
	assert.InDelta(t, 0.9, sug.Confidence, 1e-9)
	assert.Equal(t, "prezzo means price", sug.Reasoning)

	assert.Equal(t, DefaultModel, seen.Model)
	assert.Equal(t, DefaultMaxTokens, seen.MaxTokens)
	assert.Equal(t, "json_object", seen.ResponseFormat.Type)
	require.NotNil(t, seen.Temperature, "temperature must be sent")
	assert.InDelta(t, 0, *seen.Temperature, 1e-6)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Contains(t, seen.Messages[1].Content, `Source column: "prezzo"`)
}

func TestOpenAICapability_ServerErrorDegradesColumn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"message": "upstream exploded", "type": "server_error"}}`)
	}))
	t.Cleanup(srv.Close)

	capability, err := NewOpenAI(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"}, nil)
	require.NoError(t, err)

	res := New(capability, DefaultConfig(), nil).Classify(context.Background(), column("marca", "Ferrari"))

	assert.Equal(t, schema.StatusUnmapped, res.Status)
	assert.Zero(t, res.Confidence)
	assert.Contains(t, res.Rationale, "classification failed: openai:")
}

func TestOpenAICapability_MalformedReplyDegradesColumn(t *testing.T) {
	srv := chatServer(t, "I think this is the brand.", nil)

	capability, err := NewOpenAI(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"}, nil)
	require.NoError(t, err)

	res := New(capability, DefaultConfig(), nil).Classify(context.Background(), column("marca", "Ferrari"))

	assert.Equal(t, schema.StatusUnmapped, res.Status)
	assert.Contains(t, res.Rationale, "invalid suggestion")
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{}, nil)
	assert.Error(t, err)
}

func TestDecodeSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Suggestion
		wantErr bool
	}{
		{
			name:    "plain",
			content: `{"target_field":"year","confidence":0.7,"reasoning":"anno"}`,
			want:    Suggestion{TargetField: "year", Confidence: 0.7, Reasoning: "anno"},
		},
		{
			name:    "fenced with string confidence",
			content: "```json\n{\"target_field\":\"country\",\"confidence\":\" 0.65 \"}\n```",
			want:    Suggestion{TargetField: "country", Confidence: 0.65},
		},
		{name: "missing confidence", content: `{"target_field":"year"}`, wantErr: true},
		{name: "missing field", content: `{"confidence":0.4}`, wantErr: true},
		{name: "word confidence", content: `{"target_field":"year","confidence":"high"}`, wantErr: true},
		{name: "not json", content: `year`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSuggestion(tt.content)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSuggestion)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt_ListsEveryField(t *testing.T) {
	prompt := BuildPrompt(Input{Column: "kraftstoff", Translated: "fuel", Sample: "Benzin"})

	for _, f := range schema.Fields() {
		assert.Contains(t, prompt, string(f))
	}

	assert.Contains(t, prompt, `Sample value: "Benzin"`)
	assert.Contains(t, prompt, "## Header vocabulary hints\n- fuel_type (1.00")
}

func TestBuildPrompt_NoHintsForUnknownHeader(t *testing.T) {
	prompt := BuildPrompt(Input{Column: "xyz", Translated: "xyz", Sample: "42"})

	assert.NotContains(t, prompt, "Header vocabulary hints")
}
