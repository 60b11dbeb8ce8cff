package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"lead-harmonizer/internal/match"
	"lead-harmonizer/internal/schema"
)

const (
	DefaultModel         = "gpt-4o-mini"
	DefaultTimeout       = 30 * time.Second
	DefaultRatePerSecond = 3
	DefaultBurst         = 5
	DefaultMaxTokens     = 200

	hintMinScore = 0.5
	maxHints     = 3
)

// zeroTemperature stands in for 0: go-openai tags Temperature with
// omitempty, so a literal zero never reaches the API and the server
// default of 1 applies instead.
const zeroTemperature = math.SmallestNonzeroFloat32

const systemPrompt = "You are a data mapping specialist for automotive lead data. Always respond with valid JSON only."

// OpenAIConfig configures OpenAICapability.
type OpenAIConfig struct {
	APIKey        string
	Model         string
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	MaxTokens     int
}

// OpenAICapability asks a chat completion model for a suggestion.
type OpenAICapability struct {
	client  *openai.Client
	limiter *rate.Limiter
	cfg     OpenAIConfig
	logger  *slog.Logger
}

// NewOpenAI builds the capability. The API key is required; everything else
// falls back to defaults.
func NewOpenAI(cfg OpenAIConfig, logger *slog.Logger) (*OpenAICapability, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRatePerSecond
	}

	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	if logger == nil {
		logger = slog.Default()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAICapability{
		client:  openai.NewClientWithConfig(clientCfg),
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Suggest implements Capability. One request per call, no retries.
func (o *OpenAICapability) Suggest(ctx context.Context, in Input) (Suggestion, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return Suggestion{}, fmt.Errorf("openai: rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	started := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(in)},
		},
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: zeroTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Suggestion{}, errors.New("openai: response has no choices")
	}

	content := resp.Choices[0].Message.Content
	o.logger.Debug("openai reply", "column", in.Column, "elapsed", time.Since(started), "content", content)

	return decodeSuggestion(content)
}

// BuildPrompt renders the user prompt for one column.
func BuildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("Map one CSV column from European car dealership lead data to a standardized schema.\n\n")
	b.WriteString("## Input\n")
	fmt.Fprintf(&b, "- Source column: %q\n", in.Column)
	fmt.Fprintf(&b, "- Translated/normalized name: %q\n", in.Translated)
	fmt.Fprintf(&b, "- Sample value: %q\n\n", in.Sample)

	if hints := nameHints(in); len(hints) > 0 {
		b.WriteString("## Header vocabulary hints\n")

		for _, c := range hints {
			fmt.Fprintf(&b, "- %s (%.2f, %s match on %q)\n", c.Field, c.Score, c.Method, c.Matched)
		}

		b.WriteString("\n")
	}

	b.WriteString("## Target schema\n")

	for i, f := range schema.Fields() {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, f, schema.Describe(f))
	}

	b.WriteString(`
## Guidelines
- Prefer the sample value over the column name when they disagree.
- For compound names (email_cliente, kunde_phone) look at the data type, not the customer marker.
- Email addresses map to customer_email, phone numbers to customer_phone.
- Currency symbols and large numbers indicate price.
- Use "unmapped" when no field fits. Lower the confidence when unsure.

Respond with JSON only:
{"target_field": "field_name", "confidence": 0.75, "reasoning": "short explanation"}`)

	return b.String()
}

// nameHints returns the strongest local vocabulary matches for the column,
// one per field, so the model sees what the offline rules would pick.
func nameHints(in Input) match.CandidateList {
	ranked := match.RankFields(in.Column)
	if in.Translated != "" && in.Translated != in.Column {
		ranked = append(ranked, match.RankFields(in.Translated)...)
		sort.Stable(ranked)
	}

	var hints match.CandidateList

	for _, c := range ranked.AboveThreshold(hintMinScore) {
		if !slices.ContainsFunc(hints, func(h match.Candidate) bool { return h.Field == c.Field }) {
			hints = append(hints, c)
		}
	}

	return hints.Top(maxHints)
}

// wireSuggestion accepts a confidence sent as number or string.
type wireSuggestion struct {
	TargetField *string         `json:"target_field"`
	Confidence  json.RawMessage `json:"confidence"`
	Reasoning   string          `json:"reasoning"`
}

func decodeSuggestion(content string) (Suggestion, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var w wireSuggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &w); err != nil {
		return Suggestion{}, fmt.Errorf("%w: decode reply: %w", ErrInvalidSuggestion, err)
	}

	if w.TargetField == nil || len(w.Confidence) == 0 {
		return Suggestion{}, fmt.Errorf("%w: reply lacks target_field or confidence", ErrInvalidSuggestion)
	}

	raw := strings.Trim(string(w.Confidence), `"`)

	conf, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: confidence %s: %w", ErrInvalidSuggestion, w.Confidence, err)
	}

	return Suggestion{
		TargetField: *w.TargetField,
		Confidence:  conf,
		Reasoning:   w.Reasoning,
	}, nil
}
