package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"lead-harmonizer/internal/common"
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/syntax"
)

// Confidence bands. Syntactic evidence sits above anything a name-only
// match can reach.
const (
	EmailConfidence          = 0.95
	PhoneConfidence          = 0.9
	PhoneWithPrefixBoost     = 0.05
	CurrencyConfidence       = 0.85
	NumericPriceConfidence   = 0.6
	DefaultMinConfidence     = 0.3
	DefaultMinPlausiblePrice = 1_000
	DefaultMaxPlausiblePrice = 5_000_000
)

// year-like integers are never read as prices.
const (
	minYearLike = 1900
	maxYearLike = 2100
)

// ErrInvalidSuggestion marks a capability reply outside the contract.
var ErrInvalidSuggestion = errors.New("invalid suggestion")

// ColumnClassifier classifies a single column. Implementations never fail;
// problems surface as unmapped results.
type ColumnClassifier interface {
	Classify(ctx context.Context, col schema.SourceColumn) schema.ClassificationResult
}

// Config holds the policy thresholds.
type Config struct {
	MinConfidence float64
	MinPrice      float64
	MaxPrice      float64
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		MinConfidence: DefaultMinConfidence,
		MinPrice:      DefaultMinPlausiblePrice,
		MaxPrice:      DefaultMaxPlausiblePrice,
	}
}

// Classifier applies the decision policy around a Capability.
type Classifier struct {
	capability Capability
	cfg        Config
	logger     *slog.Logger
}

// New returns a Classifier backed by capability. Zero config values are
// replaced by defaults; a nil logger means slog.Default().
func New(capability Capability, cfg Config, logger *slog.Logger) *Classifier {
	def := DefaultConfig()
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = def.MinConfidence
	}

	if cfg.MaxPrice <= 0 {
		cfg.MinPrice, cfg.MaxPrice = def.MinPrice, def.MaxPrice
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{capability: capability, cfg: cfg, logger: logger}
}

// Classify returns the verdict for col. It never returns an error: a failing
// capability degrades the column to unmapped with zero confidence.
func (c *Classifier) Classify(ctx context.Context, col schema.SourceColumn) schema.ClassificationResult {
	sample := strings.TrimSpace(col.Sample)

	if res, ok := c.syntactic(col, sample); ok {
		c.logger.Debug("classified by sample syntax",
			"column", col.Name, "target", res.Target, "confidence", res.Confidence)

		return res
	}

	if c.capability == nil {
		return schema.UnmappedResult(col, "classification failed: no capability configured")
	}

	sug, err := c.capability.Suggest(ctx, Input{
		Column:     col.Name,
		Translated: col.Translated,
		Sample:     sample,
	})
	if err == nil {
		sug, err = validate(sug)
	}

	if err != nil {
		c.logger.Warn("classification failed", "column", col.Name, "error", err)
		return schema.UnmappedResult(col, "classification failed: "+err.Error())
	}

	field := schema.Field(sug.TargetField)
	if field != schema.Unmapped && sug.Confidence >= c.cfg.MinConfidence {
		c.logger.Debug("classified by capability",
			"column", col.Name, "target", field, "confidence", sug.Confidence)

		return schema.ClassificationResult{
			Column:     col.Name,
			Ordinal:    col.Ordinal,
			Target:     field,
			Confidence: sug.Confidence,
			Rationale:  rationale(sug.Reasoning, "suggested by capability"),
			Status:     schema.StatusMapped,
		}
	}

	if c.plausiblePrice(sample) {
		return schema.ClassificationResult{
			Column:     col.Name,
			Ordinal:    col.Ordinal,
			Target:     schema.Price,
			Confidence: NumericPriceConfidence,
			Rationale:  fmt.Sprintf("numeric sample %q in vehicle price range", sample),
			Status:     schema.StatusMapped,
		}
	}

	if field == schema.Unmapped {
		return schema.UnmappedResult(col, rationale(sug.Reasoning, "no target field matched"))
	}

	return schema.UnmappedResult(col, fmt.Sprintf("best match %s (%.2f) below threshold %.2f",
		field, sug.Confidence, c.cfg.MinConfidence))
}

func (c *Classifier) syntactic(col schema.SourceColumn, sample string) (schema.ClassificationResult, bool) {
	res := schema.ClassificationResult{
		Column:  col.Name,
		Ordinal: col.Ordinal,
		Status:  schema.StatusMapped,
	}

	switch {
	case sample == "":
		return res, false
	case syntax.IsEmail(sample):
		res.Target = schema.CustomerEmail
		res.Confidence = EmailConfidence
		res.Rationale = fmt.Sprintf("sample %q is an email address", sample)
	case syntax.IsPhone(sample):
		res.Target = schema.CustomerPhone
		res.Confidence = PhoneConfidence
		if strings.HasPrefix(sample, "+") {
			res.Confidence += PhoneWithPrefixBoost
		}

		res.Rationale = fmt.Sprintf("sample %q is a phone number", sample)
	case syntax.HasCurrencyMarker(sample) && strings.ContainsAny(sample, "0123456789"):
		res.Target = schema.Price
		res.Confidence = CurrencyConfidence
		res.Rationale = fmt.Sprintf("sample %q carries a currency marker", sample)
	default:
		return res, false
	}

	return res, true
}

func (c *Classifier) plausiblePrice(sample string) bool {
	if !syntax.IsNumericToken(sample) {
		return false
	}

	amount, err := syntax.ParseAmount(sample)
	if err != nil {
		return false
	}

	v := amount.Value
	if v == math.Trunc(v) && common.IsInRange(minYearLike, v, maxYearLike) {
		return false
	}

	return common.IsInRange(c.cfg.MinPrice, v, c.cfg.MaxPrice)
}

// validate checks a raw suggestion against the target schema and clamps the
// confidence. Anything else is an ErrInvalidSuggestion.
func validate(sug Suggestion) (Suggestion, error) {
	field, err := schema.ParseField(sug.TargetField)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %w", ErrInvalidSuggestion, err)
	}

	if math.IsNaN(sug.Confidence) {
		return Suggestion{}, fmt.Errorf("%w: confidence is NaN", ErrInvalidSuggestion)
	}

	sug.TargetField = string(field)
	sug.Confidence = common.Clamp(0, sug.Confidence, 1)

	return sug, nil
}

func rationale(reasoning, fallback string) string {
	if s, ok := common.FirstNonBlank(reasoning); ok {
		return s
	}

	return fallback
}
