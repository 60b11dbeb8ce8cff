package classify

import (
	"context"
	"errors"
	"fmt"
)

// Input is the evidence handed to a Capability.
type Input struct {
	Column     string
	Translated string
	Sample     string
}

// Suggestion is a raw capability reply. Nothing in it is trusted until the
// Classifier has validated it.
type Suggestion struct {
	TargetField string  `json:"target_field"`
	Confidence  float64 `json:"confidence"`
	Reasoning   string  `json:"reasoning"`
}

// Capability proposes a target field for one column.
type Capability interface {
	Suggest(ctx context.Context, in Input) (Suggestion, error)
}

// ErrNoSuggestion is returned by StubCapability for unknown columns.
var ErrNoSuggestion = errors.New("no suggestion for column")

// StubCapability answers from a fixed table keyed by column name.
type StubCapability map[string]Suggestion

// Suggest implements Capability.
func (s StubCapability) Suggest(ctx context.Context, in Input) (Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return Suggestion{}, err
	}

	sug, ok := s[in.Column]
	if !ok {
		return Suggestion{}, fmt.Errorf("%w %q", ErrNoSuggestion, in.Column)
	}

	return sug, nil
}

// CapabilityFunc adapts a function to the Capability interface.
type CapabilityFunc func(ctx context.Context, in Input) (Suggestion, error)

// Suggest implements Capability.
func (f CapabilityFunc) Suggest(ctx context.Context, in Input) (Suggestion, error) {
	return f(ctx, in)
}
