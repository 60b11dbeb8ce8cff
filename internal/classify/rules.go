package classify

import (
	"context"
	"fmt"

	"lead-harmonizer/internal/match"
	"lead-harmonizer/internal/schema"
)

// nameOnlyWeight scales header similarity into confidence so that a match on
// the name alone stays below the syntactic evidence band.
const nameOnlyWeight = 0.8

// RuleCapability suggests fields from the multilingual header vocabulary.
// It is deterministic and never reaches the network.
type RuleCapability struct{}

// Suggest implements Capability.
func (RuleCapability) Suggest(ctx context.Context, in Input) (Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return Suggestion{}, err
	}

	ranked := match.RankFields(in.Column)

	if in.Translated != "" && in.Translated != in.Column {
		if alt := match.RankFields(in.Translated); alt.Best() != nil &&
			(ranked.Best() == nil || alt.Best().Score > ranked.Best().Score) {
			ranked = alt
		}
	}

	best := ranked.Best()
	if best == nil {
		return Suggestion{
			TargetField: string(schema.Unmapped),
			Reasoning:   "no header vocabulary matched",
		}, nil
	}

	reasoning := best.Explain()
	if ranked.IsAmbiguous(match.DefaultAmbiguityThreshold) {
		runnerUp := ranked.Top(2)[1]
		reasoning += fmt.Sprintf("; close to %s (%.2f)", runnerUp.Field, runnerUp.Score)
	}

	return Suggestion{
		TargetField: string(best.Field),
		Confidence:  best.Score * nameOnlyWeight,
		Reasoning:   reasoning,
	}, nil
}
