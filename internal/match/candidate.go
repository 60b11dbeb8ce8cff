package match

import (
	"fmt"
	"sort"

	"lead-harmonizer/internal/schema"
)

// Method records how a candidate score was obtained.
type Method string

const (
	MethodExact     Method = "exact"
	MethodToken     Method = "token"
	MethodQualifier Method = "qualifier"
	MethodFuzzy     Method = "fuzzy"
)

// Scores assigned per match method. Fuzzy scores are the Levenshtein
// similarity multiplied by fuzzyWeight.
const (
	exactScore     = 1.0
	tokenScore     = 0.85
	qualifierScore = 0.55
	extraTokenStep = 0.1
	multiTokenCap  = 0.95
	fuzzyWeight    = 0.7
	fuzzyMinSim    = 0.75
	fuzzyMinRunes  = 5
)

// Candidate represents a potential mapping from a source header to a target field.
type Candidate struct {
	Field schema.Field
	Score float64 // similarity in [0,1]

	// Metadata for debugging/explanation
	Method           Method
	Matched          string // vocabulary entry that produced the score
	NormalizedHeader string
}

// Explain renders a one-line explanation of the candidate.
func (c Candidate) Explain() string {
	return fmt.Sprintf("name match %q -> %s (score: %.2f, %s %q)",
		c.NormalizedHeader, c.Field, c.Score, c.Method, c.Matched)
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankFields scores header against every target field and returns the
// candidates with a positive score, sorted by score (descending).
func RankFields(header string) CandidateList {
	tokens := Tokenize(header)
	joined := NormalizeHeader(header)

	var candidates CandidateList

	for _, f := range schema.Fields() {
		c := scoreField(f, joined, tokens)
		if c.Score <= 0 {
			continue
		}

		c.NormalizedHeader = joined
		candidates = append(candidates, c)
	}

	sort.Sort(candidates)

	return candidates
}

func scoreField(f schema.Field, joined string, tokens []string) Candidate {
	best := Candidate{Field: f}

	consider := func(score float64, method Method, matched string) {
		if score > best.Score {
			best.Score = score
			best.Method = method
			best.Matched = matched
		}
	}

	vocab := append([]string{NormalizeHeader(string(f))}, headerAliases[f]...)
	qualifiers := headerQualifiers[f]

	if joined == "" {
		return best
	}

	// Whole-header equality wins outright.
	for _, term := range append(append([]string{}, vocab...), qualifiers...) {
		if joined == term {
			consider(exactScore, MethodExact, term)
			return best
		}
	}

	// Token hits. Several tokens pointing at the same field reinforce each other.
	hits := 0

	for _, tok := range tokens {
		switch {
		case containsTerm(vocab, tok):
			hits++

			consider(tokenScore, MethodToken, tok)
		case containsTerm(qualifiers, tok):
			hits++

			consider(qualifierScore, MethodQualifier, tok)
		}
	}

	if hits > 1 {
		best.Score = min(best.Score+extraTokenStep*float64(hits-1), multiTokenCap)
	}

	// Fuzzy similarity catches typos ("prezo", "kraftstof").
	for _, tok := range append([]string{joined}, tokens...) {
		if len([]rune(tok)) < fuzzyMinRunes {
			continue
		}

		for _, term := range vocab {
			sim := LevenshteinNormalized(tok, term)
			if sim < fuzzyMinSim {
				continue
			}

			consider(sim*fuzzyWeight, MethodFuzzy, term)
		}
	}

	return best
}

func containsTerm(terms []string, tok string) bool {
	for _, t := range terms {
		if t == tok {
			return true
		}
	}

	return false
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by schema order for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Field.Index() < c[j].Field.Index()
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < threshold
}

// AboveThreshold returns candidates with a score at or above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// DefaultAmbiguityThreshold is the score difference that marks two
// candidates as ambiguous.
const DefaultAmbiguityThreshold = 0.1
