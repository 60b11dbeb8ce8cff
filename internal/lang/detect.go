package lang

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	"lead-harmonizer/internal/match"
)

// minFreeTextRunes is the shortest text handed to trigram detection; below
// that whatlanggo guesses more than it detects.
const minFreeTextRunes = 12

var whitelist = whatlanggo.Options{
	Whitelist: map[whatlanggo.Lang]bool{
		whatlanggo.Eng: true,
		whatlanggo.Ita: true,
		whatlanggo.Spa: true,
		whatlanggo.Fra: true,
		whatlanggo.Deu: true,
		whatlanggo.Por: true,
	},
}

// Detection is the language guess for one or more texts.
type Detection struct {
	Language   string  `json:"language" yaml:"language" msgpack:"language"`
	Confidence float64 `json:"confidence" yaml:"confidence" msgpack:"confidence"`
	// Method is "glossary", "trigram" or "none".
	Method string `json:"method" yaml:"method" msgpack:"method"`
}

// Detect guesses the language shared by texts.
func Detect(texts ...string) Detection {
	votes := map[string]float64{}
	total := 0.0

	for _, text := range texts {
		for _, tok := range match.Tokenize(text) {
			g, ok := glossary[tok]
			if !ok {
				continue
			}

			share := 1.0 / float64(len(g.langs))
			for _, l := range g.langs {
				votes[l] += share
			}

			total++
		}
	}

	if total > 0 {
		best := Undetermined
		bestVotes := 0.0

		for _, l := range preference {
			if votes[l] > bestVotes {
				best, bestVotes = l, votes[l]
			}
		}

		return Detection{Language: best, Confidence: bestVotes / total, Method: "glossary"}
	}

	joined := strings.TrimSpace(strings.Join(texts, " "))
	if utf8.RuneCountInString(joined) < minFreeTextRunes {
		return Detection{Language: Undetermined, Method: "none"}
	}

	info := whatlanggo.DetectWithOptions(joined, whitelist)

	code := info.Lang.Iso6391()
	if _, ok := countryByLanguage[code]; !ok {
		return Detection{Language: Undetermined, Method: "none"}
	}

	return Detection{Language: code, Confidence: info.Confidence, Method: "trigram"}
}

// Gloss renders header as English words, keeping unknown tokens unchanged.
// "prezzo_auto" becomes "price car"; "Kraftstoff" becomes "fuel".
func Gloss(header string) string {
	tokens := match.Tokenize(header)
	if len(tokens) == 0 {
		return strings.TrimSpace(header)
	}

	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if g, ok := glossary[tok]; ok {
			out[i] = g.english
		} else {
			out[i] = tok
		}
	}

	return strings.Join(out, " ")
}
