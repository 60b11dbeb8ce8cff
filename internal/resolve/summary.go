package resolve

import "lead-harmonizer/internal/schema"

// Summary counts the outcome of a resolution.
type Summary struct {
	Mapped        int            `json:"mapped" yaml:"mapped" msgpack:"mapped"`
	Rejected      int            `json:"rejected" yaml:"rejected" msgpack:"rejected"`
	Unmapped      int            `json:"unmapped" yaml:"unmapped" msgpack:"unmapped"`
	MissingFields []schema.Field `json:"missing_fields" yaml:"missing_fields" msgpack:"missing_fields"`
	// AverageConfidence is taken over mapped columns only.
	AverageConfidence float64 `json:"average_confidence" yaml:"average_confidence" msgpack:"average_confidence"`
}

// Summarize counts mapped, rejected and unmapped columns of m.
func Summarize(m schema.ResolvedMapping) Summary {
	var (
		s   Summary
		sum float64
	)

	for _, r := range m.Results() {
		switch r.Status {
		case schema.StatusMapped:
			s.Mapped++
			sum += r.Confidence
		case schema.StatusRejected:
			s.Rejected++
		default:
			s.Unmapped++
		}
	}

	if s.Mapped > 0 {
		s.AverageConfidence = sum / float64(s.Mapped)
	}

	s.MissingFields = m.Missing()

	return s
}
