package resolve

import (
	"fmt"
	"slices"

	"lead-harmonizer/internal/schema"
)

// Resolve deduplicates results. The input slice is not modified; the mapping
// lists results in column order.
func Resolve(results []schema.ClassificationResult) schema.ResolvedMapping {
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b schema.ClassificationResult) int {
		return a.Ordinal - b.Ordinal
	})

	winners := make(map[schema.Field]int, schema.FieldCount)

	for i, r := range out {
		if !claims(r) {
			continue
		}

		w, ok := winners[r.Target]
		if !ok || r.Confidence > out[w].Confidence {
			winners[r.Target] = i
		}
	}

	for i := range out {
		r := &out[i]
		if !claims(*r) {
			continue
		}

		w := winners[r.Target]
		if w == i {
			r.Status = schema.StatusMapped
			continue
		}

		r.Status = schema.StatusRejected
		r.Rationale = RejectionRationale(out[w].Column)
	}

	return schema.NewResolvedMapping(out)
}

// RejectionRationale is the rationale attached to a column that lost its
// field to winner.
func RejectionRationale(winner string) string {
	return fmt.Sprintf("field already claimed by %s at higher confidence", winner)
}

// claims reports whether r competes for a field. Rejected entries compete
// again so that resolving a resolved mapping gives the same answer.
func claims(r schema.ClassificationResult) bool {
	return r.Status != schema.StatusUnmapped && r.Target.Valid()
}
