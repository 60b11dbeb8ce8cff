package mapping

import (
	"slices"

	"lead-harmonizer/internal/schema"
)

// ExportSuggestions turns a resolved mapping into a mapping file whose auto
// section lists the mapped columns and whose unresolved section lists the
// rest, both in column order.
func ExportSuggestions(m schema.ResolvedMapping) *MappingFile {
	mf := &MappingFile{Version: CurrentVersion}

	for _, r := range m.Results() {
		entry := AutoEntry{
			Column:    r.Column,
			Status:    r.Status,
			Rationale: r.Rationale,
		}

		if r.Status != schema.StatusMapped {
			if r.Target.Valid() {
				entry.Field = r.Target
				entry.Confidence = r.Confidence
			}

			mf.Unresolved = append(mf.Unresolved, entry)

			continue
		}

		entry.Field = r.Target
		entry.Confidence = r.Confidence
		mf.Auto = append(mf.Auto, entry)
	}

	return mf
}

// Promote pins every auto entry that is not already pinned or ignored.
func (mf *MappingFile) Promote() {
	if mf.Columns == nil {
		mf.Columns = make(map[string]string, len(mf.Auto))
	}

	for _, e := range mf.Auto {
		if _, pinned := mf.Columns[e.Column]; pinned || slices.Contains(mf.Ignore, e.Column) {
			continue
		}

		mf.Columns[e.Column] = string(e.Field)
	}

	mf.Auto = nil
}
