package mapping

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"lead-harmonizer/internal/diagnostic"
	"lead-harmonizer/internal/schema"
)

// Validate checks a mapping file for contradictions. Errors make the file
// unusable; warnings point at entries that will have no effect.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", diagnostic.Location{})
		return res
	}

	if mf.Version != CurrentVersion {
		res.AddError("unsupported_version",
			fmt.Sprintf("version %q is not supported (want %q)", mf.Version, CurrentVersion), diagnostic.Location{})
	}

	claimedBy := map[schema.Field]string{}

	// sorted for stable diagnostics
	for _, col := range slices.Sorted(maps.Keys(mf.Columns)) {
		value := mf.Columns[col]
		loc := diagnostic.Location{Column: col, Field: value}

		if col == "" {
			res.AddError("blank_column", "pinned column name is blank", loc)
			continue
		}

		f, err := schema.ParseField(value)
		if err != nil {
			res.AddError("unknown_field", err.Error(), loc)
			continue
		}

		if f == schema.Unmapped {
			continue
		}

		if prev, ok := claimedBy[f]; ok {
			res.AddError("duplicate_target",
				fmt.Sprintf("columns %q and %q are both pinned to %s", prev, col, f), loc)

			continue
		}

		claimedBy[f] = col

		if slices.Contains(mf.Ignore, col) {
			res.AddError("pinned_and_ignored", fmt.Sprintf("column %q is both pinned and ignored", col), loc)
		}
	}

	seen := map[string]bool{}

	for _, col := range mf.Ignore {
		loc := diagnostic.Location{Column: col}

		switch {
		case col == "":
			res.AddError("blank_column", "ignored column name is blank", loc)
		case seen[col]:
			res.AddWarning("duplicate_ignore", fmt.Sprintf("column %q is ignored twice", col), loc)
		}

		seen[col] = true
	}

	for _, e := range mf.Auto {
		if !e.Field.Valid() {
			res.AddWarning("unknown_auto_field",
				fmt.Sprintf("auto entry for %q names unknown field %q", e.Column, e.Field),
				diagnostic.Location{Column: e.Column, Field: string(e.Field)})
		}
	}

	validateRules(res, "fuel_types", mf.Rules.FuelTypes)
	validateRules(res, "lead_sources", mf.Rules.LeadSources)
	validateRules(res, "countries", mf.Rules.Countries)

	return res
}

func validateRules(res *diagnostic.Diagnostics, table string, entries map[string]string) {
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		if strings.TrimSpace(key) == "" || strings.TrimSpace(entries[key]) == "" {
			res.AddWarning("empty_rule",
				fmt.Sprintf("rules.%s entry %q -> %q has an empty side", table, key, entries[key]),
				diagnostic.Location{})
		}
	}
}
