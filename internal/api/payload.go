package api

import (
	"lead-harmonizer/internal/diagnostic"
	"lead-harmonizer/internal/lang"
	"lead-harmonizer/internal/pipeline"
	"lead-harmonizer/internal/resolve"
	"lead-harmonizer/internal/schema"
)

// ReportPayload is the wire form of a pipeline report.
type ReportPayload struct {
	RunID    string                `json:"run_id" msgpack:"run_id"`
	Encoding string                `json:"encoding" msgpack:"encoding"`
	Language lang.Detection        `json:"language" msgpack:"language"`
	Columns  []schema.SourceColumn `json:"columns" msgpack:"columns"`
	// Languages maps each column name to its detected language.
	Languages map[string]string             `json:"languages" msgpack:"languages"`
	Mapping   []schema.ClassificationResult `json:"mapping" msgpack:"mapping"`
	// Sources maps each mapped target field to its source column.
	Sources      map[string]string       `json:"sources" msgpack:"sources"`
	Missing      []string                `json:"missing_fields" msgpack:"missing_fields"`
	Summary      resolve.Summary         `json:"summary" msgpack:"summary"`
	QualityScore float64                 `json:"quality_score" msgpack:"quality_score"`
	Records      []map[string]string     `json:"records" msgpack:"records"`
	Diagnostics  *diagnostic.Diagnostics `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
}

// NewReportPayload flattens rep.
func NewReportPayload(rep *pipeline.Report) ReportPayload {
	p := ReportPayload{
		RunID:        rep.RunID,
		Encoding:     rep.Encoding,
		Language:     rep.Language,
		Columns:      rep.Columns,
		Languages:    rep.Languages(),
		Mapping:      rep.Results(),
		Sources:      make(map[string]string),
		Missing:      make([]string, 0),
		Summary:      rep.Summary,
		QualityScore: rep.QualityScore,
		Records:      make([]map[string]string, 0, len(rep.Records)),
		Diagnostics:  rep.Diagnostics,
	}

	for f, col := range rep.Mapping.Sources() {
		p.Sources[string(f)] = col
	}

	for _, f := range rep.Mapping.Missing() {
		p.Missing = append(p.Missing, string(f))
	}

	for _, r := range rep.Records {
		p.Records = append(p.Records, r.Map())
	}

	return p
}
