package main

import (
	"fmt"
	"log/slog"

	"lead-harmonizer/internal/classify"
	"lead-harmonizer/internal/config"
	"lead-harmonizer/internal/mapping"
	"lead-harmonizer/internal/pipeline"
	"lead-harmonizer/internal/transform"
)

// newClassifier returns the classifier for the resolved mode.
func newClassifier(cfg *config.Config, logger *slog.Logger) (classify.ColumnClassifier, error) {
	var capability classify.Capability = classify.RuleCapability{}

	if cfg.Mode() == config.ModeOpenAI {
		oc, err := classify.NewOpenAI(cfg.OpenAIClientConfig(), logger)
		if err != nil {
			return nil, err
		}

		capability = oc
	}

	return classify.New(capability, cfg.ClassifierConfig(), logger), nil
}

// loadMapping reads and validates a mapping file. An empty path yields nil.
func loadMapping(path string, logger *slog.Logger) (*mapping.MappingFile, error) {
	if path == "" {
		return nil, nil
	}

	mf, err := mapping.LoadFile(path)
	if err != nil {
		return nil, err
	}

	diags := mapping.Validate(mf)
	for _, w := range diags.Warnings {
		logger.Warn("mapping file", "path", path, "diagnostic", w.String())
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid mapping file %s: %w", path, diags.Error())
	}

	return mf, nil
}

// newHarmonizer wires the pipeline from configuration and an optional
// mapping file.
func newHarmonizer(cfg *config.Config, mf *mapping.MappingFile, logger *slog.Logger) (*pipeline.Harmonizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := newClassifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Classifier: c,
		Workers:    cfg.Workers,
		Logger:     logger,
	}

	if mf != nil {
		opts.Pins = mf.Pins()
		opts.Transformer = transform.New(transform.DefaultRegistry(), mf.Tables())
	}

	return pipeline.New(opts)
}
