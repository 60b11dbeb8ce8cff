package classify

import (
	"context"
	"sync"

	"lead-harmonizer/internal/schema"
)

// ClassifyAll classifies every column. With more than one worker the calls
// run concurrently; the result slice is always in column order.
func ClassifyAll(ctx context.Context, c ColumnClassifier, cols []schema.SourceColumn, workers int) []schema.ClassificationResult {
	results := make([]schema.ClassificationResult, len(cols))

	if workers <= 1 || len(cols) <= 1 {
		for i, col := range cols {
			results[i] = c.Classify(ctx, col)
		}

		return results
	}

	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for i, col := range cols {
		wg.Add(1)

		go func() {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = c.Classify(ctx, col)
		}()
	}

	wg.Wait()

	return results
}
