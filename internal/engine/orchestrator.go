package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type sourceOutcome struct {
	name   string
	result SourceResult
}

// RunAll runs every extractor concurrently and collects one slot per name.
// A failing or panicking extractor gets an empty slot with its error text;
// siblings are never cancelled. RunAll itself never fails.
func RunAll(ctx context.Context, extractors []Extractor) FetchBatch {
	out := make(chan sourceOutcome, len(extractors))
	var wg sync.WaitGroup

	for _, ex := range extractors {
		wg.Add(1)
		go func(ex Extractor) {
			defer wg.Done()
			out <- sourceOutcome{name: ex.Name(), result: runOne(ctx, ex)}
		}(ex)
	}
	wg.Wait()
	close(out)

	batch := make(FetchBatch, len(extractors))
	for o := range out {
		batch[o.name] = o.result
	}
	return batch
}

func runOne(ctx context.Context, ex Extractor) (res SourceResult) {
	name := ex.Name()
	metrics.ExtractorRuns.Add(1)

	defer func() {
		if r := recover(); r != nil {
			metrics.ExtractorPanics.Add(1)
			metrics.ExtractorFailures.Add(1)
			slog.Error("extractor panicked", slog.String("source", name), slog.Any("panic", r))
			res = SourceResult{Items: []Item{}, Error: fmt.Sprintf("panic: %v", r)}
		}
	}()

	var items []Item
	err := TrackOperation(ctx, "extract:"+name, func(ctx context.Context) error {
		var err error
		items, err = ex.Extract(ctx)
		return err
	})
	if err != nil {
		metrics.ExtractorFailures.Add(1)
		slog.Warn("extractor failed", slog.String("source", name),
			slog.String("kind", KindOf(err).String()), slog.Any("error", err))
		return SourceResult{Items: []Item{}, Error: err.Error()}
	}
	if items == nil {
		items = []Item{}
	}
	return SourceResult{Items: items}
}
