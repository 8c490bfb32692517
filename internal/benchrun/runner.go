package benchrun

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nkurz/scancount/internal/query"
)

// ThresholdResult is one threshold's outcome from RunSyntheticSweep:
// how many hits the chosen variant emitted and how long the scan took.
type ThresholdResult struct {
	Threshold int
	Hits      int
	Elapsed   time.Duration
}

// RunSyntheticSweep runs one query (all of lists, by index) once per
// threshold in thresholds, reproducing counters.cpp's no-argument
// `for k in 1..9: demo_random(20_000_000, 50_000, 100, k)` sweep.
// Thresholds are independent queries against the same database, so
// each threshold's scan runs in its own goroutine via errgroup rather
// than sequentially.
func RunSyntheticSweep(ctx context.Context, db *query.Database, thresholds []int, variant query.Variant) ([]ThresholdResult, error) {
	q := make(query.Query, db.Len())
	for i := range q {
		q[i] = i
	}

	results := make([]ThresholdResult, len(thresholds))
	g, _ := errgroup.WithContext(ctx)
	for i, t := range thresholds {
		i, t := i, t
		g.Go(func() error {
			start := time.Now()
			hits, err := db.Run(q, t, variant)
			if err != nil {
				return err
			}
			results[i] = ThresholdResult{
				Threshold: t,
				Hits:      len(hits),
				Elapsed:   time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DefaultThresholds is the original benchmark's threshold range,
// counters.cpp's `for (unsigned k = 1; k < 10; ++k)`.
func DefaultThresholds() []int {
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
}

// simdVariantsAvailable names every variant RunCorrectnessCheck
// exercises, in the order counters.cpp's test() helper checks them.
var simdVariantsAvailable = []query.Variant{
	query.VariantScalar,
	query.VariantAVX2,
	query.VariantAVX512,
}
