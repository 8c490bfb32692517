// Package query implements the Query Driver (spec §4.6, C7): it
// resolves a query's list indices against a database of posting
// lists, optionally caches the range-end index each list needs for the
// 512-wide kernel, dispatches to a chosen scan variant, and returns the
// emitted hit set.
package query

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nkurz/scancount/internal/errors"
	"github.com/nkurz/scancount/internal/logging"
	"github.com/nkurz/scancount/internal/metrics"
	"github.com/nkurz/scancount/internal/simd"
)

// Variant names a scan kernel the driver can dispatch to.
type Variant string

const (
	VariantScalar    Variant = "scalar"
	VariantAVX2      Variant = "avx2"
	VariantAVX512    Variant = "avx512"
	VariantReference Variant = "reference"
	// VariantAuto picks avx512 -> avx2 -> scalar based on the detected
	// CPU, mirroring simd.GetImplementation().
	VariantAuto Variant = "auto"
)

// Database is an immutable collection of posting lists a query
// resolves indices against. Lists are borrowed: the driver never
// mutates them.
type Database struct {
	lists []simd.List

	mu        sync.Mutex
	rangeEnds []simd.RangeEnds // lazily built, shared across queries
	rangeR    int

	logger *zap.Logger
}

// NewDatabase wraps lists as a queryable database. Logging defaults to
// a discard logger; callers that want structured per-query logs (as
// the CLI does) should call SetLogger.
func NewDatabase(lists []simd.List) *Database {
	return &Database{lists: lists, logger: logging.DiscardLogger()}
}

// SetLogger attaches a structured logger the driver uses to emit a
// debug-level record for every resolved query (list count, threshold,
// variant, hit count).
func (d *Database) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = logging.DiscardLogger()
	}
	d.logger = logger
}

// Len returns the number of lists in the database.
func (d *Database) Len() int {
	return len(d.lists)
}

// Query is a non-empty sequence of list indices into a Database. Each
// index must be < db.Len().
type Query []int

// resolve validates q against db and returns the borrowed list
// references it names, failing with InvalidQueryRef on any
// out-of-range index.
func (d *Database) resolve(q Query, operation string) ([]simd.List, error) {
	lists := make([]simd.List, len(q))
	for i, idx := range q {
		if idx < 0 || idx >= d.Len() {
			return nil, errors.InvalidQueryRef(operation, idx, d.Len())
		}
		lists[i] = d.lists[idx]
	}
	return lists, nil
}

// rangeEndsFor builds (once) and returns the range-end index for every
// list in the database at tile size r, amortizing the cost across every
// query that uses the 512-wide variant.
func (d *Database) rangeEndsFor(r int) ([]simd.RangeEnds, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rangeEnds != nil && d.rangeR == r {
		return d.rangeEnds, nil
	}
	all, err := simd.BuildAll(d.lists, r)
	if err != nil {
		return nil, err
	}
	d.rangeEnds = all
	d.rangeR = r
	return all, nil
}

// Run resolves q against db, dispatches to variant (or the
// CPU-detected best variant for VariantAuto), and returns the emitted
// hit set.
func (d *Database) Run(q Query, threshold int, variant Variant) ([]uint32, error) {
	const operation = "Query.Run"

	if len(q) == 0 {
		metrics.QueriesProcessedTotal.WithLabelValues("empty").Inc()
		return nil, nil
	}

	lists, err := d.resolve(q, operation)
	if err != nil {
		metrics.QueriesProcessedTotal.WithLabelValues("invalid_ref").Inc()
		if scanErr, ok := err.(*errors.ScanError); ok {
			logging.LogScanError(d.logger, "query resolution failed", scanErr)
		}
		return nil, err
	}

	resolved := variant
	if resolved == VariantAuto {
		resolved = Variant(simd.GetImplementation())
	}

	timer := metrics.ScanDuration.WithLabelValues(string(resolved))
	start := time.Now()
	defer func() { timer.Observe(time.Since(start).Seconds()) }()

	var hits []uint32
	switch resolved {
	case VariantReference:
		hits = simd.ScanReference(lists, threshold)
	case VariantAVX2:
		hits = simd.ScanBlocked256(lists, threshold)
	case VariantAVX512:
		ends, rerr := d.rangeEndsFor(simd.TileSize512)
		if rerr != nil {
			metrics.QueriesProcessedTotal.WithLabelValues("error").Inc()
			if scanErr, ok := rerr.(*errors.ScanError); ok {
				logging.LogScanError(d.logger, "range-end index build failed", scanErr)
			}
			return nil, rerr
		}
		subsetEnds, rerr := subsetRangeEnds(q, ends)
		if rerr != nil {
			metrics.QueriesProcessedTotal.WithLabelValues("error").Inc()
			if scanErr, ok := rerr.(*errors.ScanError); ok {
				logging.LogScanError(d.logger, "range-end subset failed", scanErr)
			}
			return nil, rerr
		}
		hits, err = simd.ScanBlocked512(simd.TileSize512, lists, subsetEnds, threshold)
		if err != nil {
			metrics.QueriesProcessedTotal.WithLabelValues("error").Inc()
			if scanErr, ok := err.(*errors.ScanError); ok {
				logging.LogScanError(d.logger, "avx512 scan failed", scanErr)
			}
			return nil, err
		}
	default:
		hits = simd.ScanBlocked(lists, threshold)
	}

	metrics.SimdDispatchTotal.WithLabelValues(string(resolved)).Inc()
	metrics.HitsEmittedTotal.WithLabelValues(string(resolved)).Add(float64(len(hits)))
	metrics.QueriesProcessedTotal.WithLabelValues("ok").Inc()
	d.logger.Debug("query resolved",
		zap.Int("lists", len(q)),
		zap.Int("threshold", threshold),
		zap.String("variant", string(resolved)),
		zap.Int("hits", len(hits)),
	)
	return hits, nil
}

// subsetRangeEnds projects the database's full range-end table down to
// just the lists q names, preserving q's order (and any repeats — spec
// §8 property 5 requires a list named k times to contribute k range-end
// entries too).
func subsetRangeEnds(q Query, all []simd.RangeEnds) ([]simd.RangeEnds, error) {
	out := make([]simd.RangeEnds, len(q))
	for i, idx := range q {
		if idx < 0 || idx >= len(all) {
			return nil, errors.InvalidQueryRef("subsetRangeEnds", idx, len(all))
		}
		out[i] = all[idx]
	}
	return out, nil
}
