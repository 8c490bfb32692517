// Command scancount is the CLI front end for the threshold counter
// (spec §6). With --postings/--queries/--threshold it resolves every
// query in the queries file against the postings database and prints
// one hit count per query. With no arguments it runs the synthetic
// benchmark: 100 lists of 50000 random ids in [0, 20_000_000),
// deduplicated and sorted, swept across thresholds 1..9.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nkurz/scancount/internal/benchrun"
	"github.com/nkurz/scancount/internal/config"
	"github.com/nkurz/scancount/internal/logging"
	"github.com/nkurz/scancount/internal/postingfile"
	"github.com/nkurz/scancount/internal/query"
	"github.com/nkurz/scancount/internal/simd"
)

func main() {
	postingsPath := flag.String("postings", "", "path to postings file")
	queriesPath := flag.String("queries", "", "path to queries file")
	threshold := flag.Int("threshold", -1, "non-negative threshold")
	metricsAddr := flag.String("metrics", "", "address to serve Prometheus metrics on (empty keeps the configured address)")
	variant := flag.String("variant", "", "scan variant: auto, scalar, avx2, avx512, reference")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	applyFlagOverrides(&cfg, *postingsPath, *queriesPath, *threshold, *metricsAddr, *variant)
	if err := config.Validate(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info("starting metrics server", "address", cfg.MetricsAddr)
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if err := validateArgPairing(cfg.PostingsFile, cfg.QueriesFile); err != nil {
		fmt.Fprintln(os.Stderr, "usage:", err)
		os.Exit(1)
	}

	if cfg.PostingsFile == "" && cfg.QueriesFile == "" {
		if err := runSyntheticBenchmark(logger, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "exception:", err)
			os.Exit(1)
		}
		return
	}

	if err := runFileQueries(logger, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "exception:", err)
		os.Exit(1)
	}
}

// validateArgPairing rejects a partial --postings/--queries argument
// set: the original benchmark driver treats "only one of the two
// given" as a usage error rather than silently falling back to the
// no-argument synthetic-benchmark mode (counters.cpp requires both or
// neither).
func validateArgPairing(postingsFile, queriesFile string) error {
	havePostings := postingsFile != ""
	haveQueries := queriesFile != ""
	if havePostings != haveQueries {
		return fmt.Errorf("specify both --postings and --queries, or neither to run the synthetic benchmark")
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config, postings, queries string, threshold int, metricsAddr, variant string) {
	if postings != "" {
		cfg.PostingsFile = postings
	}
	if queries != "" {
		cfg.QueriesFile = queries
	}
	if threshold >= 0 {
		cfg.Threshold = threshold
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	if variant != "" {
		cfg.Variant = variant
	}
}

// mustScanLogger builds the zap logger the query driver uses for its
// per-query debug record, falling back to a discard logger if the
// configured format/level somehow fails to parse (already validated
// by config.Validate, so this should not happen in practice).
func mustScanLogger(cfg config.Config) *zap.Logger {
	logger, err := logging.NewLogger(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		return logging.DiscardLogger()
	}
	return logger
}

// runFileQueries resolves every query in cfg.QueriesFile against
// cfg.PostingsFile, running the oracle-vs-variant correctness
// self-check over the whole file before resolving anything, then
// logs one structured "query resolved" record (qid, hits) per query,
// the structured-log descendant of counters.cpp's "Qid: <n> got <k>
// hits" summary line (SPEC_FULL §4).
func runFileQueries(logger *slog.Logger, cfg config.Config) error {
	postingsFile, err := os.Open(cfg.PostingsFile)
	if err != nil {
		return fmt.Errorf("cannot open postings file %q: %w", cfg.PostingsFile, err)
	}
	defer postingsFile.Close()

	postingLists, err := postingfile.ReadAll(postingsFile)
	if err != nil {
		return fmt.Errorf("failed to decode postings file: %w", err)
	}

	queriesFile, err := os.Open(cfg.QueriesFile)
	if err != nil {
		return fmt.Errorf("cannot open queries file %q: %w", cfg.QueriesFile, err)
	}
	defer queriesFile.Close()

	queryRecords, err := postingfile.ReadAll(queriesFile)
	if err != nil {
		return fmt.Errorf("failed to decode queries file: %w", err)
	}

	lists := make([]simd.List, len(postingLists))
	for i, l := range postingLists {
		lists[i] = simd.List(l)
	}

	queries := make([]query.Query, len(queryRecords))
	for qid, rec := range queryRecords {
		q := make(query.Query, len(rec))
		for i, v := range rec {
			q[i] = int(v)
		}
		queries[qid] = q
	}

	logger.Info("running correctness self-check")
	if err := benchrun.RunCorrectnessCheck(lists, queries, cfg.Threshold); err != nil {
		return fmt.Errorf("correctness self-check failed: %w", err)
	}

	db := query.NewDatabase(lists)
	db.SetLogger(mustScanLogger(cfg))

	for qid, q := range queries {
		hits, err := db.Run(q, cfg.Threshold, query.Variant(cfg.Variant))
		if err != nil {
			return fmt.Errorf("query %d failed: %w", qid, err)
		}
		logger.Info("query resolved", "qid", qid, "hits", len(hits))
	}
	return nil
}

// runSyntheticBenchmark reproduces counters.cpp's no-argument path: a
// correctness self-check against the oracle, then a sweep across
// thresholds 1..9 (SPEC_FULL §4, supplemented feature).
func runSyntheticBenchmark(logger *slog.Logger, cfg config.Config) error {
	rng := rand.New(rand.NewSource(1))
	lists := benchrun.GenerateLists(rng, benchrun.DefaultSyntheticSpec)

	db := query.NewDatabase(lists)
	db.SetLogger(mustScanLogger(cfg))
	fullQuery := make(query.Query, db.Len())
	for i := range fullQuery {
		fullQuery[i] = i
	}

	logger.Info("running correctness self-check")
	if err := benchrun.RunCorrectnessCheck(lists, []query.Query{fullQuery}, cfg.Threshold); err != nil {
		return fmt.Errorf("correctness self-check failed: %w", err)
	}

	thresholds := benchrun.DefaultThresholds()
	results, err := benchrun.RunSyntheticSweep(context.Background(), db, thresholds, query.Variant(cfg.Variant))
	if err != nil {
		return fmt.Errorf("synthetic sweep failed: %w", err)
	}

	for _, r := range results {
		logger.Info("synthetic sweep result",
			"threshold", r.Threshold, "hits", r.Hits, "elapsed_ms", r.Elapsed.Milliseconds())
	}
	return nil
}
