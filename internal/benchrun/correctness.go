package benchrun

import (
	"fmt"
	"sort"

	"github.com/nkurz/scancount/internal/errors"
	"github.com/nkurz/scancount/internal/query"
	"github.com/nkurz/scancount/internal/simd"
)

// RunCorrectnessCheck reproduces counters.cpp's test() helper: for
// every query it runs the oracle once, then every available blocked
// variant, and raises before any benchmarking proceeds if a variant's
// hit set (compared as a set, per spec §8 property 1) disagrees with
// the oracle's.
func RunCorrectnessCheck(lists []simd.List, queries []query.Query, threshold int) error {
	const operation = "benchrun.RunCorrectnessCheck"

	db := query.NewDatabase(lists)
	for qi, q := range queries {
		want, err := db.Run(q, threshold, query.VariantReference)
		if err != nil {
			return errors.Wrap(err, errors.KindValidation, operation, "oracle run failed")
		}
		wantSet := toSortedSet(want)

		for _, variant := range simdVariantsAvailable {
			got, err := db.Run(q, threshold, variant)
			if err != nil {
				return errors.Wrap(err, errors.KindValidation, operation, "variant run failed").
					WithContext("variant", string(variant)).WithContext("query", qi)
			}
			gotSet := toSortedSet(got)
			if !equalSets(wantSet, gotSet) {
				return errors.New(errors.KindValidation, operation,
					fmt.Sprintf("bug: variant %s disagrees with oracle on query %d (oracle=%d hits, got=%d hits)",
						variant, qi, len(wantSet), len(gotSet))).
					WithContext("variant", string(variant)).WithContext("query", qi)
			}
		}
	}
	return nil
}

func toSortedSet(ids []uint32) []uint32 {
	out := append([]uint32(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalSets(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
