package query

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkurz/scancount/internal/errors"
	"github.com/nkurz/scancount/internal/simd"
)

func newTestDB() *Database {
	return NewDatabase([]simd.List{
		{1, 2, 3},
		{2, 3, 4},
		{3, 4, 5},
	})
}

func TestRun_EmptyQueryIsVacuous(t *testing.T) {
	db := newTestDB()
	hits, err := db.Run(nil, 0, VariantScalar)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRun_InvalidQueryRef(t *testing.T) {
	db := newTestDB()
	_, err := db.Run(Query{0, 99}, 0, VariantScalar)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidQueryRef))
}

func TestRun_SingleListIdentity(t *testing.T) {
	db := newTestDB()
	hits, err := db.Run(Query{0}, 0, VariantScalar)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{1, 2, 3}, hits)
}

func TestRun_DuplicateQueryMultiplicity(t *testing.T) {
	db := newTestDB()

	hits, err := db.Run(Query{0, 0, 0}, 1, VariantScalar)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{1, 2, 3}, hits)

	hits, err = db.Run(Query{0, 0, 0}, 3, VariantScalar)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRun_AllVariantsAgree(t *testing.T) {
	db := newTestDB()
	q := Query{0, 1, 2}

	for _, v := range []Variant{VariantScalar, VariantAVX2, VariantAVX512, VariantReference, VariantAuto} {
		hits, err := db.Run(q, 1, v)
		require.NoError(t, err, "variant %s", v)
		assert.ElementsMatch(t, []uint32{2, 3, 4}, hits, "variant %s", v)
	}
}

func TestRun_ThresholdMonotonicity(t *testing.T) {
	db := newTestDB()
	q := Query{0, 1, 2}

	hitsT1, err := db.Run(q, 1, VariantScalar)
	require.NoError(t, err)
	hitsT2, err := db.Run(q, 2, VariantScalar)
	require.NoError(t, err)

	set1 := map[uint32]bool{}
	for _, id := range hitsT1 {
		set1[id] = true
	}
	for _, id := range hitsT2 {
		assert.True(t, set1[id], "hits(t2) must be a subset of hits(t1)")
	}
}

func TestRun_AVX512RangeEndsAreCachedAcrossQueries(t *testing.T) {
	db := newTestDB()

	_, err := db.Run(Query{0, 1}, 0, VariantAVX512)
	require.NoError(t, err)
	assert.NotNil(t, db.rangeEnds)

	_, err = db.Run(Query{1, 2}, 0, VariantAVX512)
	require.NoError(t, err)
}

func TestSetLogger_NilFallsBackToDiscard(t *testing.T) {
	db := newTestDB()
	db.SetLogger(nil)
	_, err := db.Run(Query{0}, 0, VariantScalar)
	assert.NoError(t, err)
}
