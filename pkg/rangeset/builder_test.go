package rangeset

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
)

func rangesOf(bounds ...uint64) []Range {
	rr := make([]Range, 0, len(bounds)/2)
	for i := 0; i+1 < len(bounds); i += 2 {
		rr = append(rr, MustRangeFrom(bounds[i], bounds[i+1]))
	}
	return rr
}

func build(t *testing.T, rr []Range) *RangeSet {
	t.Helper()
	var b RangeSetBuilder
	for _, r := range rr {
		b.AddRange(r)
	}
	s, err := b.RangeSet()
	require.NoError(t, err)
	return s
}

func TestRangeSetConsolidate(t *testing.T) {
	cases := map[string]struct {
		in               []Range
		expected         []Range
		expectedCoverage uint64
	}{
		"Empty": {
			in:               nil,
			expected:         nil,
			expectedCoverage: 0,
		},
		"Single": {
			in:               rangesOf(4, 9),
			expected:         rangesOf(4, 9),
			expectedCoverage: 6,
		},
		"TouchingNotMerged": {
			in:               rangesOf(6, 10, 1, 5),
			expected:         rangesOf(1, 5, 6, 10),
			expectedCoverage: 10,
		},
		"OverlapMerge": {
			in:               rangesOf(1, 5, 3, 8, 20, 25),
			expected:         rangesOf(1, 8, 20, 25),
			expectedCoverage: 14,
		},
		"ChainedMerge": {
			in:               rangesOf(1, 3, 10, 12, 2, 11),
			expected:         rangesOf(1, 12),
			expectedCoverage: 12,
		},
		"Duplicates": {
			in:               rangesOf(4, 4, 4, 4, 4, 4),
			expected:         rangesOf(4, 4),
			expectedCoverage: 1,
		},
		"Contained": {
			in:               rangesOf(5, 6, 1, 100, 50, 200, 300, 300),
			expected:         rangesOf(1, 200, 300, 300),
			expectedCoverage: 201,
		},
		"SameFromDifferentTo": {
			in:               rangesOf(10, 30, 10, 12, 10, 20),
			expected:         rangesOf(10, 30),
			expectedCoverage: 21,
		},
		"SwallowsMany": {
			in:               rangesOf(2, 3, 5, 6, 8, 9, 0, 100, 11, 12),
			expected:         rangesOf(0, 100),
			expectedCoverage: 101,
		},
		"UpperBoundary": {
			in:               rangesOf(math.MaxUint64-1, math.MaxUint64, math.MaxUint64, math.MaxUint64),
			expected:         rangesOf(math.MaxUint64-1, math.MaxUint64),
			expectedCoverage: 2,
		},
		"FullSpanSaturates": {
			in:               rangesOf(5, 6, 0, math.MaxUint64),
			expected:         rangesOf(0, math.MaxUint64),
			expectedCoverage: math.MaxUint64,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := build(t, tc.in)
			if diff := cmp.Diff(tc.expected, s.Ranges(), cmp.AllowUnexported(Range{})); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
			assert.Equal(t, tc.expectedCoverage, s.CoverageSize())
			assert.True(t, s.Equal(s.Consolidate()), "consolidation must be idempotent")
		})
	}
}

func TestRangeSetFullSpanCoverage(t *testing.T) {
	s := build(t, rangesOf(0, math.MaxUint64))
	assert.Equal(t, uint64(0), s.Coverage().Lo)
	assert.Equal(t, uint64(1), s.Coverage().Hi)
}

func TestRangeSetBuilderInvalid(t *testing.T) {
	b := NewRangeSetBuilder(4)

	err := b.Add(10, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.NoError(t, b.Add(1, 5))
	b.AddRange(Range{})
	assert.Equal(t, 1, b.Len())

	s, err := b.RangeSet()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.Equal(t, "[1-5]", s.String())

	// errors are reported once
	_, err = b.RangeSet()
	assert.NoError(t, err)
}

func TestRangeSetBuilderReuse(t *testing.T) {
	var b RangeSetBuilder
	require.NoError(t, b.Add(1, 5))
	first, err := b.RangeSet()
	require.NoError(t, err)

	require.NoError(t, b.Add(3, 8))
	second, err := b.RangeSet()
	require.NoError(t, err)

	assert.Equal(t, "[1-5]", first.String())
	assert.Equal(t, "[1-8]", second.String())

	var c RangeSetBuilder
	c.AddSet(first)
	c.AddSet(nil)
	require.NoError(t, c.Add(6, 6))
	third, err := c.RangeSet()
	require.NoError(t, err)
	assert.Equal(t, "[1-5 6-6]", third.String())
}

func TestRangesReturnsCopy(t *testing.T) {
	s := build(t, rangesOf(1, 5, 10, 20))
	rr := s.Ranges()
	rr[0] = MustRangeFrom(100, 200)
	assert.Equal(t, "[1-5 10-20]", s.String())
}

func TestNilRangeSet(t *testing.T) {
	var s *RangeSet
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, uint64(0), s.CoverageSize())
	assert.Nil(t, s.Ranges())
	assert.Equal(t, 0, s.Consolidate().Len())
	assert.False(t, s.Index().Contains(0))
}

// TestRangeSetProperties compares consolidation against a brute force set
// over small random inputs.
func TestRangeSetProperties(t *testing.T) {
	const (
		rounds   = 200
		universe = 120
	)
	rnd := rand.New(rand.NewSource(5))

	for round := 0; round < rounds; round++ {
		n := rnd.Intn(12)
		var b RangeSetBuilder
		want := sets.New[uint64]()
		for i := 0; i < n; i++ {
			from := uint64(rnd.Intn(universe))
			to := from + uint64(rnd.Intn(15))
			require.NoError(t, b.Add(from, to))
			for id := from; id <= to; id++ {
				want.Insert(id)
			}
		}
		s, err := b.RangeSet()
		require.NoError(t, err)

		rr := s.Ranges()
		for i := 1; i < len(rr); i++ {
			require.Less(t, rr[i-1].From(), rr[i].From(), "round %d: not sorted: %s", round, s)
			require.Less(t, rr[i-1].To(), rr[i].To(), "round %d: not sorted: %s", round, s)
			for j := 0; j < i; j++ {
				require.False(t, rr[j].Overlaps(rr[i]), "round %d: %s overlaps %s", round, rr[j], rr[i])
			}
		}

		require.Equal(t, uint64(want.Len()), s.CoverageSize(), "round %d: %s", round, s)
		require.True(t, s.Equal(s.Consolidate()), "round %d", round)

		idx := s.Index()
		for id := uint64(0); id < universe+20; id++ {
			require.Equal(t, want.Has(id), idx.Contains(id), "round %d: id %d in %s", round, id, s)
		}
	}
}
