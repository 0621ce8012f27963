package rangeset

import (
	"math"
	"strings"

	"lukechampine.com/uint128"
)

// RangeSet is a consolidated set of ranges. It is only produced by
// RangeSetBuilder.RangeSet and never changes afterwards.
type RangeSet struct {
	// rr is sorted ascending and pairwise disjoint. Touching ranges are
	// kept apart. Contains and the coverage methods rely on this.
	rr []Range
}

// Ranges returns a copy of the consolidated ranges.
func (s *RangeSet) Ranges() []Range {
	if s == nil || len(s.rr) == 0 {
		return nil
	}
	return append([]Range{}, s.rr...)
}

func (s *RangeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rr)
}

// Consolidate runs the consolidation again. On a RangeSet this always
// yields an identical range list.
func (s *RangeSet) Consolidate() *RangeSet {
	if s == nil {
		return &RangeSet{}
	}
	return &RangeSet{rr: mergeRanges(s.rr)}
}

// Coverage returns the exact number of distinct integers covered by s.
func (s *RangeSet) Coverage() uint128.Uint128 {
	total := uint128.Zero
	if s == nil {
		return total
	}
	for _, r := range s.rr {
		total = total.Add(r.Len())
	}
	return total
}

// CoverageSize returns the number of distinct integers covered by s. The
// only value that does not fit, 2^64 for the full span, is reported as
// math.MaxUint64.
func (s *RangeSet) CoverageSize() uint64 {
	total := s.Coverage()
	if total.Hi != 0 {
		return math.MaxUint64
	}
	return total.Lo
}

func (s *RangeSet) Index() *ContainmentIndex {
	return NewContainmentIndex(s)
}

func (s *RangeSet) Equal(other *RangeSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.rr[i] != other.rr[i] {
			return false
		}
	}
	return true
}

func (s *RangeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, r := range s.Ranges() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
