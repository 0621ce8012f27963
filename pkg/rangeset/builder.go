package rangeset

import (
	"errors"
	"fmt"
	"sort"
)

// RangeSetBuilder collects ranges in any order, overlapping or not. The
// zero value is ready to use. Call RangeSet to obtain the consolidated,
// immutable set.
type RangeSetBuilder struct {
	in   []Range
	errs error
}

func NewRangeSetBuilder(capacity int) *RangeSetBuilder {
	return &RangeSetBuilder{in: make([]Range, 0, capacity)}
}

// Add appends the inclusive range [from, to].
func (s *RangeSetBuilder) Add(from, to uint64) error {
	r, err := RangeFrom(from, to)
	if err != nil {
		s.errs = errors.Join(s.errs, err)
		return err
	}
	s.in = append(s.in, r)
	return nil
}

func (s *RangeSetBuilder) AddRange(r Range) {
	if !r.IsValid() {
		s.errs = errors.Join(s.errs, fmt.Errorf("addRange(%v-%v): %w", r.From(), r.To(), ErrInvalidRange))
		return
	}
	s.in = append(s.in, r)
}

// AddSet adds all ranges in b to s.
func (s *RangeSetBuilder) AddSet(b *RangeSet) {
	if b == nil {
		return
	}
	s.in = append(s.in, b.rr...)
}

// Len returns the number of raw ranges added so far.
func (s *RangeSetBuilder) Len() int { return len(s.in) }

// RangeSet consolidates the collected ranges. Invalid ranges rejected on
// the way are reported through the error, the returned set is usable
// either way. The builder keeps its ranges and can be extended and
// consolidated again.
func (s *RangeSetBuilder) RangeSet() (*RangeSet, error) {
	set := &RangeSet{rr: mergeRanges(s.in)}
	if s.errs == nil {
		return set, nil
	}
	errs := s.errs
	s.errs = nil
	return set, errs
}

// mergeRanges returns the sorted set of pairwise disjoint ranges covering
// rr. rr itself is left untouched.
func mergeRanges(rr []Range) []Range {
	switch len(rr) {
	case 0:
		return nil
	case 1:
		return []Range{rr[0]}
	}

	sorted := make([]Range, len(rr))
	copy(sorted, rr)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := make([]Range, 1, len(sorted))
	out[0] = sorted[0]
	for _, r := range sorted[1:] {
		// prev stays the merge target until a range no longer overlaps
		// it, so a widened prev is rechecked against every later range.
		prev := &out[len(out)-1]
		switch {
		case prev.Overlaps(r):
			// Partial overlap or r entirely contained in prev.
			//
			//   prev
			// f------t
			//     f-----t
			//        r
			*prev = prev.Union(r)
		default:
			// No shared integer, touching ranges included.
			//
			//   prev     r
			// f------tf-----t
			out = append(out, r)
		}
	}
	return out
}
