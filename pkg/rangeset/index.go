package rangeset

// ContainmentIndex answers membership queries against a consolidated
// RangeSet. It holds no mutable state and can be shared between
// goroutines.
type ContainmentIndex struct {
	rr []Range
}

func NewContainmentIndex(s *RangeSet) *ContainmentIndex {
	if s == nil {
		return &ContainmentIndex{}
	}
	// s never mutates rr, sharing the slice is safe.
	return &ContainmentIndex{rr: s.rr}
}

func (x *ContainmentIndex) Len() int { return len(x.rr) }

// Contains returns whether id lies within one of the ranges.
func (x *ContainmentIndex) Contains(id uint64) bool {
	_, ok := x.Lookup(id)
	return ok
}

// Lookup returns the range containing id.
func (x *ContainmentIndex) Lookup(id uint64) (Range, bool) {
	low, high := 0, len(x.rr)
	for low < high {
		mid := int(uint(low+high) >> 1)
		r := x.rr[mid]
		switch {
		case id < r.from:
			high = mid
		case id > r.to:
			low = mid + 1
		default:
			return r, true
		}
	}
	return Range{}, false
}
