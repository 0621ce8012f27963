package rangeset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/uint128"
)

// ErrInvalidRange is returned when the lower bound of a range is bigger
// than its upper bound.
var ErrInvalidRange = errors.New("invalid range")

// Range is the inclusive interval [from, to].
type Range struct {
	from uint64
	to   uint64
	// valid separates the zero Range from the constructed [0, 0].
	valid bool
}

func RangeFrom(from, to uint64) (Range, error) {
	if from > to {
		return Range{}, fmt.Errorf("%w: from %d is bigger then to %d", ErrInvalidRange, from, to)
	}
	return Range{from: from, to: to, valid: true}, nil
}

// MustRangeFrom is like RangeFrom but panics if from > to.
func MustRangeFrom(from, to uint64) Range {
	r, err := RangeFrom(from, to)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRange parses a range in the "from-to" notation.
func ParseRange(s string) (Range, error) {
	h := strings.IndexByte(s, '-')
	if h == -1 {
		return Range{}, fmt.Errorf("no hyphen in range %q", s)
	}
	from, to := s[:h], s[h+1:]
	fromUint64, err := strconv.ParseUint(from, 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid from id %q in range %q", from, s)
	}
	toUint64, err := strconv.ParseUint(to, 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid to id %q in range %q", to, s)
	}
	return RangeFrom(fromUint64, toUint64)
}

// From returns the lower bound of r.
func (r Range) From() uint64 { return r.from }

// To returns the upper bound of r.
func (r Range) To() uint64 { return r.to }

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.from, r.to)
}

func (r Range) IsValid() bool {
	return r.valid && r.from <= r.to
}

func (r Range) IsZero() bool {
	return r == Range{}
}

// Len returns the number of integers in r. The full uint64 span holds
// 2^64 of them, hence the 128 bit result.
func (r Range) Len() uint128.Uint128 {
	if !r.IsValid() {
		return uint128.Zero
	}
	return uint128.From64(r.to - r.from).Add64(1)
}

// Less orders ranges by their lower bound, then by their upper bound.
func (r Range) Less(other Range) bool {
	if r.from != other.from {
		return r.from < other.from
	}
	return r.to < other.to
}

// Overlaps reports whether r and other share at least one integer.
// Ranges that only touch, like 1-5 and 6-10, do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.from <= other.to && other.from <= r.to
}

// Touches reports whether r and other are adjacent without overlapping.
func (r Range) Touches(other Range) bool {
	if next, overflow := myuint64(r.to).addOne(); !overflow && uint64(next) == other.from {
		return true
	}
	if prev, borrow := myuint64(r.from).subOne(); !borrow && uint64(prev) == other.to {
		return true
	}
	return false
}

// Union returns the smallest range covering both r and other. It is only
// meaningful when the two overlap.
func (r Range) Union(other Range) Range {
	return Range{
		from:  min(r.from, other.from),
		to:    max(r.to, other.to),
		valid: true,
	}
}

// Contains returns whether id lies within r.
func (r Range) Contains(id uint64) bool {
	return r.from <= id && id <= r.to
}

// EntirelyBefore returns whether r lies entirely before other.
func (r Range) EntirelyBefore(other Range) bool {
	return r.to < other.from
}

// CoveredBy returns whether r is entirely contained within other.
func (r Range) CoveredBy(other Range) bool {
	return other.from <= r.from && r.to <= other.to
}
