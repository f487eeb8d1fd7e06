// Copyright 2020 Aleksandr Demakin. All rights reserved.

package normz

import (
	"fmt"
)

// Range is a closed interval of z-indexes, both Start and End are included.
// Literals skip the start < end check of NewRange. Builder.Build checks
// the ranges again after sorting their bounds.
type Range struct {
	Start, End int32
}

// NewRange returns a range [start, end].
// Returns an error if start >= end.
func NewRange(start, end int32) (Range, error) {
	if start >= end {
		return Range{}, fmt.Errorf("%w: start %d must be less than end %d", ErrBadRange, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// MustRange returns a range [start, end]. It panics if start >= end.
func MustRange(start, end int32) Range {
	r, err := NewRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of z-indexes in the range.
func (r Range) Len() int64 {
	return int64(r.End) - int64(r.Start) + 1
}

// Contains returns true if z is inside the range.
func (r Range) Contains(z int32) bool {
	return r.Start <= z && z <= r.End
}

// String returns the range as [start, end].
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}
