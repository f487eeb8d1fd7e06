// Copyright 2020 Aleksandr Demakin. All rights reserved.

package normz

import (
	"fmt"
	"slices"
)

const (
	lower = iota
	middle
	upper
	numRanges
)

var (
	rangeNames = [numRanges]string{"lower", "middle", "upper"}

	defaultRanges = [numRanges]Range{
		{RangeLowerStart, RangeLowerEnd},
		{RangeMiddleStart, RangeMiddleEnd},
		{RangeUpperStart, RangeUpperEnd},
	}

	defaultPartition = NewBuilder().MustBuild()
)

// Partition is a validated set of lower, middle, and upper ranges
// together with the step table used by Normalizer.
// A Partition is never modified after it is built, so it can be shared between goroutines.
// The zero Partition is treated as DefaultPartition() by New.
type Partition struct {
	ranges [numRanges]Range
	// offsets are the ordinals of the first z-index of each range.
	offsets [numRanges]int64
	// divisors are the number of ordinals mapped to each octave.
	divisors    [numRanges]int64
	first, last int32
	total       int64
}

// DefaultPartition returns the partition built from the default ranges.
func DefaultPartition() Partition {
	return defaultPartition
}

// Lower returns the lower range.
func (p Partition) Lower() Range {
	return p.ranges[lower]
}

// Middle returns the middle range.
func (p Partition) Middle() Range {
	return p.ranges[middle]
}

// Upper returns the upper range.
func (p Partition) Upper() Range {
	return p.ranges[upper]
}

// Ranges returns lower, middle, and upper ranges.
func (p Partition) Ranges() []Range {
	return p.ranges[:]
}

// First returns the smallest supported z-index. It is mapped to 0.0.
func (p Partition) First() int32 {
	return p.first
}

// Last returns the largest supported z-index. It is mapped to 1.0.
func (p Partition) Last() int32 {
	return p.last
}

// Len returns the total number of z-indexes in all three ranges.
func (p Partition) Len() int64 {
	return p.total
}

func (p Partition) isZero() bool {
	return p.total == 0
}

// Builder creates partitions from custom ranges.
// A range, which was not set, is replaced with the corresponding default range.
// Builder is a value, every With* call returns an updated copy.
type Builder struct {
	ranges [numRanges]Range
	set    [numRanges]bool
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// WithLower sets the lower range.
func (b Builder) WithLower(r Range) Builder {
	return b.with(lower, r)
}

// WithMiddle sets the middle range.
func (b Builder) WithMiddle(r Range) Builder {
	return b.with(middle, r)
}

// WithUpper sets the upper range.
func (b Builder) WithUpper(r Range) Builder {
	return b.with(upper, r)
}

func (b Builder) with(idx int, r Range) Builder {
	b.ranges[idx] = r
	b.set[idx] = true
	return b
}

// Build validates the ranges and returns a partition.
//
// The ranges are not taken as labeled. All six bounds are sorted,
// and the sorted values are assigned pairwise to lower, middle, and upper ranges.
// So, [0, 100], [101, 200], [201, 300] will produce the same partition
// regardless of which of them was passed as lower, middle, or upper,
// and overlapping ranges are split by their sorted bounds.
//
// Returns ErrBadRange if any of re-assigned ranges has start >= end,
// and ErrTooManyZ if the ranges contain more than NumOfSupportedZ values.
func (b Builder) Build() (Partition, error) {
	var bounds []int32
	for i, r := range b.ranges {
		if !b.set[i] {
			r = defaultRanges[i]
		}
		bounds = append(bounds, r.Start, r.End)
	}
	slices.Sort(bounds)

	var p Partition
	for i := range p.ranges {
		r, err := NewRange(bounds[2*i], bounds[2*i+1])
		if err != nil {
			return Partition{}, fmt.Errorf("%s range: %w", rangeNames[i], err)
		}
		p.ranges[i] = r
	}

	p.first, p.last = p.ranges[lower].Start, p.ranges[upper].End
	for i, r := range p.ranges {
		p.first = min(p.first, r.Start)
		p.last = max(p.last, r.End)
		p.offsets[i] = p.total
		p.total += r.Len()
	}
	if p.total > NumOfSupportedZ {
		return Partition{}, fmt.Errorf("%w: the maximum number of supported z-indexes is %d; the current number is %d",
			ErrTooManyZ, NumOfSupportedZ, p.total)
	}

	// the remainder goes to the upper octave, so that divisors sum to the total.
	div := p.total / numRanges
	p.divisors = [numRanges]int64{div, div, p.total - 2*div}
	return p, nil
}

// MustBuild is like Build, but panics on error.
func (b Builder) MustBuild() Partition {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
