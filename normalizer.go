// Copyright 2020 Aleksandr Demakin. All rights reserved.

package normz

import (
	"github.com/avdva/normz/internal/mathutil"
)

var (
	defaultNormalizer = New(defaultPartition)
)

// Normalizer maps z-indexes of a partition to float32 values in [0.0, 1.0].
// It has no mutable state and is safe for concurrent use.
type Normalizer struct {
	p Partition
}

// New returns a normalizer for the given partition.
// The zero Partition means DefaultPartition().
func New(p Partition) Normalizer {
	if p.isZero() {
		p = defaultPartition
	}
	return Normalizer{p: p}
}

// Default returns a normalizer for the default partition.
func Default() Normalizer {
	return defaultNormalizer
}

// Partition returns normalizer's partition.
func (n Normalizer) Partition() Partition {
	return n.p
}

// Calc normalizes z to a float32 number between 0.0 and 1.0.
// First() is mapped to 0.0, Last() to 1.0.
// Returns false if z is not inside any of partition's ranges.
func (n Normalizer) Calc(z int32) (float32, bool) {
	p := &n.p
	switch z {
	case p.first:
		return 0, true
	case p.last:
		return 1, true
	}
	for i, r := range p.ranges {
		if r.Contains(z) {
			return p.value(int64(z) - int64(r.Start) + p.offsets[i]), true
		}
	}
	return 0, false
}

// value returns a float for the ordinal o in [0, total).
// Ordinals are grouped into three octaves anchored at 0.25, 0.5 and 1.0.
// Inside an octave, the last ordinal is one step below the anchor,
// the first one is divisor steps below it.
// The upper octave ends at the anchor itself, so Last() is exactly 1.0.
func (p *Partition) value(o int64) float32 {
	q := min(o/p.divisors[lower], upper)
	steps := p.divisors[q] - (o - q*p.divisors[lower])
	if q == upper {
		steps--
	}
	return mathutil.StepDown(mathutil.Pow2(int(q)-upper), uint32(steps))
}

// Normalize normalizes z using the default partition.
// Returns false if z is not supported.
func Normalize(z int32) (float32, bool) {
	return defaultNormalizer.Calc(z)
}
