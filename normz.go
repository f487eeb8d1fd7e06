// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package normz normalizes a CSS z-index to a float32 number between 0.0 and 1.0,
// so that a larger z-index always produces a larger float.
//
// A linear (z-min)/(max-min) mapping collapses neighbouring z-indexes into
// the same float, because float32 has only 24 bits of precision.
// Instead, supported z-indexes are mapped to consecutive float32 bit patterns
// below the powers of two 0.25, 0.5 and 1.0, so that every step of a z-index
// is a step of one representable float.
// Three octaves of 2^23 values each, plus 0.0, give NumOfSupportedZ distinct values.
//
// Supported z-indexes are described by three ranges: lower, middle and upper.
// The default ranges are:
//   - [-2147483647, -2139095040]
//   - [   -8388608,     4194303]
//   - [ 2143289343,  2147483647]
// Custom ranges are set with a Builder.
package normz

import (
	"errors"
)

const (
	// MaxCSSZ is the maximum z-index value. The minimum is -MaxCSSZ.
	MaxCSSZ = 2147483647
	// Mantissa is the number of float32 values between two adjacent powers of two.
	Mantissa = 1 << 23
	// NumOfSupportedZ is the maximum number of z-indexes a partition may contain.
	NumOfSupportedZ = Mantissa*3 + 1
)

// Default partition bounds.
const (
	RangeLowerStart  = -MaxCSSZ
	RangeLowerEnd    = -MaxCSSZ + Mantissa - 1
	RangeMiddleStart = -Mantissa
	RangeMiddleEnd   = Mantissa/2 - 1
	RangeUpperStart  = MaxCSSZ - Mantissa/2
	RangeUpperEnd    = MaxCSSZ
)

var (
	// ErrBadRange is returned for a range, whose start is not less than its end.
	ErrBadRange = errors.New("bad range")
	// ErrTooManyZ is returned if a partition contains more than NumOfSupportedZ values.
	ErrTooManyZ = errors.New("out of range")
)
