// Copyright 2020 Aleksandr Demakin. All rights reserved.

package normz

import (
	"github.com/avdva/normz/internal/mathutil"
)

// Wide layout bounds. The layout is fixed and spans 127 octaves:
//
//	| upper | middle | lower |
//	|-------|--------|-------|
//	|  32   |   64   |  31   |
const (
	WideUpperStart  = MaxCSSZ - Mantissa*32 + 1
	WideUpperEnd    = MaxCSSZ
	WideMiddleStart = -Mantissa * 32
	WideMiddleEnd   = Mantissa*32 - 1
	WideLowerStart  = -MaxCSSZ
	WideLowerEnd    = -MaxCSSZ + Mantissa*31

	// NumOfSupportedWideZ is the number of z-indexes supported by the wide layout.
	NumOfSupportedWideZ = Mantissa*127 + 1
)

type wideRange struct {
	r Range
	// expOffset is the exponent of the octave, where the range ends.
	expOffset int
}

var (
	wideLayout = [...]wideRange{
		{Range{WideUpperStart, WideUpperEnd}, 0},
		{Range{WideMiddleStart, WideMiddleEnd}, 32},
		{Range{WideLowerStart, WideLowerEnd}, 96},
	}
)

// WideRanges returns lower, middle, and upper ranges of the wide layout.
func WideRanges() []Range {
	return []Range{wideLayout[2].r, wideLayout[1].r, wideLayout[0].r}
}

// NormalizeWide normalizes z using the wide layout.
// It supports 2^23*127+1 values instead of 2^23*3+1, but most of the results
// are tiny numbers, which may lose their order after any arithmetic.
// Returns false if z is not supported.
func NormalizeWide(z int32) (float32, bool) {
	if z == WideLowerStart {
		return 0, true
	}
	for _, wr := range wideLayout {
		if !wr.r.Contains(z) {
			continue
		}
		d := int64(wr.r.End) - int64(z)
		quo, rem := d/Mantissa, d%Mantissa
		return mathutil.StepDown(mathutil.Pow2(-int(quo)-wr.expOffset), uint32(rem)), true
	}
	return 0, false
}
