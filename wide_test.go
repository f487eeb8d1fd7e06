// Copyright 2020 Aleksandr Demakin. All rights reserved.

package normz

import (
	"fmt"
	"math"
	"testing"

	"github.com/avdva/normz/internal/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWide(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		z  int32
		f  float32
		ok bool
	}{
		{MaxCSSZ, 1, true},
		{MaxCSSZ - 1, math.Nextafter32(1, 0), true},
		{MaxCSSZ - Mantissa, 0.5, true},
		{WideMiddleEnd, mathutil.Pow2(-32), true},
		{WideLowerEnd, mathutil.Pow2(-96), true},
		{-MaxCSSZ, 0, true},
		{-MaxCSSZ + 1, math.SmallestNonzeroFloat32, true},
		{-MaxCSSZ + Mantissa, mathutil.Pow2(mathutil.MinNormalExp), true},

		{math.MinInt32, 0, false},
		{WideLowerEnd + 1, 0, false},
		{WideMiddleStart - 1, 0, false},
		{WideMiddleEnd + 1, 0, false},
		{WideUpperStart - 1, 0, false},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			f, ok := NormalizeWide(test.z)
			a.Equal(test.ok, ok)
			a.Equal(test.f, f)
		})
	}
}

func TestWideRanges(t *testing.T) {
	a := assert.New(t)
	ranges := WideRanges()
	a.Equal([]Range{
		{WideLowerStart, WideLowerEnd},
		{WideMiddleStart, WideMiddleEnd},
		{WideUpperStart, WideUpperEnd},
	}, ranges)
	var total int64
	for _, r := range ranges {
		total += r.Len()
	}
	a.Equal(int64(NumOfSupportedWideZ), total)
}

func TestNormalizeWideMonotonic(t *testing.T) {
	const (
		window = 100000
		stride = 4099
	)
	prev := float32(-1)
	for _, r := range WideRanges() {
		start, end := int64(r.Start), int64(r.End)
		for z := start; z <= end; {
			curr, ok := NormalizeWide(int32(z))
			if !ok || curr <= prev || curr > 1 {
				require.Failf(t, "bad value", "z = %d: %v (ok = %v) after %v", z, curr, ok, prev)
			}
			prev = curr
			if z < start+window || z >= end-window {
				z++
			} else {
				z = min(z+stride, end-window)
			}
		}
	}
	assert.Equal(t, float32(1), prev)
}
