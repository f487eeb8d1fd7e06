package mathutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPow2(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		p    int
		bits uint32
	}{
		{0, 0x3f800000},
		{-1, 0x3f000000},
		{-2, 0x3e800000},
		{1, 0x40000000},
		{MaxExp, 0x7f000000},
		{MaxExp + 1, 0x7f800000},
		{MinNormalExp, 0x00800000},
		{MinNormalExp - 1, 0x00400000},
		{MinExp, 0x00000001},
		{MinExp - 1, 0},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.bits, math.Float32bits(Pow2(test.p)))
		})
	}
	for p := MinExp; p <= MaxExp; p++ {
		a.Equal(float32(math.Ldexp(1, p)), Pow2(p), "p=%d", p)
	}
}

func TestStepDown(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f   float32
		n   uint32
		res float32
	}{
		{1, 0, 1},
		{1, 1, math.Nextafter32(1, 0)},
		{0.5, 1, math.Nextafter32(0.5, 0)},
		{Pow2(MinNormalExp), 1, math.Float32frombits(mantMask)},
		{math.SmallestNonzeroFloat32, 1, 0},
		{1, 1 << mantBits, 0.5},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.res, StepDown(test.f, test.n))
		})
	}
}

func TestStepDownOctave(t *testing.T) {
	a := assert.New(t)
	for _, p := range []int{0, -1, -64, MinNormalExp, MinNormalExp + 1} {
		anchor, prev := Pow2(p), Pow2(p)
		for n := uint32(1); n <= 1<<mantBits; n += 4099 {
			curr := StepDown(anchor, n)
			if !a.True(curr < prev && curr > 0, "p=%d n=%d", p, n) {
				return
			}
			prev = curr
		}
	}
}

func TestSteps(t *testing.T) {
	a := assert.New(t)
	a.Equal(uint32(1<<mantBits), Steps(0.5, 1))
	a.Equal(uint32(1<<mantBits), Steps(0.25, 0.5))
	a.Equal(uint32(0), Steps(1, 1))
	a.Equal(uint32(1), Steps(0, math.SmallestNonzeroFloat32))
}

func TestExactDecimal(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f float32
		s string
	}{
		{0, "0"},
		{1, "1"},
		{0.5, "0.5"},
		{0.25, "0.25"},
		{-0.75, "-0.75"},
		{1024, "1024"},
		{0.1, "0.100000001490116119384765625"},
		{math.Nextafter32(1, 0), "0.999999940395355224609375"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.s, ExactDecimal(test.f).String())
		})
	}
	smallest := ExactDecimal(math.SmallestNonzeroFloat32)
	a.Equal(int32(MinExp), smallest.Exponent())
	a.True(smallest.IsPositive())
}
