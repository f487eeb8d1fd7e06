package mathutil

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	bitsInFloat = 32
	mantBits    = 23
	expBits     = bitsInFloat - mantBits - 1

	expMask  = 1<<expBits - 1
	mantMask = 1<<mantBits - 1
	bias     = 1<<(expBits-1) - 1

	// MinExp is the exponent of the smallest positive subnormal float32.
	MinExp = -bias - mantBits + 1
	// MinNormalExp is the exponent of the smallest positive normal float32.
	MinNormalExp = 1 - bias
	// MaxExp is the exponent of the largest power of two representable as float32.
	MaxExp = bias
)

// Pow2 returns 2^p as a float32.
// The result is exact for MinExp <= p <= MaxExp, 0 below that range and +Inf above it.
func Pow2(p int) float32 {
	switch {
	case p > MaxExp:
		return float32(math.Inf(1))
	case p >= MinNormalExp:
		return math.Float32frombits(uint32(p+bias) << mantBits)
	case p >= MinExp:
		return math.Float32frombits(1 << uint(p-MinExp))
	default:
		return 0
	}
}

// StepDown returns the float32 that lies n representable values below f.
// f must be positive and finite, and n must not exceed the bit pattern of f.
// For such values, decrementing the raw bits moves to the next smaller float,
// crossing from normal into subnormal numbers without gaps.
func StepDown(f float32, n uint32) float32 {
	return math.Float32frombits(math.Float32bits(f) - n)
}

// Steps returns the number of representable float32 values in (a, b].
// Both values must be non-negative and a <= b.
func Steps(a, b float32) uint32 {
	return math.Float32bits(b) - math.Float32bits(a)
}

func split(f float32) (mant uint32, exp int) {
	bits := math.Float32bits(f)
	mant = bits & mantMask
	e := int(bits >> mantBits & expMask)
	if e == 0 { // subnormal
		return mant, MinExp
	}
	return mant | 1<<mantBits, e - bias - mantBits
}

// ExactDecimal returns the exact decimal expansion of a finite float32.
// Every binary fraction has a finite decimal expansion: m*2^-k = m*5^k*10^-k.
func ExactDecimal(f float32) decimal.Decimal {
	if f == 0 || math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return decimal.Zero
	}
	mant, exp := split(f)
	m := new(big.Int).SetUint64(uint64(mant))
	if math.Signbit(float64(f)) {
		m.Neg(m)
	}
	if exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(exp)), 0)
	}
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(m.Mul(m, five), int32(exp))
}
