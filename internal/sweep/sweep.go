// Package sweep verifies normalizers by walking every supported z-index.
package sweep

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync/atomic"

	"github.com/avdva/normz"
	"github.com/avdva/normz/internal/mathutil"
	"golang.org/x/sync/errgroup"
)

const (
	// ChunkSize is the number of z-indexes checked by one job.
	ChunkSize = 1 << 20

	ctxCheckMask = 1<<16 - 1
	noPrev       = math.MinInt64
)

// Calculator maps a z-index to a float. normz.Normalizer implements it.
type Calculator interface {
	Calc(z int32) (float32, bool)
}

// CalcFunc is a function implementing Calculator.
type CalcFunc func(z int32) (float32, bool)

// Calc calls f(z).
func (f CalcFunc) Calc(z int32) (float32, bool) {
	return f(z)
}

// Violation is returned when a z-index breaks the ordering.
type Violation struct {
	Z          int64
	Prev, Curr float32
	// Supported is false, if the calculator rejected Z.
	Supported bool
}

func (v *Violation) Error() string {
	if !v.Supported {
		return fmt.Sprintf("z-index %d is not supported", v.Z)
	}
	return fmt.Sprintf("z-index %d: %v does not follow %v", v.Z, v.Curr, v.Prev)
}

// Report holds sweep results.
type Report struct {
	// Checked is the number of checked z-indexes.
	Checked int64
}

type chunk struct {
	from, to int64
	// prev is the previous checked z-index, or noPrev.
	prev int64
}

func split(ranges []normz.Range) []chunk {
	ranges = slices.Clone(ranges)
	slices.SortFunc(ranges, func(a, b normz.Range) int {
		return cmp.Compare(a.Start, b.Start)
	})
	var result []chunk
	last := int64(noPrev)
	for _, r := range ranges {
		// shared bounds are checked only once.
		from, to := max(int64(r.Start), last+1), int64(r.End)
		for ; from <= to; from += ChunkSize {
			end := min(from+ChunkSize-1, to)
			result = append(result, chunk{from: from, to: end, prev: last})
			last = end
		}
	}
	return result
}

func workersOrDefault(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

// Check verifies, that c maps every z-index from ranges into [0, 1],
// and that the values strictly increase with z-indexes.
// Ranges are checked in ascending order of their starts. A z-index,
// shared by two ranges, is checked once.
// Up to workers chunks are checked simultaneously. If workers <= 0, GOMAXPROCS is used.
// Returns a *Violation, if the order is broken.
func Check(ctx context.Context, c Calculator, ranges []normz.Range, workers int) (Report, error) {
	var checked atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workersOrDefault(workers))
	for _, ch := range split(ranges) {
		if gctx.Err() != nil {
			break
		}
		ch := ch
		g.Go(func() error {
			n, err := ch.check(gctx, c)
			checked.Add(n)
			return err
		})
	}
	err := g.Wait()
	if err == nil {
		// the loop above may stop early without any job failing.
		err = ctx.Err()
	}
	return Report{Checked: checked.Load()}, err
}

func (ch chunk) check(ctx context.Context, c Calculator) (int64, error) {
	prev := float32(-1)
	if ch.prev != noPrev {
		v, ok := c.Calc(int32(ch.prev))
		if !ok {
			return 0, &Violation{Z: ch.prev}
		}
		prev = v
	}
	for z := ch.from; z <= ch.to; z++ {
		if z&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return z - ch.from, err
			}
		}
		curr, ok := c.Calc(int32(z))
		if !ok || curr <= prev || curr < 0 || curr > 1 {
			return z - ch.from, &Violation{Z: z, Prev: prev, Curr: curr, Supported: ok}
		}
		prev = curr
	}
	return ch.to - ch.from + 1, nil
}

// CheckOctaves verifies, that for each octave 2^-p, where from <= p <= to,
// stepping the anchor down by one bit pattern 2^23 times produces
// strictly decreasing non-negative values.
// Returns the number of checked values.
func CheckOctaves(ctx context.Context, from, to, workers int) (int64, error) {
	if from < 0 || to < from || -to < mathutil.MinNormalExp {
		return 0, fmt.Errorf("bad octaves [%d, %d]", from, to)
	}
	var checked atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workersOrDefault(workers))
	for p := from; p <= to; p++ {
		p := p
		g.Go(func() error {
			anchor := mathutil.Pow2(-p)
			curr := anchor
			for i := uint32(1); i <= normz.Mantissa; i++ {
				if i&ctxCheckMask == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				next := mathutil.StepDown(anchor, i)
				if next >= curr || curr <= 0 || curr > 1 {
					return fmt.Errorf("octave 2^-%d, step %d: %v does not follow %v", p, i, next, curr)
				}
				curr = next
			}
			checked.Add(normz.Mantissa)
			return nil
		})
	}
	err := g.Wait()
	return checked.Load(), err
}
