package scale

import "math"

const (
	// DefaultTickHint is the advisory tick count used when none is given.
	DefaultTickHint = 5

	// LogEpsilon is the floor applied before taking log10 of a value.
	LogEpsilon = 1e-6

	// maxRefinements bounds the fixed-point iteration in Nice. The step only
	// ever grows, so a handful of rounds is plenty.
	maxRefinements = 8

	eps = 1e-9

	// spanEps is the relative width below which a range counts as zero.
	spanEps = 1e-12
)

// niceFactors are the mantissas a tick step may take, in ascending order.
var niceFactors = []float64{1, 2, 5, 10}

// Scale is a computed axis range with its tick spacing.
type Scale struct {
	Min      float64
	Max      float64
	Interval float64
}

// Options tunes Nice.
type Options struct {
	// ForceZero extends the range so that it includes zero.
	ForceZero bool

	// DeclaredMin and DeclaredMax pin a bound to a user-supplied value
	// instead of rounding it outward.
	DeclaredMin *float64
	DeclaredMax *float64
}

// Span returns Max - Min.
func (s Scale) Span() float64 { return s.Max - s.Min }

// TickCount returns the number of ticks Ticks will produce.
func (s Scale) TickCount() int {
	if s.Interval <= 0 {
		return 1
	}
	return int(math.Floor(s.Span()/s.Interval+eps)) + 1
}

// Ticks returns the tick values from Min to Max inclusive. Values are
// computed as Min + i*Interval rather than by repeated addition, so there
// is no accumulated drift.
func (s Scale) Ticks() []float64 {
	n := s.TickCount()
	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = clean(s.Min+float64(i)*s.Interval, s.Interval)
	}
	return ticks
}

// Decimals returns how many fractional digits are needed to print tick
// values without losing precision.
func (s Scale) Decimals() int {
	return decimalsFor(s.Interval)
}

// Nice returns bounds covering [min, max] rounded outward to multiples of a
// nice step, with roughly tickHint intervals between them.
//
// If min > max the arguments are swapped. A zero span is widened to one unit
// so the result is never degenerate: Max > Min always holds. Non-finite
// inputs are treated as zero.
func Nice(min, max float64, tickHint int, opts Options) Scale {
	min, max = finite(min), finite(max)
	if min > max {
		min, max = max, min
	}
	if tickHint <= 0 {
		tickHint = DefaultTickHint
	}
	if opts.DeclaredMin != nil {
		min = *opts.DeclaredMin
	}
	if opts.DeclaredMax != nil {
		max = *opts.DeclaredMax
	}
	if opts.ForceZero {
		if opts.DeclaredMin == nil && min > 0 {
			min = 0
		}
		if opts.DeclaredMax == nil && max < 0 {
			max = 0
		}
	}
	if max-min <= spanEps*math.Max(math.Abs(min), math.Abs(max)) {
		// Widen upward unless the top is pinned.
		if opts.DeclaredMax != nil && opts.DeclaredMin == nil {
			min = max - 1
		} else {
			max = min + 1
		}
	}

	lo, hi := min, max
	var step float64
	for range maxRefinements {
		next := Step((hi-lo)/float64(tickHint))
		if opts.DeclaredMin == nil {
			lo = clean(math.Floor(lo/next+eps)*next, next)
		}
		if opts.DeclaredMax == nil {
			hi = clean(math.Ceil(hi/next-eps)*next, next)
		}
		if next == step {
			break
		}
		step = next
	}
	if hi <= lo {
		hi = lo + step
	}
	// Rounding at extreme magnitudes can land an ulp inside the data.
	if opts.DeclaredMin == nil {
		lo = math.Min(lo, min)
	}
	if opts.DeclaredMax == nil {
		hi = math.Max(hi, max)
	}
	return Scale{Min: lo, Max: hi, Interval: step}
}

// Step rounds a raw step up to the nearest {1, 2, 5, 10} × 10^k.
// Non-positive input yields 1.
func Step(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	mag := math.Pow(10, exp)
	norm := raw / mag
	for _, f := range niceFactors {
		if norm <= f+eps {
			return clean(f*mag, mag)
		}
	}
	return 10 * mag
}

// Log returns decade-aligned bounds for a logarithmic axis. Values below
// LogEpsilon are floored to it. The Interval of the result is one decade,
// expressed in log10 units.
func Log(min, max float64) Scale {
	min = math.Max(LogEpsilon, finite(min))
	max = math.Max(LogEpsilon, finite(max))
	if min > max {
		min, max = max, min
	}
	lo := math.Floor(math.Log10(min) + eps)
	hi := math.Ceil(math.Log10(max) - eps)
	if hi <= lo {
		hi = lo + 1
	}
	return Scale{Min: math.Pow(10, lo), Max: math.Pow(10, hi), Interval: 1}
}

// Log10 returns log10(max(LogEpsilon, v)).
func Log10(v float64) float64 {
	return math.Log10(math.Max(LogEpsilon, v))
}

// Decades returns the tick values of a Scale produced by Log: one per power
// of ten from Min to Max.
func Decades(s Scale) []float64 {
	lo := int(math.Round(math.Log10(s.Min)))
	hi := int(math.Round(math.Log10(s.Max)))
	ticks := make([]float64, 0, hi-lo+1)
	for e := lo; e <= hi; e++ {
		ticks = append(ticks, math.Pow(10, float64(e)))
	}
	return ticks
}

// Extent returns the minimum and maximum of the finite values in vs.
// ok is false when vs holds no finite value.
func Extent(vs []float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// clean strips floating-point noise from v by rounding it to the precision
// implied by step (0.30000000000000004 becomes 0.3 for a 0.1 step).
func clean(v, step float64) float64 {
	p := math.Pow(10, float64(decimalsFor(step)+2))
	if math.Abs(v*p) >= 1<<53 {
		return v // no fractional digits left to clean
	}
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

func decimalsFor(step float64) int {
	if step <= 0 || step >= 1 {
		return 0
	}
	d := int(math.Ceil(-math.Log10(step) - eps))
	// 0.25-style steps need one more digit than their magnitude.
	for d < 15 && math.Abs(step*math.Pow(10, float64(d))-math.Round(step*math.Pow(10, float64(d)))) > eps {
		d++
	}
	return d
}
