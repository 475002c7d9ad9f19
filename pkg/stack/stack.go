package stack

import "math"

// Sign selects which running total a value is added to.
type Sign int

const (
	Positive Sign = iota
	Negative
)

func (s Sign) String() string {
	if s == Negative {
		return "negative"
	}
	return "positive"
}

// MarshalText implements encoding.TextMarshaler.
func (s Sign) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// SignOf returns Negative for values below zero and Positive otherwise.
// NaN counts as zero.
func SignOf(v float64) Sign {
	if v < 0 {
		return Negative
	}
	return Positive
}

// DefaultGroup is the stack group of series that do not name one.
const DefaultGroup = "default"

// Key identifies one stack: a category position within a stack group on a
// value axis. Series sharing a Key are stacked on top of each other.
type Key struct {
	Category string `json:"category"`
	Group    string `json:"group"`
	Axis     string `json:"axis"`
}

// Band is the value interval occupied by one series in a stack. Start is
// the total before the series was added, End the total after.
type Band struct {
	Series string  `json:"series"`
	Value  float64 `json:"value"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Sign   Sign    `json:"sign"`
}

// Low returns the smaller endpoint of the band.
func (b Band) Low() float64 { return math.Min(b.Start, b.End) }

// High returns the larger endpoint of the band.
func (b Band) High() float64 { return math.Max(b.Start, b.End) }

type state struct {
	pos, neg float64
	items    []Band
}

// Accumulator tracks the running totals of every stack of one render call.
// It is not safe for concurrent use; create one per render.
type Accumulator struct {
	stacks map[Key]*state
	keys   []Key
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{stacks: make(map[Key]*state)}
}

// Accumulate adds value for series to the stack at key and returns the band
// it occupies. The sign of value selects the running total; NaN and
// infinities are stacked as zero.
func (a *Accumulator) Accumulate(key Key, series string, value float64) Band {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	st, ok := a.stacks[key]
	if !ok {
		st = &state{}
		a.stacks[key] = st
		a.keys = append(a.keys, key)
	}

	b := Band{Series: series, Value: value, Sign: SignOf(value)}
	if b.Sign == Negative {
		b.Start = st.neg
		st.neg += value
		b.End = st.neg
	} else {
		b.Start = st.pos
		st.pos += value
		b.End = st.pos
	}
	st.items = append(st.items, b)
	return b
}

// Positive returns the positive running total of the stack at key.
func (a *Accumulator) Positive(key Key) float64 {
	if st, ok := a.stacks[key]; ok {
		return st.pos
	}
	return 0
}

// Negative returns the negative running total of the stack at key.
func (a *Accumulator) Negative(key Key) float64 {
	if st, ok := a.stacks[key]; ok {
		return st.neg
	}
	return 0
}

// Items returns the bands of the stack at key in accumulation order.
func (a *Accumulator) Items(key Key) []Band {
	if st, ok := a.stacks[key]; ok {
		return st.items
	}
	return nil
}

// Keys returns every key in the order it was first accumulated.
func (a *Accumulator) Keys() []Key {
	return a.keys
}

// Extent returns the lowest negative and highest positive total over all
// stacks. Value axes of stacked charts are prepared from it.
func (a *Accumulator) Extent() (lo, hi float64) {
	for _, st := range a.stacks {
		lo = math.Min(lo, st.neg)
		hi = math.Max(hi, st.pos)
	}
	return lo, hi
}

// Stack is the serializable view of one stack.
type Stack struct {
	Key      Key     `json:"key"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Bands    []Band  `json:"bands"`
}

// Stacks returns every stack in first-accumulated order.
func (a *Accumulator) Stacks() []Stack {
	out := make([]Stack, len(a.keys))
	for i, k := range a.keys {
		st := a.stacks[k]
		out[i] = Stack{Key: k, Positive: st.pos, Negative: st.neg, Bands: st.items}
	}
	return out
}
