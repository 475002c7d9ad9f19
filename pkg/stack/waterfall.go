package stack

import (
	"fmt"
	"math"
	"strings"
)

// StepKind is the transition a waterfall step applies to the running total.
type StepKind int

const (
	// StepAuto adds the value and resolves to StepIncrease or StepDecrease
	// by its sign.
	StepAuto StepKind = iota
	// StepInitial resets the running total to the value.
	StepInitial
	// StepIncrease adds the absolute value.
	StepIncrease
	// StepDecrease subtracts the absolute value.
	StepDecrease
	// StepSubtotal shows the running total. A nonzero value overrides and
	// resets the running total.
	StepSubtotal
	// StepTotal behaves like StepSubtotal and is drawn as a closing bar.
	StepTotal
)

var stepNames = map[StepKind]string{
	StepAuto:     "",
	StepInitial:  "initial",
	StepIncrease: "positive",
	StepDecrease: "negative",
	StepSubtotal: "subtotal",
	StepTotal:    "total",
}

func (k StepKind) String() string {
	if k == StepAuto {
		return "auto"
	}
	if s, ok := stepNames[k]; ok {
		return s
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// IsTotal reports whether the step shows the running total rather than a
// delta.
func (k StepKind) IsTotal() bool { return k == StepSubtotal || k == StepTotal }

// ParseStepKind parses a step kind name. "auto" and the empty string yield
// StepAuto.
func ParseStepKind(s string) (StepKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "auto" {
		return StepAuto, nil
	}
	for k, name := range stepNames {
		if name == s {
			return k, nil
		}
	}
	return StepAuto, fmt.Errorf("unknown waterfall step %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k StepKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StepKind) UnmarshalText(b []byte) error {
	v, err := ParseStepKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Step is one category of a waterfall.
type Step struct {
	Label string
	Kind  StepKind
	Value float64
}

// Bar is the resolved geometry of one waterfall step in value units. Kind
// is never StepAuto. For delta bars Start is the running total before the
// step; total bars and the initial bar start at zero. Total is the running
// total after the step.
type Bar struct {
	Label string   `json:"label"`
	Kind  StepKind `json:"kind"`
	Value float64  `json:"value"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Total float64  `json:"total"`
}

// Low returns the smaller endpoint of the bar.
func (b Bar) Low() float64 { return math.Min(b.Start, b.End) }

// High returns the larger endpoint of the bar.
func (b Bar) High() float64 { return math.Max(b.Start, b.End) }

// Connector joins bar From to bar To = From+1 with a horizontal segment at
// Level.
//
// A connector leaving a subtotal, total or initial bar is drawn at that
// bar's value. A connector leaving an increase or decrease bar is drawn at
// the leaving bar's start value.
type Connector struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Level float64 `json:"level"`
}

// Waterfall resolves steps into bars and the connectors between adjacent
// bars. NaN values are treated as zero.
//
// For the sequence initial 100, +20, -10, subtotal 0 the subtotal bar
// spans 0 to 110.
func Waterfall(steps []Step) ([]Bar, []Connector) {
	bars := make([]Bar, len(steps))
	var total float64
	for i, s := range steps {
		v := s.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		b := Bar{Label: s.Label, Kind: s.Kind}
		switch s.Kind {
		case StepInitial:
			total = v
			b.Value, b.Start, b.End = v, 0, v
		case StepSubtotal, StepTotal:
			if v != 0 {
				total = v
			}
			b.Value, b.Start, b.End = total, 0, total
		default:
			delta := v
			switch s.Kind {
			case StepIncrease:
				delta = math.Abs(v)
			case StepDecrease:
				delta = -math.Abs(v)
			default:
				b.Kind = StepIncrease
				if v < 0 {
					b.Kind = StepDecrease
				}
			}
			b.Value, b.Start = delta, total
			total += delta
			b.End = total
		}
		b.Total = total
		bars[i] = b
	}

	var conns []Connector
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1]
		level := prev.Start
		if prev.Kind.IsTotal() || prev.Kind == StepInitial {
			level = prev.Value
		}
		conns = append(conns, Connector{From: i - 1, To: i, Level: level})
	}
	return bars, conns
}

// WaterfallExtent returns the value range covered by bars, always
// including zero.
func WaterfallExtent(bars []Bar) (lo, hi float64) {
	for _, b := range bars {
		lo = math.Min(lo, b.Low())
		hi = math.Max(hi, b.High())
	}
	return lo, hi
}
