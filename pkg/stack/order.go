package stack

import (
	"fmt"
	"strings"
)

// Order is the sequence in which series are accumulated and painted.
type Order int

const (
	// Reverse accumulates the last declared series first, so the first
	// declared series is painted last. Used by bars and areas.
	Reverse Order = iota
	// Declaration accumulates series as declared. Used by radars.
	Declaration
)

func (o Order) String() string {
	if o == Declaration {
		return "declaration"
	}
	return "reverse"
}

// ParseOrder parses "reverse" or "declaration". The empty string yields
// Reverse.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reverse":
		return Reverse, nil
	case "declaration":
		return Declaration, nil
	}
	return Reverse, fmt.Errorf("unknown stack order %q", s)
}

// Indices returns the series indexes 0..n-1 in accumulation order.
func (o Order) Indices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		if o == Reverse {
			idx[i] = n - 1 - i
		} else {
			idx[i] = i
		}
	}
	return idx
}
