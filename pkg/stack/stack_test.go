package stack

import (
	"math"
	"slices"
	"testing"
)

func TestAccumulateMixedSigns(t *testing.T) {
	acc := NewAccumulator()
	key := Key{Category: "Q1", Group: DefaultGroup, Axis: "y"}
	for i, v := range []float64{10, -3, 5, -8} {
		acc.Accumulate(key, string(rune('a'+i)), v)
	}

	if got := acc.Positive(key); got != 15 {
		t.Errorf("Positive() = %v, want 15", got)
	}
	if got := acc.Negative(key); got != -11 {
		t.Errorf("Negative() = %v, want -11", got)
	}

	want := []Band{
		{Series: "a", Value: 10, Start: 0, End: 10, Sign: Positive},
		{Series: "b", Value: -3, Start: 0, End: -3, Sign: Negative},
		{Series: "c", Value: 5, Start: 10, End: 15, Sign: Positive},
		{Series: "d", Value: -8, Start: -3, End: -11, Sign: Negative},
	}
	if got := acc.Items(key); !slices.Equal(got, want) {
		t.Errorf("Items() = %+v\nwant %+v", got, want)
	}
}

func TestAccumulateSignIndependence(t *testing.T) {
	acc := NewAccumulator()
	key := Key{Category: "a"}
	up := acc.Accumulate(key, "up", 10)
	down := acc.Accumulate(key, "down", -5)

	if up.Low() != 0 || up.High() != 10 {
		t.Errorf("up = %+v, want [0, 10]", up)
	}
	if down.Low() != -5 || down.High() != 0 {
		t.Errorf("down = %+v, want [-5, 0]", down)
	}
}

func TestAccumulateContiguity(t *testing.T) {
	values := []float64{3, -1, 0, 7.5, math.NaN(), -2.25, 4, -0.5, 1e6, -1e-3}
	acc := NewAccumulator()
	key := Key{Category: "c"}
	for _, v := range values {
		acc.Accumulate(key, "s", v)
	}

	last := map[Sign]float64{}
	for i, b := range acc.Items(key) {
		if b.Start != last[b.Sign] {
			t.Errorf("band %d starts at %v, want %v", i, b.Start, last[b.Sign])
		}
		if b.End != b.Start+b.Value {
			t.Errorf("band %d: End %v != Start %v + Value %v", i, b.End, b.Start, b.Value)
		}
		last[b.Sign] = b.End
	}
	if n := len(acc.Items(key)); n != len(values) {
		t.Errorf("len(Items()) = %d, want %d", n, len(values))
	}
}

func TestAccumulateMissingValue(t *testing.T) {
	acc := NewAccumulator()
	key := Key{Category: "x"}
	acc.Accumulate(key, "a", 4)
	b := acc.Accumulate(key, "b", math.NaN())
	acc.Accumulate(key, "c", 2)

	if b.Value != 0 || b.Start != 4 || b.End != 4 {
		t.Errorf("missing value band = %+v, want empty band at 4", b)
	}
	if got := acc.Positive(key); got != 6 {
		t.Errorf("Positive() = %v, want 6", got)
	}
}

func TestAccumulateKeysAreIndependent(t *testing.T) {
	acc := NewAccumulator()
	a := Key{Category: "a", Group: "g1"}
	b := Key{Category: "a", Group: "g2"}
	acc.Accumulate(a, "s1", 5)
	acc.Accumulate(b, "s2", 7)
	acc.Accumulate(a, "s3", -2)

	if acc.Positive(a) != 5 || acc.Positive(b) != 7 {
		t.Errorf("totals = %v, %v; want 5, 7", acc.Positive(a), acc.Positive(b))
	}
	if got := acc.Keys(); !slices.Equal(got, []Key{a, b}) {
		t.Errorf("Keys() = %v", got)
	}
	lo, hi := acc.Extent()
	if lo != -2 || hi != 7 {
		t.Errorf("Extent() = %v, %v; want -2, 7", lo, hi)
	}
	if got := len(acc.Stacks()); got != 2 {
		t.Errorf("len(Stacks()) = %d, want 2", got)
	}
	if acc.Positive(Key{Category: "missing"}) != 0 || acc.Items(Key{Category: "missing"}) != nil {
		t.Error("unknown key should report an empty stack")
	}
}

func TestOrderIndices(t *testing.T) {
	tests := []struct {
		order Order
		n     int
		want  []int
	}{
		{Reverse, 3, []int{2, 1, 0}},
		{Declaration, 3, []int{0, 1, 2}},
		{Reverse, 0, []int{}},
		{Declaration, 1, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			if got := tt.order.Indices(tt.n); !slices.Equal(got, tt.want) {
				t.Errorf("Indices(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{"": Reverse, "reverse": Reverse, "Declaration": Declaration} {
		got, err := ParseOrder(in)
		if err != nil || got != want {
			t.Errorf("ParseOrder(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseOrder("sideways"); err == nil {
		t.Error("ParseOrder(sideways) error = nil")
	}
}
