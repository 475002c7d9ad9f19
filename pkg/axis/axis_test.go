package axis

import (
	"math"
	"testing"

	"github.com/matzehuels/stackchart/pkg/errors"
)

var plot = PlotArea{X: 50, Y: 20, Width: 500, Height: 400}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPrepareNumeric(t *testing.T) {
	a := New(Declaration{ID: "y", Kind: Numeric, TickHint: 5})
	if err := a.Prepare([]float64{3, 97, math.NaN()}, plot, false); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if a.Min != 0 || a.Max != 100 || a.Interval != 20 {
		t.Errorf("bounds = [%v, %v] step %v, want [0, 100] step 20", a.Min, a.Max, a.Interval)
	}
	if a.Direction != Vertical {
		t.Errorf("Direction = %v, want vertical", a.Direction)
	}
	if !approx(a.ScaleFactor, 4) {
		t.Errorf("ScaleFactor = %v, want 4", a.ScaleFactor)
	}
	if len(a.Ticks) != 6 {
		t.Fatalf("len(Ticks) = %d, want 6", len(a.Ticks))
	}
	if a.Ticks[1].Label != "20" {
		t.Errorf("Ticks[1].Label = %q, want %q", a.Ticks[1].Label, "20")
	}
	if !approx(a.Ticks[0].Pixel, plot.Bottom()) {
		t.Errorf("Ticks[0].Pixel = %v, want %v", a.Ticks[0].Pixel, plot.Bottom())
	}
	if !approx(a.ValueToCoordinate(100), plot.Y) {
		t.Errorf("ValueToCoordinate(max) = %v, want top %v", a.ValueToCoordinate(100), plot.Y)
	}
	if a.Position.Side != Left {
		t.Errorf("Side = %v, want left", a.Position.Side)
	}
}

func TestPrepareEmptyAndDegenerate(t *testing.T) {
	a := New(Declaration{ID: "x"})
	if err := a.Prepare(nil, plot, false); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if a.Max <= a.Min {
		t.Errorf("empty axis bounds = [%v, %v], want Max > Min", a.Min, a.Max)
	}

	a = New(Declaration{ID: "x"})
	_ = a.Prepare([]float64{7, 7}, plot, false)
	if a.Max <= a.Min || math.IsInf(a.ScaleFactor, 0) {
		t.Errorf("degenerate axis = [%v, %v] scale %v", a.Min, a.Max, a.ScaleFactor)
	}
}

func TestPrepareInvalidPlotArea(t *testing.T) {
	a := New(Declaration{ID: "x"})
	err := a.Prepare([]float64{1}, PlotArea{Width: -10, Height: 10}, false)
	if !errors.Is(err, errors.ErrCodeInvalidPlotArea) {
		t.Errorf("Prepare() error = %v, want %s", err, errors.ErrCodeInvalidPlotArea)
	}
}

func TestValueToCoordinateMonotonic(t *testing.T) {
	for _, horizontal := range []bool{false, true} {
		for _, id := range []string{"x", "y"} {
			a := New(Declaration{ID: id})
			_ = a.Prepare([]float64{-40, 130}, plot, horizontal)

			increasing := a.Direction == Horizontal
			prev := a.ValueToCoordinate(-50)
			for v := -49.0; v <= 150; v++ {
				cur := a.ValueToCoordinate(v)
				if increasing && cur <= prev || !increasing && cur >= prev {
					t.Fatalf("%s (horizontal=%v): not monotonic at %v: %v then %v", id, horizontal, v, prev, cur)
				}
				prev = cur
			}
		}
	}
}

func TestCategoryAxis(t *testing.T) {
	a := New(Declaration{ID: "x", Kind: Category, Categories: []string{"a", "b", "c", "d"}})
	_ = a.Prepare(nil, plot, false)

	if a.CategoryExtent != 125 {
		t.Errorf("CategoryExtent = %v, want 125", a.CategoryExtent)
	}
	if got := a.ValueToCoordinate(0); got != plot.X+62.5 {
		t.Errorf("ValueToCoordinate(0) = %v, want %v", got, plot.X+62.5)
	}
	if got, ok := a.CategoryCoordinate("c"); !ok || got != plot.X+2.5*125 {
		t.Errorf("CategoryCoordinate(c) = %v, %v", got, ok)
	}
	if _, ok := a.CategoryIndex("zzz"); ok {
		t.Error("CategoryIndex(unknown) ok = true, want false")
	}
	if len(a.Ticks) != 4 || a.Ticks[3].Label != "d" {
		t.Errorf("Ticks = %+v", a.Ticks)
	}
	if got := a.SlotStart(1); got != plot.X+125 {
		t.Errorf("SlotStart(1) = %v, want %v", got, plot.X+125)
	}
}

func TestCategoryAxisEmpty(t *testing.T) {
	a := New(Declaration{ID: "x", Kind: Category})
	_ = a.Prepare(nil, plot, false)
	if a.CategoryExtent != 0 {
		t.Errorf("CategoryExtent = %v, want 0", a.CategoryExtent)
	}
	if len(a.Ticks) != 0 {
		t.Errorf("len(Ticks) = %d, want 0", len(a.Ticks))
	}

	a = New(Declaration{ID: "x", Kind: String})
	_ = a.Prepare([]float64{0, 2}, plot, false)
	if len(a.Categories) != 3 {
		t.Errorf("derived categories = %v, want 3 entries", a.Categories)
	}
}

func TestLogAxis(t *testing.T) {
	a := New(Declaration{ID: "y", Kind: Log})
	_ = a.Prepare([]float64{2, 800}, plot, false)

	if a.Min != 1 || a.Max != 1000 {
		t.Errorf("bounds = [%v, %v], want [1, 1000]", a.Min, a.Max)
	}
	if !approx(a.ValueToCoordinate(10), plot.Bottom()-plot.Height/3) {
		t.Errorf("ValueToCoordinate(10) = %v", a.ValueToCoordinate(10))
	}
	// Zero is floored instead of producing -Inf.
	if v := a.ValueToCoordinate(0); math.IsInf(v, 0) || math.IsNaN(v) {
		t.Errorf("ValueToCoordinate(0) = %v, want finite", v)
	}
	if len(a.Ticks) != 4 {
		t.Errorf("len(Ticks) = %d, want 4", len(a.Ticks))
	}
}

func TestTimeAxisLabels(t *testing.T) {
	a := New(Declaration{ID: "x", Kind: Time, TimeLayout: "2006"})
	_ = a.Prepare([]float64{0, 3.2e8}, plot, false)
	if a.Ticks[0].Label != "1970" {
		t.Errorf("Ticks[0].Label = %q, want 1970", a.Ticks[0].Label)
	}
}

func TestBaseline(t *testing.T) {
	a := New(Declaration{ID: "y"})
	_ = a.Prepare([]float64{-50, 50}, plot, false)
	if got := a.Baseline(); !approx(got, plot.CenterY()) {
		t.Errorf("Baseline() = %v, want %v", got, plot.CenterY())
	}

	a = New(Declaration{ID: "y"})
	_ = a.Prepare([]float64{20, 40}, plot, false)
	if got := a.Baseline(); !approx(got, plot.Bottom()) {
		t.Errorf("Baseline() = %v, want bottom %v", got, plot.Bottom())
	}
}

func TestHorizontalSwapsDirections(t *testing.T) {
	set, err := NewSet([]Declaration{
		{ID: "x", Kind: Category, Categories: []string{"a", "b"}},
		{ID: "y"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := set.Prepare(map[string][]float64{"y": {0, 10}}, plot, true); err != nil {
		t.Fatal(err)
	}
	x, _ := set.Get("x")
	y, _ := set.Get("y")
	if x.Direction != Vertical || x.Position.Side != Left {
		t.Errorf("x = %v on %v, want vertical on left", x.Direction, x.Position.Side)
	}
	if y.Direction != Horizontal || y.Position.Side != Bottom {
		t.Errorf("y = %v on %v, want horizontal on bottom", y.Direction, y.Position.Side)
	}
	if got := x.ValueToCoordinate(0); got != plot.Y+100 {
		t.Errorf("x.ValueToCoordinate(0) = %v, want %v", got, plot.Y+100)
	}
}

func TestSetStacksAxesOnSameSide(t *testing.T) {
	set, _ := NewSet([]Declaration{
		{ID: "x"},
		{ID: "y"},
		{ID: "y2", Side: Left},
		{ID: "y3", Side: Right},
	})
	_ = set.Prepare(nil, plot, false)

	y2, _ := set.Get("y2")
	if y2.Position.Offset != StackOffset || y2.Position.X1 != plot.X-StackOffset {
		t.Errorf("y2 position = %+v, want offset %v", y2.Position, StackOffset)
	}
	y3, _ := set.Get("y3")
	if y3.Position.Offset != 0 || y3.Position.X1 != plot.Right() {
		t.Errorf("y3 position = %+v, want right edge", y3.Position)
	}
	if got := len(set.Outputs()); got != 4 {
		t.Errorf("len(Outputs()) = %d, want 4", got)
	}
}

func TestSetErrors(t *testing.T) {
	if _, err := NewSet([]Declaration{{ID: "x"}, {ID: "x"}}); err == nil {
		t.Error("NewSet(duplicate) error = nil")
	}
	set, _ := NewSet([]Declaration{{ID: "x"}})
	if _, err := set.Lookup("y9"); err == nil {
		t.Error("Lookup(unknown) error = nil")
	}
	if _, ok := set.First(Y); ok {
		t.Error("First(Y) ok = true on a set without y axes")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", Numeric, false},
		{"Category", Category, false},
		{"log", Log, false},
		{"time", Time, false},
		{"string", String, false},
		{"polar", Numeric, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
