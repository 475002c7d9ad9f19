package axis

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateAxis is returned by NewSet when two declarations share an id.
	ErrDuplicateAxis = errors.New("duplicate axis id")

	// ErrUnknownAxis is returned by Set.Lookup for an undeclared id.
	ErrUnknownAxis = errors.New("unknown axis id")
)

// Set is the collection of axes of one chart, in declaration order.
type Set struct {
	axes  map[string]*Axis
	order []string
}

// NewSet creates an axis for every declaration. Ids must be unique.
func NewSet(decls []Declaration) (*Set, error) {
	s := &Set{axes: make(map[string]*Axis, len(decls))}
	for _, d := range decls {
		if _, exists := s.axes[d.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAxis, d.ID)
		}
		s.axes[d.ID] = New(d)
		s.order = append(s.order, d.ID)
	}
	return s, nil
}

// Prepare prepares every axis with the values plotted against it. Axes on
// the same side are pushed outward by StackOffset each, in declaration
// order.
func (s *Set) Prepare(values map[string][]float64, plot PlotArea, horizontal bool) error {
	if err := plot.Validate(); err != nil {
		return err
	}
	perSide := make(map[Side]int)
	for _, id := range s.order {
		a := s.axes[id]
		dir := DirectionOf(DimensionOf(id), horizontal)
		side := a.Decl.Side
		if side == SideAuto || side.Horizontal() != (dir == Horizontal) {
			side = defaultSide(dir)
		}
		a.side = side
		a.offset = float64(perSide[side]) * StackOffset
		perSide[side]++

		if err := a.Prepare(values[id], plot, horizontal); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the axis with the given id.
func (s *Set) Get(id string) (*Axis, bool) {
	a, ok := s.axes[id]
	return a, ok
}

// Lookup is Get with an error for unknown ids.
func (s *Set) Lookup(id string) (*Axis, error) {
	if a, ok := s.axes[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAxis, id)
}

// Axes returns all axes in declaration order.
func (s *Set) Axes() []*Axis {
	out := make([]*Axis, len(s.order))
	for i, id := range s.order {
		out[i] = s.axes[id]
	}
	return out
}

// First returns the first declared axis of the given dimension.
func (s *Set) First(dim Dimension) (*Axis, bool) {
	for _, id := range s.order {
		if DimensionOf(id) == dim {
			return s.axes[id], true
		}
	}
	return nil, false
}

// Outputs returns the computed state of every axis in declaration order.
func (s *Set) Outputs() []Output {
	out := make([]Output, len(s.order))
	for i, id := range s.order {
		out[i] = s.axes[id].Output()
	}
	return out
}
