package axis

import (
	"fmt"
	"strings"
)

// Kind selects how an axis maps values to positions.
type Kind int

const (
	// Numeric maps values linearly between the computed bounds.
	Numeric Kind = iota
	// Category places integer indexes at the centers of equal-width slots.
	Category
	// Time is a Numeric axis over Unix seconds with date labels.
	Time
	// Log maps log10 of the value linearly.
	Log
	// String behaves like Category; labels are taken from the values.
	String
)

var kindNames = map[Kind]string{
	Numeric:  "numeric",
	Category: "category",
	Time:     "time",
	Log:      "log",
	String:   "string",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsDiscrete reports whether values on the axis are category indexes.
func (k Kind) IsDiscrete() bool { return k == Category || k == String }

// ParseKind parses a kind name. Matching is case-insensitive and the empty
// string yields Numeric.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Numeric, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return Numeric, fmt.Errorf("unknown axis kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Side is the edge of the plot area an axis is drawn along.
type Side int

const (
	// SideAuto picks Bottom for pixel-horizontal axes and Left for
	// pixel-vertical ones.
	SideAuto Side = iota
	Bottom
	Left
	Top
	Right
)

var sideNames = map[Side]string{
	SideAuto: "auto",
	Bottom:   "bottom",
	Left:     "left",
	Top:      "top",
	Right:    "right",
}

func (s Side) String() string {
	if n, ok := sideNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Horizontal reports whether the side runs along the x direction.
func (s Side) Horizontal() bool { return s == Bottom || s == Top }

// ParseSide parses a side name; the empty string yields SideAuto.
func ParseSide(s string) (Side, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SideAuto, nil
	}
	for k, name := range sideNames {
		if name == s {
			return k, nil
		}
	}
	return SideAuto, fmt.Errorf("unknown axis side %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Dimension is the logical role of an axis, taken from the first letter of
// its id.
type Dimension int

const (
	X Dimension = iota
	Y
)

// DimensionOf returns Y for ids starting with 'y' and X otherwise.
func DimensionOf(id string) Dimension {
	if strings.HasPrefix(id, "y") {
		return Y
	}
	return X
}

// Direction is the pixel direction an axis runs in.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DirectionOf returns the pixel direction of an axis in the given
// dimension. With horizontal set the roles swap: X axes run vertically and
// Y axes horizontally, as in a horizontal bar chart.
func DirectionOf(dim Dimension, horizontal bool) Direction {
	if (dim == X) != horizontal {
		return Horizontal
	}
	return Vertical
}
