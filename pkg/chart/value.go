package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is one data point of a series: a number, a category label or
// missing. JSON null, the empty string and non-finite numbers are missing.
//
// Numeric strings decode as numbers but keep their source in Text, so a
// quoted "2021" still names the category "2021" on a discrete axis.
type Value struct {
	Num   float64
	Label string
	Text  string
	Valid bool
}

// Number returns a valid numeric Value.
func Number(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{Num: v, Valid: true}
}

// Label returns a category label Value.
func Label(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{Label: s, Valid: true}
}

// Numbers converts a slice of floats, mapping NaN to missing.
func Numbers(vs ...float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Number(v)
	}
	return out
}

// IsLabel reports whether v holds a category label.
func (v Value) IsLabel() bool { return v.Valid && v.Label != "" }

// CategoryLabel returns the text that names v's category: the label, or
// the source of a quoted number.
func (v Value) CategoryLabel() (string, bool) {
	switch {
	case v.IsLabel():
		return v.Label, true
	case v.Valid && v.Text != "":
		return v.Text, true
	}
	return "", false
}

// Float returns the numeric value, or NaN when v is missing or a label.
func (v Value) Float() float64 {
	if !v.Valid || v.Label != "" {
		return math.NaN()
	}
	return v.Num
}

// OrZero returns the numeric value, or 0 when v is missing or a label.
func (v Value) OrZero() float64 {
	if f := v.Float(); !math.IsNaN(f) {
		return f
	}
	return 0
}

func (v Value) String() string {
	switch {
	case !v.Valid:
		return "null"
	case v.Label != "":
		return v.Label
	}
	return strconv.FormatFloat(v.Num, 'g', -1, 64)
}

func parseString(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v := Number(f)
		if v.Valid {
			v.Text = s
		}
		return v
	}
	return Label(s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = Value{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = parseString(s)
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("value %s: %w", b, err)
		}
		*v = Number(f)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case !v.Valid:
		return []byte("null"), nil
	case v.Label != "":
		return json.Marshal(v.Label)
	case v.Text != "":
		return json.Marshal(v.Text)
	}
	return json.Marshal(v.Num)
}

// UnmarshalTOML implements toml.Unmarshaler. TOML has no null; use an
// empty string for missing values.
func (v *Value) UnmarshalTOML(data any) error {
	switch d := data.(type) {
	case int64:
		*v = Number(float64(d))
	case float64:
		*v = Number(d)
	case string:
		*v = parseString(d)
	case bool:
		if d {
			*v = Number(1)
		} else {
			*v = Number(0)
		}
	default:
		return fmt.Errorf("unsupported value type %T", data)
	}
	return nil
}
