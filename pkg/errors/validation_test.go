package errors

import (
	"math"
	"testing"
)

func TestValidatePlotArea(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"valid", 800, 600, false},
		{"zero", 0, 0, false},
		{"negative width", -1, 600, true},
		{"negative height", 800, -0.5, true},
		{"nan", math.NaN(), 10, true},
		{"inf", 10, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlotArea(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlotArea(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPlotArea) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPlotArea)
			}
		})
	}
}

func TestValidateAxisID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"x", "x", false},
		{"y2", "y2", false},
		{"named", "yRight", false},
		{"dashed", "x-top", false},

		{"empty", "", true},
		{"wrong dimension", "z", true},
		{"space", "y 2", true},
		{"too long", "y" + string(make([]byte, 80)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAxisID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAxisID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"short hex", "#fff", false},
		{"long hex", "#1f77b4", false},
		{"hex alpha", "#1f77b480", false},
		{"keyword", "steelblue", false},

		{"empty", "", true},
		{"bad hex", "#12345", true},
		{"injection", `red" onload="x`, true},
		{"function", "rgb(1,2,3)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "charts/sales.toml", false},
		{"absolute", "/tmp/out.svg", false},

		{"empty", "", true},
		{"null byte", "out\x00.svg", true},
		{"newline", "out\n.svg", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
