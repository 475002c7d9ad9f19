package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidatePlotArea checks that a drawing area has finite, non-negative
// dimensions. A zero-sized area is allowed and produces collapsed geometry;
// a negative one cannot be mapped to pixels at all.
func ValidatePlotArea(width, height float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || math.IsNaN(height) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidPlotArea, "plot area must be finite, got %vx%v", width, height)
	}
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidPlotArea, "plot area must not be negative, got %vx%v", width, height)
	}
	return nil
}

// axisIDRegex matches axis identifiers: a dimension letter followed by an
// optional alphanumeric suffix (x, y, y2, xTop).
var axisIDRegex = regexp.MustCompile(`^[xy][A-Za-z0-9_-]*$`)

// ValidateAxisID validates an axis identifier. The leading letter selects the
// dimension the axis belongs to.
func ValidateAxisID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidAxis, "axis id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidAxis, "axis id too long (max 64 characters)")
	}
	if !axisIDRegex.MatchString(id) {
		return New(ErrCodeInvalidAxis, "invalid axis id %q (must start with x or y)", id)
	}
	return nil
}

// colorRegex matches #rgb, #rrggbb, and #rrggbbaa hex colors.
var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches plain CSS color keywords.
var namedColorRegex = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)

// ValidateColor validates a fill or stroke color. Only hex colors and CSS
// keywords are accepted since colors are written verbatim into SVG
// attributes.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidConfig, "color cannot be empty")
	}
	if colorRegex.MatchString(c) || namedColorRegex.MatchString(c) {
		return nil
	}
	return New(ErrCodeInvalidConfig, "invalid color %q (use #rrggbb or a CSS color name)", c)
}

// ValidatePath validates an output or input file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.ContainsRune(path, '\\') && !strings.Contains(path, ":\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
