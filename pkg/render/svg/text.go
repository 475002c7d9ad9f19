package svg

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"
)

// FontFamily is the font stack used for every text element.
const FontFamily = "Helvetica, Arial, sans-serif"

// DefaultFontSize is used when a Text has no size.
const DefaultFontSize = 12.0

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 24.0
)

// FitFontSize returns the largest font size in [8, 24] that fits a label of
// textLen characters into a box of the given size.
func FitFontSize(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TextWidth estimates the rendered width of s at the given font size.
func TextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * fontCharWidth
}

// TruncateLabel shortens label with ".." so it fits availWidth at the given
// font size. At least three characters are kept.
func TruncateLabel(label string, availWidth, size float64) string {
	runes := []rune(label)
	maxChars := max(3, int(availWidth*fontWidthRatio/(size*fontCharWidth)))
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in attribute values and text content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Num formats a coordinate with at most two decimals and no trailing zeros.
func Num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
