package production

import (
	"math"
	"strconv"
	"strings"
)

// DefaultSizeCM is used for both sides when a variant carries no usable size
const DefaultSizeCM = 100.0

// Dimensions is the finished (trimmed) size of a print in centimetres
type Dimensions struct {
	WidthCM  float64 `json:"width_cm"`
	HeightCM float64 `json:"height_cm"`
}

// DefaultDimensions returns the 100x100 cm fallback size
func DefaultDimensions() Dimensions {
	return Dimensions{WidthCM: DefaultSizeCM, HeightCM: DefaultSizeCM}
}

// ParseDimensions reads a variant label such as "100x100 cm" or "50X70cm".
// Anything that is not exactly two positive finite numbers separated by an x
// falls back to DefaultDimensions.
func ParseDimensions(variant string) Dimensions {
	parts := strings.Split(strings.ReplaceAll(strings.ToLower(variant), "cm", ""), "x")
	if len(parts) != 2 {
		return DefaultDimensions()
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return DefaultDimensions()
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return DefaultDimensions()
	}
	if !usableSize(w) || !usableSize(h) {
		return DefaultDimensions()
	}
	return Dimensions{WidthCM: w, HeightCM: h}
}

// usableSize rejects zero, negative, NaN and infinite sides
func usableSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// String formats the size as "<w>x<h>", always with a decimal part
func (d Dimensions) String() string {
	return formatCM(d.WidthCM) + "x" + formatCM(d.HeightCM)
}

// formatCM prints whole numbers with one decimal ("100.0") and keeps
// fractional values as short as possible ("50.5")
func formatCM(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
