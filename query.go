package responsive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxWidth returns the canonical query for "width <= px".
func MaxWidth(px float64) string {
	return "(max-width: " + formatPx(px) + ")"
}

// MinWidth returns the canonical query for "width >= px".
func MinWidth(px float64) string {
	return "(min-width: " + formatPx(px) + ")"
}

// WidthBetween returns the canonical query for "minPx <= width <= maxPx".
func WidthBetween(minPx, maxPx float64) string {
	return MinWidth(minPx) + " and " + MaxWidth(maxPx)
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Interval is a closed width range. An infinite bound is unbounded.
type Interval struct {
	Min float64
	Max float64
}

// Contains reports whether width falls inside the interval.
func (iv Interval) Contains(width float64) bool {
	return width >= iv.Min && width <= iv.Max
}

// ParseQuery parses a width-only query such as
// "(min-width: 320px) and (max-width: 480px)". Only min-width and max-width
// features joined by "and" are understood.
func ParseQuery(query string) (Interval, error) {
	iv := Interval{Min: math.Inf(-1), Max: math.Inf(1)}
	parts := strings.Split(strings.ToLower(query), " and ")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "(") || !strings.HasSuffix(part, ")") {
			return Interval{}, fmt.Errorf("unsupported query %q", query)
		}
		feature, value, ok := strings.Cut(part[1:len(part)-1], ":")
		if !ok {
			return Interval{}, fmt.Errorf("missing value in %q", part)
		}
		px, err := parsePx(value)
		if err != nil {
			return Interval{}, fmt.Errorf("invalid width in %q: %w", part, err)
		}
		switch strings.TrimSpace(feature) {
		case "min-width":
			iv.Min = math.Max(iv.Min, px)
		case "max-width":
			iv.Max = math.Min(iv.Max, px)
		default:
			return Interval{}, fmt.Errorf("unsupported media feature %q", strings.TrimSpace(feature))
		}
	}
	return iv, nil
}

func parsePx(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
