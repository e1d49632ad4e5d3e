package tui

import (
	"math"
	"strings"
)

var bars = []rune("▁▂▃▄▅▆▇█")

// sparkline draws at most width bars scaled between the smallest and largest
// finite value. Losses are red, gains green and non-finite points a dot.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", width)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if finite(v) {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	if span <= 0 || !finite(span) {
		span = 1
	}

	n := min(width, len(values))
	var b strings.Builder
	for i := 0; i < n; i++ {
		// spread the samples so both ends are drawn
		j := 0
		if n > 1 {
			j = i * (len(values) - 1) / (n - 1)
		}
		v := values[j]
		if !finite(v) {
			b.WriteString(dim.Render("·"))
			continue
		}
		idx := int((v - lo) / span * float64(len(bars)-1))
		bar := string(bars[max(0, min(idx, len(bars)-1))])
		if v < 0 {
			b.WriteString(red.Render(bar))
		} else {
			b.WriteString(green.Render(bar))
		}
	}
	return b.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
