package charts

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

func renderBar(ds Dataset, opts Options) (template.HTML, error) {
	for _, s := range ds.Series {
		if len(s.Values) > 0 && len(s.Values) != len(ds.Labels) {
			return "", fmt.Errorf("charts: series %q has %d values for %d labels", s.Name, len(s.Values), len(ds.Labels))
		}
	}
	f, err := newFrame(opts, allValues(ds.Series))
	if err != nil {
		return "", err
	}

	groupWidth := f.chartW / float64(len(ds.Labels))
	barWidth := groupWidth * 0.7 / float64(len(ds.Series))
	zero := f.y(0)

	var b strings.Builder
	f.open(&b, opts, "bar")
	f.grid(&b)

	entries := make([]legendEntry, 0, len(ds.Series))
	for i, label := range ds.Labels {
		groupX := f.left() + float64(i)*groupWidth + groupWidth*0.15
		for si, s := range ds.Series {
			if len(s.Values) == 0 {
				continue
			}
			color := seriesColor(s, si, i)
			y, h := barPosition(s.Values[i], f, zero)
			fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s"><title>%s: %s</title></rect>`,
				groupX+float64(si)*barWidth, y, barWidth*0.92, h, color,
				template.HTMLEscapeString(label), template.HTMLEscapeString(f.tickFormat(s.Values[i])))
		}
		f.xLabel(&b, f.left()+float64(i)*groupWidth+groupWidth/2, label)
	}
	for si, s := range ds.Series {
		if len(s.Values) > 0 {
			entries = append(entries, legendEntry{label: fallback(s.Name, fmt.Sprintf("Série %d", si+1)), color: fallback(s.Color, PaletteColor(si))})
		}
	}
	if len(entries) > 1 {
		legend(&b, f.left(), f.padding-12, entries)
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func seriesColor(s Series, seriesIndex, pointIndex int) string {
	if len(s.Colors) > 0 {
		return s.Colors[pointIndex%len(s.Colors)]
	}
	return fallback(s.Color, PaletteColor(seriesIndex))
}

// barPosition clamps a bar to the plotting area, growing down for negatives.
func barPosition(value float64, f frame, zero float64) (float64, float64) {
	height := math.Abs(value * f.scale)
	if value >= 0 {
		y := zero - height
		if y < f.padding {
			height -= f.padding - y
			y = f.padding
		}
		return y, math.Max(height, 0)
	}
	if zero+height > f.bottom() {
		height = f.bottom() - zero
	}
	return zero, math.Max(height, 0)
}
