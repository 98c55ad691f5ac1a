package charts

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// renderDoughnut draws the first series as ring slices. Non-positive values are skipped.
func renderDoughnut(ds Dataset, opts Options) (template.HTML, error) {
	s := ds.Series[0]
	if len(s.Values) != len(ds.Labels) {
		return "", fmt.Errorf("charts: series %q has %d values for %d labels", s.Name, len(s.Values), len(ds.Labels))
	}
	total := 0.0
	for _, v := range s.Values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return "", ErrEmptyDataset
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	outer := math.Min(float64(height)/2-DefaultPadding/2, float64(width)/4)
	inner := outer * 0.6
	cx, cy := outer+DefaultPadding, float64(height)/2

	f := frame{width: width, height: height}
	var b strings.Builder
	f.open(&b, opts, "doughnut")

	angle := -math.Pi / 2
	legendY := DefaultPadding
	for i, v := range s.Values {
		if v <= 0 {
			continue
		}
		color := seriesColor(s, 0, i)
		share := v / total
		sweep := share * 2 * math.Pi
		label := template.HTMLEscapeString(ds.Labels[i])
		if share >= 0.9999 {
			// A single full slice cannot be drawn as an arc.
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"><title>%s</title></circle>`, cx, cy, (outer+inner)/2, color, outer-inner, label)
		} else {
			fmt.Fprintf(&b, `<path d="%s" fill="%s"><title>%s: %.1f%%</title></path>`, slicePath(cx, cy, outer, inner, angle, angle+sweep), color, label, share*100)
		}
		angle += sweep

		lx := cx + outer + 32
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="10" height="10" rx="2" fill="%s"></rect>`, lx, legendY-9, color)
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="%s" font-size="11">%s</text>`, lx+16, legendY, axisColor, label)
		legendY += 18
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func slicePath(cx, cy, outer, inner, start, end float64) string {
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	x0, y0 := cx+outer*math.Cos(start), cy+outer*math.Sin(start)
	x1, y1 := cx+outer*math.Cos(end), cy+outer*math.Sin(end)
	x2, y2 := cx+inner*math.Cos(end), cy+inner*math.Sin(end)
	x3, y3 := cx+inner*math.Cos(start), cy+inner*math.Sin(start)
	return fmt.Sprintf("M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z",
		x0, y0, outer, outer, large, x1, y1, x2, y2, inner, inner, large, x3, y3)
}
