package charts

import (
	"fmt"
	"html/template"
	"strings"
)

func renderLine(ds Dataset, opts Options) (template.HTML, error) {
	for _, s := range ds.Series {
		if len(s.Values) != len(ds.Labels) {
			return "", fmt.Errorf("charts: series %q has %d values for %d labels", s.Name, len(s.Values), len(ds.Labels))
		}
	}
	f, err := newFrame(opts, allValues(ds.Series))
	if err != nil {
		return "", err
	}

	step := 0.0
	if len(ds.Labels) > 1 {
		step = f.chartW / float64(len(ds.Labels)-1)
	}
	x := func(i int) float64 {
		if len(ds.Labels) == 1 {
			return f.left() + f.chartW/2
		}
		return f.left() + float64(i)*step
	}

	var b strings.Builder
	f.open(&b, opts, "line")
	f.grid(&b)

	entries := make([]legendEntry, 0, len(ds.Series))
	for si, s := range ds.Series {
		color := fallback(s.Color, PaletteColor(si))
		var path strings.Builder
		for i, v := range s.Values {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.2f %.2f ", cmd, x(i), f.y(v))
		}
		d := strings.TrimSpace(path.String())
		if opts.Fill {
			fmt.Fprintf(&b, `<path d="%s L%.2f %.2f L%.2f %.2f Z" fill="%s" fill-opacity="0.12" stroke="none" aria-hidden="true"></path>`, d, x(len(s.Values)-1), f.bottom(), x(0), f.bottom(), color)
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2.5" stroke-linejoin="round" stroke-linecap="round"></path>`, d, color)
		for i, v := range s.Values {
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s"><title>%s: %s</title></circle>`, x(i), f.y(v), color, template.HTMLEscapeString(ds.Labels[i]), template.HTMLEscapeString(f.tickFormat(v)))
		}
		entries = append(entries, legendEntry{label: fallback(s.Name, fmt.Sprintf("Série %d", si+1)), color: color})
	}

	for i, label := range ds.Labels {
		f.xLabel(&b, x(i), label)
	}
	if len(ds.Series) > 1 {
		legend(&b, f.left(), f.padding-12, entries)
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
