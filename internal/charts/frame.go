package charts

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/costintel/costintel/internal/format"
)

// frame holds the plotting area shared by the cartesian renderers.
type frame struct {
	width, height  int
	padding        float64
	chartW, chartH float64
	minVal, maxVal float64
	scale          float64
	tickFormat     func(float64) string
}

func newFrame(opts Options, values []float64) (frame, error) {
	f := frame{width: opts.Width, height: opts.Height, padding: DefaultPadding, tickFormat: opts.TickFormat}
	if f.width <= 0 {
		f.width = DefaultWidth
	}
	if f.height <= 0 {
		f.height = DefaultHeight
	}
	if f.tickFormat == nil {
		f.tickFormat = compactNumber
	}
	// Leave room on the left for the tick labels.
	f.chartW = float64(f.width) - 2.5*f.padding
	f.chartH = float64(f.height) - 2*f.padding
	if f.chartW <= 0 || f.chartH <= 0 {
		return frame{}, fmt.Errorf("charts: viewport too small")
	}
	f.minVal, f.maxVal = bounds(values)
	if f.minVal > 0 {
		f.minVal = 0
	}
	if f.maxVal < 0 {
		f.maxVal = 0
	}
	if almostEqual(f.maxVal, f.minVal) {
		f.maxVal = f.minVal + 1
	}
	f.scale = f.chartH / (f.maxVal - f.minVal)
	return f, nil
}

func (f frame) left() float64   { return 1.5 * f.padding }
func (f frame) bottom() float64 { return f.padding + f.chartH }

func (f frame) y(v float64) float64 {
	return f.bottom() - (v-f.minVal)*f.scale
}

func (f frame) open(b *strings.Builder, opts Options, kind string) {
	titleID := makeID(opts.Title, kind+"-title")
	descID := makeID(opts.Title, kind+"-desc")
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-labelledby="%s %s" class="chart chart-%s">`, f.width, f.height, titleID, descID, kind)
	fmt.Fprintf(b, `<title id="%s">%s</title>`, titleID, template.HTMLEscapeString(fallback(opts.Title, "Gráfico")))
	fmt.Fprintf(b, `<desc id="%s">%s</desc>`, descID, template.HTMLEscapeString(fallback(opts.Description, "Série de valores")))
}

func (f frame) grid(b *strings.Builder) {
	for i := 0; i <= DefaultTicks; i++ {
		ratio := float64(i) / float64(DefaultTicks)
		y := f.bottom() - ratio*f.chartH
		value := f.minVal + (f.maxVal-f.minVal)*ratio
		fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.5" stroke-dasharray="2,4" aria-hidden="true"></line>`, f.left(), y, f.left()+f.chartW, y, gridColor)
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="end">%s</text>`, f.left()-6, y+4, axisColor, template.HTMLEscapeString(f.tickFormat(value)))
	}
	zero := f.y(0)
	fmt.Fprintf(b, `<g stroke="%s" aria-hidden="true">`, axisColor)
	fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="1"></line>`, f.left(), f.padding, f.left(), f.bottom())
	fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="1"></line>`, f.left(), zero, f.left()+f.chartW, zero)
	b.WriteString("</g>")
}

func (f frame) xLabel(b *strings.Builder, x float64, label string) {
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="middle">%s</text>`, x, f.bottom()+16, axisColor, template.HTMLEscapeString(label))
}

func legend(b *strings.Builder, x, y float64, entries []legendEntry) {
	for _, e := range entries {
		fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="10" height="10" rx="2" fill="%s"></rect>`, x, y-9, e.color)
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="11" text-anchor="start">%s</text>`, x+14, y, axisColor, template.HTMLEscapeString(e.label))
		x += 18 + 6.5*float64(len([]rune(e.label)))
	}
}

type legendEntry struct {
	label string
	color string
}

func allValues(series []Series) []float64 {
	var values []float64
	for _, s := range series {
		values = append(values, s.Values...)
	}
	return values
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func bounds(series []float64) (float64, float64) {
	if len(series) == 0 {
		return 0, 0
	}
	minVal, maxVal := series[0], series[0]
	for _, v := range series[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return minVal, maxVal
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return cleaned + "-" + suffix
}

// compactNumber labels axis ticks as "1,5 mi", "12 mil" or "850".
func compactNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return format.Decimal(v/1_000_000_000, 1) + " bi"
	case abs >= 1_000_000:
		return format.Decimal(v/1_000_000, 1) + " mi"
	case abs >= 1_000:
		return format.Decimal(v/1_000, 0) + " mil"
	default:
		return format.Decimal(v, 0)
	}
}
