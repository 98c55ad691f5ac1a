package simulations

import "github.com/costintel/costintel/internal/costapi"

// templateSpan is how many leading centers and categories a template cuts.
const templateSpan = 2

// Template is a canned cut preset.
type Template struct {
	Key             string
	Label           string
	CenterPercent   float64
	CategoryPercent float64
}

var (
	Conservative = Template{Key: "conservative", Label: "Aplicar template conservador", CenterPercent: 6, CategoryPercent: 4}
	Aggressive   = Template{Key: "aggressive", Label: "Aplicar template agressivo", CenterPercent: 12, CategoryPercent: 10}
)

// Templates lists the presets in display order.
func Templates() []Template {
	return []Template{Conservative, Aggressive}
}

// TemplateByKey finds a preset by key.
func TemplateByKey(key string) (Template, bool) {
	for _, t := range Templates() {
		if t.Key == key {
			return t, true
		}
	}
	return Template{}, false
}

// ApplyTemplate replaces the cuts with t applied to the first two centers and
// categories. Nothing changes unless both dimension lists are non-empty.
func (d *Draft) ApplyTemplate(t Template, centers, categories []costapi.DimensionItem) bool {
	if len(centers) == 0 || len(categories) == 0 {
		return false
	}
	d.CenterCuts = make([]costapi.CenterCut, 0, templateSpan)
	for _, center := range centers[:min(templateSpan, len(centers))] {
		d.CenterCuts = append(d.CenterCuts, costapi.CenterCut{CostCenterID: center.ID, PercentCut: t.CenterPercent})
	}
	d.CategoryCuts = make([]costapi.CategoryCut, 0, templateSpan)
	for _, category := range categories[:min(templateSpan, len(categories))] {
		d.CategoryCuts = append(d.CategoryCuts, costapi.CategoryCut{CategoryID: category.ID, PercentCut: t.CategoryPercent})
	}
	return true
}
