package charts

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestRenderBeforeRegistrationFails(t *testing.T) {
	if registered.Load() {
		t.Skip("renderers already registered in this process")
	}
	_, err := Render(KindLine, Dataset{Labels: []string{"a"}, Series: []Series{{Values: []float64{1}}}}, Options{})
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestEnsureRegisteredIsIdempotent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			EnsureRegistered()
		}()
	}
	wg.Wait()
	EnsureRegistered()

	kinds := Registered()
	if len(kinds) != 3 {
		t.Fatalf("expected 3 kinds, got %v", kinds)
	}
	if kinds[0] != KindBar || kinds[1] != KindDoughnut || kinds[2] != KindLine {
		t.Fatalf("unexpected kinds order: %v", kinds)
	}
}

func TestLineProducesAccessibleSVG(t *testing.T) {
	EnsureRegistered()
	html, err := Render(KindLine, Dataset{
		Labels: []string{"jan. de 24", "fev. de 24", "mar. de 24"},
		Series: []Series{{Name: "Custo", Values: []float64{1200, 3400, 2100}, Color: PrimaryColor}},
	}, Options{Title: "Tendência mensal", Description: "Custo total por mês", Fill: true})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	out := string(html)
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>") {
		t.Fatalf("expected svg output, got %s", out)
	}
	for _, want := range []string{"aria-labelledby", "Tendência mensal", PrimaryColor, "fev. de 24", "fill-opacity"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestLineRejectsMisalignedSeries(t *testing.T) {
	EnsureRegistered()
	_, err := Render(KindLine, Dataset{Labels: []string{"a", "b"}, Series: []Series{{Values: []float64{1}}}}, Options{})
	if err == nil {
		t.Fatal("expected error for misaligned series")
	}
}

func TestBarUsesPerPointColours(t *testing.T) {
	EnsureRegistered()
	html, err := Render(KindBar, Dataset{
		Labels: []string{"TI", "RH"},
		Series: []Series{{Name: "Custo", Values: []float64{500, -50}, Colors: []string{"#111111", "#222222"}}},
	}, Options{Title: "Centros"})
	if err != nil {
		t.Fatalf("bar renderer error: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "#111111") || !strings.Contains(out, "#222222") {
		t.Fatalf("expected per-bar colours in %s", out)
	}
	if strings.Count(out, "<rect") != 2 {
		t.Fatalf("expected 2 bars, got %d", strings.Count(out, "<rect"))
	}
}

func TestDoughnutSkipsNonPositiveSlices(t *testing.T) {
	EnsureRegistered()
	html, err := Render(KindDoughnut, Dataset{
		Labels: []string{"Cloud", "Viagens", "Zero"},
		Series: []Series{{Values: []float64{75, 25, 0}, Colors: CategoryPalette}},
	}, Options{Title: "Categorias"})
	if err != nil {
		t.Fatalf("doughnut renderer error: %v", err)
	}
	out := string(html)
	if strings.Count(out, "<path") != 2 {
		t.Fatalf("expected 2 slices, got %d", strings.Count(out, "<path"))
	}
	if !strings.Contains(out, "75.0%") || strings.Contains(out, ">Zero<") {
		t.Fatalf("unexpected slices in %s", out)
	}

	full, err := Render(KindDoughnut, Dataset{Labels: []string{"Tudo"}, Series: []Series{{Values: []float64{10}}}}, Options{})
	if err != nil {
		t.Fatalf("single slice error: %v", err)
	}
	if !strings.Contains(string(full), "<circle") {
		t.Fatal("expected full ring to be drawn as circle")
	}

	_, err = Render(KindDoughnut, Dataset{Labels: []string{"x"}, Series: []Series{{Values: []float64{0}}}}, Options{})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestEmptyDatasetRejected(t *testing.T) {
	EnsureRegistered()
	if _, err := Render(KindBar, Dataset{}, Options{}); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestCompactNumber(t *testing.T) {
	cases := map[float64]string{
		850:       "850",
		12_000:    "12 mil",
		1_500_000: "1,5 mi",
	}
	for in, want := range cases {
		if got := compactNumber(in); got != want {
			t.Fatalf("compactNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPaletteRotates(t *testing.T) {
	if PaletteColor(0) != PaletteColor(len(CategoryPalette)) {
		t.Fatal("palette should wrap around")
	}
}
