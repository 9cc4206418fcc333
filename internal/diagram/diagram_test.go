package diagram

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alexiusacademia/gospectra/internal/nec"
	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

func sample(t *testing.T) *spectrum.Result {
	t.Helper()
	res, err := spectrum.Compute(spectrum.Input{
		Soil:    nec.SoilC,
		Zone:    nec.ZoneV,
		Region:  nec.Sierra,
		Factors: spectrum.StructuralFactors{R: 8, I: 1, PhiP: 0.9, PhiE: 0.9},
		Domain:  spectrum.Domain{Start: 0, End: 4, Samples: 200},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return res
}

func TestDrawSpectrumChart(t *testing.T) {
	res := sample(t)
	out := DrawSpectrumChart(res.Curve, ChartOptions{Width: 40, Height: 10})
	if !strings.Contains(out, "T0 = ") || !strings.Contains(out, "Sa, Si (g)") {
		t.Fatalf("chart missing caption or breakpoints:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("colourless chart contains ANSI escapes")
	}

	if got := DrawSpectrumChart(&spectrum.Curve{}, DefaultChartOptions()); got != "" {
		t.Fatalf("expected empty chart for empty curve, got %q", got)
	}
}

func TestDrawRegimeTable(t *testing.T) {
	res := sample(t)
	out := DrawRegimeTable(res.Params, res.Curve)
	for _, want := range []string{"Ascending", "Plateau", "Descending", "continues unchanged"} {
		if !strings.Contains(out, want) {
			t.Errorf("regime table missing %q:\n%s", want, out)
		}
	}
}

func TestDrawSummaryBoxAligned(t *testing.T) {
	out := DrawSummaryBox("RESULT", []string{"φP = 0.90", "η = 2.48", "plain ascii line"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := utf8.RuneCountInString(lines[0])
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n != width {
			t.Fatalf("misaligned line %q: %d runes, expected %d", l, n, width)
		}
	}
}

func TestExportSpectrum(t *testing.T) {
	res := sample(t)
	dir := t.TempDir()
	note := Annotation{Lines: []string{"Z = 0.40g, R = 8"}}

	for _, name := range []string{"chart.png", "chart.svg", "sub/chart.pdf"} {
		path, err := ExportSpectrum(res.Curve, note, filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Fatalf("%s: expected non-empty file, got %v", name, err)
		}
	}

	path, err := ExportSpectrum(res.Curve, note, filepath.Join(dir, "chart.dat"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, "chart.dat.png") {
		t.Fatalf("expected .png appended, got %s", path)
	}
}

func TestRenderPNG(t *testing.T) {
	res := sample(t)
	b, err := RenderPNG(res.Curve, Annotation{Title: "Block A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}

	if _, err := RenderPNG(&spectrum.Curve{}, Annotation{}); err == nil {
		t.Fatal("expected error for empty curve")
	}
}
