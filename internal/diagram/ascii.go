package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

// ChartOptions controls the terminal chart.
type ChartOptions struct {
	Width  int  // Plot columns, excluding the axis labels
	Height int  // Plot rows
	Color  bool // ANSI colours for the Sa and Si series
}

// DefaultChartOptions fits a standard 80 column terminal.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 64, Height: 16}
}

// DrawSpectrumChart draws Sa and Si against period as a terminal chart.
func DrawSpectrumChart(c *spectrum.Curve, opt ChartOptions) string {
	if c.Len() == 0 {
		return ""
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		opt = DefaultChartOptions()
	}

	first, last := c.Periods[0], c.Periods[c.Len()-1]
	options := []asciigraph.Option{
		asciigraph.Height(opt.Height),
		asciigraph.Width(opt.Width),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("Sa, Si (g) vs T = %.2f .. %.2f s", first, last)),
	}
	if opt.Color {
		options = append(options, asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red))
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciigraph.PlotMany([][]float64{c.Sa, c.Si}, options...))
	sb.WriteString("\n\n")
	sb.WriteString("  Upper curve: Sa (elastic)   Lower curve: Si (inelastic)\n")
	sb.WriteString(fmt.Sprintf("  T0 = %.3f s   Tc = %.3f s   TL = %.3f s\n", c.T0, c.Tc, c.TL))

	return sb.String()
}

// DrawRegimeTable summarises the branches of the spectrum with their
// period ranges and acceleration bounds.
func DrawRegimeTable(p spectrum.Params, c *spectrum.Curve) string {
	var sb strings.Builder

	peak := p.Eta * p.Z * p.Fa
	rows := []struct {
		name, law, span string
	}{
		{"Ascending", "Z·Fa·(1 + (η-1)·T/T0)", fmt.Sprintf("0 < T ≤ %.3f", c.T0)},
		{"Plateau", "η·Z·Fa", fmt.Sprintf("%.3f < T ≤ %.3f", c.T0, c.Tc)},
		{"Descending", fmt.Sprintf("η·Z·Fa·(Tc/T)^%.1f", p.Exp), fmt.Sprintf("T > %.3f", c.Tc)},
	}

	sb.WriteString(fmt.Sprintf("  Sa(0) = Z·Fa = %.4f g, plateau η·Z·Fa = %.4f g\n", p.Z*p.Fa, peak))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %-11s %-26s %s s\n", r.name, r.law, r.span))
	}
	sb.WriteString(fmt.Sprintf("  Past TL = %.3f s the descending branch continues unchanged.\n", c.TL))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes and misaligns φ, η and ≤.
func pad(s string, n int) string {
	if d := n - len([]rune(s)); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
