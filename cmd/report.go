package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gospectra/internal/diagram"
	"github.com/alexiusacademia/gospectra/internal/export"
	"github.com/alexiusacademia/gospectra/internal/nec"
	"github.com/alexiusacademia/gospectra/internal/spectrum"
	"github.com/dustin/go-humanize"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────"
)

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, lightRule)
}

func printSite(w io.Writer, site nec.Site) {
	printSection(w, "SITE")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Seismic zone:\t%s (Z = %.2fg)\n", site.Zone, site.Z)
	fmt.Fprintf(tw, "  Region:\t%s (η = %.2f)\n", site.Region.Label(), site.Eta)
	fmt.Fprintf(tw, "  Soil type:\t%s - %s\n", site.Soil, site.Soil.Description())
	tw.Flush()
	fmt.Fprintln(w)

	printSection(w, "SITE COEFFICIENTS")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Fa (short period):\t%.3f\n", site.Amp.Fa)
	fmt.Fprintf(tw, "  Fd (displacement):\t%.3f\n", site.Amp.Fd)
	fmt.Fprintf(tw, "  Fs (nonlinear soil):\t%.3f\n", site.Amp.Fs)
	fmt.Fprintf(tw, "  r (decay exponent):\t%.1f\n", site.Amp.R)
	tw.Flush()
	fmt.Fprintln(w)

	t0, tc, tl := spectrum.CharacteristicPeriods(site.Amp.Fa, site.Amp.Fd, site.Amp.Fs)
	printSection(w, "CHARACTERISTIC PERIODS")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  T0 = 0.10·Fs·Fd/Fa:\t%.4f s\n", t0)
	fmt.Fprintf(tw, "  Tc = 0.55·Fs·Fd/Fa:\t%.4f s\n", tc)
	fmt.Fprintf(tw, "  TL = 2.4·Fd:\t%.4f s\n", tl)
	tw.Flush()
	fmt.Fprintln(w)
}

// printResult writes the full text report of a computed spectrum.
func printResult(w io.Writer, res *spectrum.Result, rows int) {
	printHeader(w, "SEISMIC DESIGN SPECTRUM - NEC-SE-DS 2015")

	if res.Name != "" {
		fmt.Fprintf(w, "  Project: %s\n\n", res.Name)
	}
	printSite(w, res.Site)

	printSection(w, "STRUCTURAL FACTORS")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Response reduction (R):\t%.2f\n", res.Factors.R)
	fmt.Fprintf(tw, "  Importance (I):\t%.2f\n", res.Factors.I)
	fmt.Fprintf(tw, "  Plan irregularity (φP):\t%.2f\n", res.Factors.PhiP)
	fmt.Fprintf(tw, "  Elevation irregularity (φE):\t%.2f\n", res.Factors.PhiE)
	fmt.Fprintf(tw, "  Domain:\t%g - %g s, %d samples\n", res.Domain.Start, res.Domain.End, res.Domain.Samples)
	tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprint(w, diagram.DrawRegimeTable(res.Params, res.Curve))
	fmt.Fprintln(w)

	tPeak, peak := res.Curve.Peak()
	fmt.Fprint(w, diagram.DrawSummaryBox("DESIGN SPECTRUM", []string{
		fmt.Sprintf("Plateau Sa = η·Z·Fa = %.4f g", res.Params.Eta*res.Params.Z*res.Params.Fa),
		fmt.Sprintf("Peak sampled Sa = %.4f g at T = %.3f s", peak, tPeak),
		fmt.Sprintf("Si/Sa = I/(R·φP·φE) = %.4f", res.Params.ReductionRatio()),
	}))
	fmt.Fprintln(w)

	if rows > 0 {
		printSamples(w, res.Curve, rows)
	}
}

func printSamples(w io.Writer, c *spectrum.Curve, rows int) {
	printSection(w, "SAMPLED VALUES")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "  T (s)\tSa (g)\tSi (g)\t")
	for _, i := range export.DecimatedRows(c.Len(), rows) {
		fmt.Fprintf(tw, "  %.3f\t%.4f\t%.4f\t\n", c.Periods[i], c.Sa[i], c.Si[i])
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// printWritten reports an exported file with its size.
func printWritten(w io.Writer, kind, path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(w, "  ✓ %s written to: %s\n", kind, path)
		return
	}
	fmt.Fprintf(w, "  ✓ %s written to: %s (%s)\n", kind, path, humanize.Bytes(uint64(info.Size())))
}
