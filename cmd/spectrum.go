package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gospectra/internal/diagram"
	"github.com/alexiusacademia/gospectra/internal/export"
	"github.com/alexiusacademia/gospectra/internal/nec"
	"github.com/alexiusacademia/gospectra/internal/spectrum"
	"github.com/alexiusacademia/gospectra/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Site inputs
	specName   string
	specSoil   string
	specZone   string
	specRegion string

	// Structural factors
	specR    string
	specI    string
	specPhiP float64
	specPhiE float64

	// Period domain
	specStart   float64
	specEnd     float64
	specSamples int

	specFile string
	specRows int

	// Output options
	specChart  bool
	specColor  bool
	specImage  string
	specETABS  string
	specCSV    string
	specReport string
	specSave   bool
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Generate the elastic and inelastic design spectra",
	Long: `Generate the NEC-SE-DS 2015 design spectrum Sa(T) and the inelastic
spectrum Si(T) = I·Sa/(R·φP·φE) over a uniform period range.

Inputs come from flags, or from a JSON file with --file:
  {"name": "Block A", "soil": "D", "zone": "V", "region": "Sierra",
   "r": 8, "i": 1.3, "phi_p": 0.9, "phi_e": 1,
   "domain": {"start": 0, "end": 6, "samples": 1000}}

Examples:
  # Soil C, zone VI, coast, special moment frames
  gospectra spectrum --soil C --zone VI --region Costa --r 8 --i 1

  # Show a terminal chart and write an ETABS function file
  gospectra spectrum -s D -z V --region Sierra --r 6 --i 1.3 --chart --etabs spectrum.txt

  # Full report with chart image, saved to the history
  gospectra spectrum --file block-a.json --report block-a.pdf -o block-a.png --save`,
	RunE: runSpectrum,
}

func init() {
	rootCmd.AddCommand(spectrumCmd)

	f := spectrumCmd.Flags()
	f.StringVarP(&specName, "name", "n", "", "Project name")
	f.StringVarP(&specSoil, "soil", "s", "C", "Soil type (A-E)")
	f.StringVarP(&specZone, "zone", "z", "VI", "Seismic zone (I-VI)")
	f.StringVar(&specRegion, "region", "Costa", "Region (Costa, Sierra, Oriente)")

	f.StringVar(&specR, "r", "8", "Response reduction factor R (value or label)")
	f.StringVar(&specI, "i", "1", "Importance factor I (value or label)")
	f.Float64Var(&specPhiP, "phip", 1, "Plan irregularity factor φP")
	f.Float64Var(&specPhiE, "phie", 1, "Elevation irregularity factor φE")

	d := spectrum.DefaultDomain()
	f.Float64Var(&specStart, "start", d.Start, "First period (s)")
	f.Float64Var(&specEnd, "end", d.End, "Last period (s)")
	f.IntVar(&specSamples, "samples", d.Samples, "Number of sampled periods")

	f.StringVarP(&specFile, "file", "f", "", "Read inputs from a JSON file instead of flags")
	f.IntVar(&specRows, "rows", export.ReportRows, "Sampled rows to print (0 to hide)")

	f.BoolVar(&specChart, "chart", false, "Show terminal chart of Sa and Si")
	f.BoolVar(&specColor, "color", false, "Colour the terminal chart")
	f.StringVarP(&specImage, "output", "o", "", "Export chart to file (png, svg, pdf)")
	f.StringVar(&specETABS, "etabs", "", "Write ETABS spectrum function file")
	f.StringVar(&specCSV, "csv", "", "Write CSV table with parameters")
	f.StringVar(&specReport, "report", "", "Write PDF report")
	f.BoolVar(&specSave, "save", false, "Save the run to the history database")
}

// spectrumInput builds the input from --file or the flags.
func spectrumInput() (spectrum.Input, error) {
	if specFile != "" {
		in, err := spectrum.LoadInput(specFile)
		if err != nil {
			return spectrum.Input{}, err
		}
		if specName != "" {
			in.Name = specName
		}
		return in, nil
	}

	var (
		in  = spectrum.Input{Name: specName}
		err error
	)
	if in.Soil, err = nec.ParseSoilType(specSoil); err != nil {
		return in, err
	}
	if in.Zone, err = nec.ParseZone(specZone); err != nil {
		return in, err
	}
	if in.Region, err = nec.ParseRegion(specRegion); err != nil {
		return in, err
	}
	r, err := nec.ParseFactor(specR)
	if err != nil {
		return in, fmt.Errorf("--r: %w", err)
	}
	i, err := nec.ParseFactor(specI)
	if err != nil {
		return in, fmt.Errorf("--i: %w", err)
	}
	in.Factors = spectrum.StructuralFactors{R: r, I: i, PhiP: specPhiP, PhiE: specPhiE}
	in.Domain = spectrum.Domain{Start: specStart, End: specEnd, Samples: specSamples}
	return in, nil
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	in, err := spectrumInput()
	if err != nil {
		return err
	}
	res, err := spectrum.Compute(in)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printResult(w, res, specRows)

	if specChart {
		opt := diagram.DefaultChartOptions()
		opt.Color = specColor
		fmt.Fprintln(w, diagram.DrawSpectrumChart(res.Curve, opt))
		fmt.Fprintln(w)
	}

	if err := writeOutputs(w, res); err != nil {
		return err
	}

	if specSave {
		path, err := historyPath()
		if err != nil {
			return err
		}
		db, err := store.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := db.Save(context.Background(), res)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  ✓ Saved run %s to %s\n", run.ID[:8], path)
	}
	return nil
}

func annotation(res *spectrum.Result) diagram.Annotation {
	return diagram.Annotation{
		Title: res.Name,
		Lines: []string{
			fmt.Sprintf("Zone %s (Z = %.2fg), %s, soil %s", res.Site.Zone, res.Site.Z, res.Site.Region, res.Site.Soil),
			fmt.Sprintf("R = %g, I = %g, φP = %g, φE = %g", res.Factors.R, res.Factors.I, res.Factors.PhiP, res.Factors.PhiE),
		},
	}
}

func writeOutputs(w io.Writer, res *spectrum.Result) error {
	if specImage != "" {
		path, err := diagram.ExportSpectrum(res.Curve, annotation(res), specImage)
		if err != nil {
			return fmt.Errorf("export chart: %w", err)
		}
		printWritten(w, "Chart", path)
	}

	if specETABS != "" {
		if err := writeFile(specETABS, func(f io.Writer) error {
			return export.WriteETABS(f, res.Curve)
		}); err != nil {
			return fmt.Errorf("export ETABS: %w", err)
		}
		printWritten(w, "ETABS function", specETABS)
	}

	if specCSV != "" {
		if err := writeFile(specCSV, func(f io.Writer) error {
			return export.WriteTable(f, res.Curve, export.MetadataFor(res))
		}); err != nil {
			return fmt.Errorf("export table: %w", err)
		}
		printWritten(w, "Table", specCSV)
	}

	if specReport != "" {
		png, err := diagram.RenderPNG(res.Curve, annotation(res))
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		var buf bytes.Buffer
		if err := export.WriteReport(&buf, res, export.MetadataFor(res), png); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		if err := writeFile(specReport, func(f io.Writer) error {
			_, err := buf.WriteTo(f)
			return err
		}); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		printWritten(w, "Report", specReport)
	}
	return nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
