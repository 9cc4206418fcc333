package export

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

// ReportRows is the approximate number of rows in the report data table.
const ReportRows = 20

// Report colours
var (
	primary   = [3]int{31, 111, 235}
	secondary = [3]int{13, 17, 23}
	shade     = [3]int{246, 248, 250}
)

// DecimatedRows picks about n evenly spaced sample indices for tabulation.
func DecimatedRows(samples, n int) []int {
	if samples <= 0 || n <= 0 {
		return nil
	}
	step := samples / n
	if step < 1 {
		step = 1
	}
	var idx []int
	for i := 0; i < samples; i += step {
		idx = append(idx, i)
	}
	return idx
}

// WriteReport writes a PDF design report: input parameters, computed
// NEC parameters, the chart (PNG bytes, optional) and a decimated table
// of the spectrum.
func WriteReport(w io.Writer, res *spectrum.Result, meta Metadata, chartPNG []byte) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("Seismic Design Report", true)
	pdf.SetCreator("gospectra", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(primary[0], primary[1], primary[2])
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(width, 12, tr("Seismic Design Report"), "", 1, "C", true, 0, "")
		pdf.Ln(6)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d | %s", pdf.PageNo(), Source)), "", 0, "C", false, 0, "")
	})

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(primary[0], primary[1], primary[2])
		pdf.CellFormat(width, 9, tr(text), "", 1, "L", false, 0, "")
	}
	grid := func(rows [][]string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(secondary[0], secondary[1], secondary[2])
		pdf.SetDrawColor(211, 211, 211)
		for _, row := range rows {
			cw := width / float64(len(row))
			for i, cell := range row {
				shaded := i%2 == 0
				if shaded {
					pdf.SetFillColor(shade[0], shade[1], shade[2])
				}
				pdf.CellFormat(cw, 7, tr(cell), "1", 0, "L", shaded, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	pdf.AddPage()

	if meta.Name != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(secondary[0], secondary[1], secondary[2])
		pdf.CellFormat(width, 8, tr(meta.Name), "", 1, "L", false, 0, "")
	}

	heading("1. Input Parameters")
	grid([][]string{
		{"Seismic Zone:", meta.Zone, "Region:", meta.Region},
		{"Soil Type:", meta.Soil, "Factor R:", formatFloat(meta.R, 2)},
		{"Factor I:", formatFloat(meta.I, 2), "Factor phiP:", formatFloat(meta.PhiP, 2)},
		{"Factor phiE:", formatFloat(meta.PhiE, 2), "", ""},
	})

	c := res.Curve
	amp := res.Site.Amp
	heading("2. Computed Seismic Parameters (NEC-SE-DS)")
	grid([][]string{
		{"Fa:", formatFloat(amp.Fa, 3), "Fd:", formatFloat(amp.Fd, 3), "Fs:", formatFloat(amp.Fs, 3)},
		{"eta:", formatFloat(res.Site.Eta, 3), "Z (g):", formatFloat(res.Site.Z, 2), "r:", formatFloat(amp.R, 1)},
		{"T0 (s):", formatFloat(c.T0, 3), "Tc (s):", formatFloat(c.Tc, 3), "TL (s):", formatFloat(c.TL, 3)},
	})

	if len(chartPNG) > 0 {
		heading("3. Design Spectrum")
		opt := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("spectrum", opt, bytes.NewReader(chartPNG))
		imgW := width * 0.9
		pdf.ImageOptions("spectrum", left+(width-imgW)/2, pdf.GetY(), imgW, imgW*2/3, true, opt, 0, "")
		pdf.Ln(4)
	}

	heading("4. Spectrum Data")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(primary[0], primary[1], primary[2])
	pdf.SetTextColor(255, 255, 255)
	colW := width / 4
	for _, h := range []string{"Period (s)", "Sa (g)", "Se (g)", "Si (g)"} {
		pdf.CellFormat(colW, 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(secondary[0], secondary[1], secondary[2])
	pdf.SetFillColor(shade[0], shade[1], shade[2])
	for _, i := range DecimatedRows(c.Len(), ReportRows) {
		pdf.CellFormat(colW, 6, formatFloat(c.Periods[i], 3), "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW, 6, formatFloat(c.Sa[i], 4), "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW, 6, formatFloat(c.Se[i], 4), "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW, 6, formatFloat(c.Si[i], 4), "1", 0, "C", true, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	return pdf.Output(w)
}
