package diagram

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

// Chart size of exported images
const (
	ImageWidth  = 8 * vg.Inch
	ImageHeight = 6 * vg.Inch
)

// ImageFormats lists the extensions accepted by ExportSpectrum.
var ImageFormats = []string{".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff"}

// Annotation is the parameter text printed in the lower-left corner.
type Annotation struct {
	Title string
	Lines []string
}

var (
	saColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	siColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	t0Color = color.RGBA{R: 0, G: 128, B: 0, A: 180}
	tcColor = color.RGBA{R: 191, G: 0, B: 191, A: 180}
	tlColor = color.RGBA{R: 0, G: 191, B: 191, A: 180}
)

// NewSpectrumPlot builds the Sa/Si chart with dashed markers at T0, Tc and TL.
func NewSpectrumPlot(c *spectrum.Curve, note Annotation) (*plot.Plot, error) {
	if c.Len() == 0 {
		return nil, fmt.Errorf("empty spectrum")
	}

	p := plot.New()
	p.Title.Text = note.Title
	if p.Title.Text == "" {
		p.Title.Text = "NEC Seismic Design Spectrum"
	}
	p.X.Label.Text = "Period T (s)"
	p.Y.Label.Text = "Acceleration Sa (g)"
	p.Add(plotter.NewGrid())

	sa := make(plotter.XYs, c.Len())
	si := make(plotter.XYs, c.Len())
	var top float64
	for i, t := range c.Periods {
		sa[i] = plotter.XY{X: t, Y: c.Sa[i]}
		si[i] = plotter.XY{X: t, Y: c.Si[i]}
		top = max(top, c.Sa[i], c.Si[i])
	}

	saLine, err := plotter.NewLine(sa)
	if err != nil {
		return nil, err
	}
	saLine.LineStyle.Width = vg.Points(1.5)
	saLine.LineStyle.Color = saColor
	p.Add(saLine)
	p.Legend.Add("Sa (elastic)", saLine)

	siLine, err := plotter.NewLine(si)
	if err != nil {
		return nil, err
	}
	siLine.LineStyle.Width = vg.Points(1.5)
	siLine.LineStyle.Color = siColor
	p.Add(siLine)
	p.Legend.Add("Si (inelastic)", siLine)

	// Characteristic period markers
	markers := []struct {
		label string
		at    float64
		col   color.Color
	}{
		{"T0", c.T0, t0Color},
		{"Tc", c.Tc, tcColor},
		{"TL", c.TL, tlColor},
	}
	for _, m := range markers {
		l, err := plotter.NewLine(plotter.XYs{{X: m.at, Y: 0}, {X: m.at, Y: top * 1.05}})
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = m.col
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("%s = %.2f s", m.label, m.at), l)
	}
	p.Legend.Top = true

	first, last := c.Periods[0], c.Periods[c.Len()-1]
	p.X.Min = first
	p.X.Max = max(last, c.TL+0.1)
	p.Y.Min = 0
	p.Y.Max = top * 1.1

	if len(note.Lines) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: p.X.Min + 0.02*(p.X.Max-p.X.Min), Y: 0.04 * p.Y.Max}},
			Labels: []string{strings.Join(note.Lines, "\n")},
		})
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}

	return p, nil
}

// ExportSpectrum writes the spectrum chart to an image file. The format
// follows the extension; unknown extensions get ".png" appended. The
// path actually written is returned.
func ExportSpectrum(c *spectrum.Curve, note Annotation, filename string) (string, error) {
	p, err := NewSpectrumPlot(c, note)
	if err != nil {
		return "", err
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	if !supportedFormat(filepath.Ext(filename)) {
		filename += ".png"
	}
	if err := p.Save(ImageWidth, ImageHeight, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// RenderPNG renders the chart into PNG bytes, e.g. for embedding in a report.
func RenderPNG(c *spectrum.Curve, note Annotation) ([]byte, error) {
	p, err := NewSpectrumPlot(c, note)
	if err != nil {
		return nil, err
	}
	wt, err := p.WriterTo(ImageWidth, ImageHeight, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func supportedFormat(ext string) bool {
	ext = strings.ToLower(ext)
	for _, f := range ImageFormats {
		if ext == f {
			return true
		}
	}
	return false
}
