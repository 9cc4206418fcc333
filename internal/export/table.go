package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

// Source is the attribution written into tabular exports and reports.
const Source = "NEC-SE-DS 2015 design spectrum - gospectra"

// Metadata describes the inputs of an exported spectrum.
type Metadata struct {
	Name   string
	Zone   string // e.g. "V (0.40g)"
	Region string
	Soil   string
	R      float64
	I      float64
	PhiP   float64
	PhiE   float64
}

// MetadataFor builds the metadata block of a computed spectrum.
func MetadataFor(res *spectrum.Result) Metadata {
	return Metadata{
		Name:   res.Name,
		Zone:   res.Site.Zone.String() + " (" + formatFloat(res.Site.Z, 2) + "g)",
		Region: res.Site.Region.Label(),
		Soil:   res.Site.Soil.String() + " - " + res.Site.Soil.Description(),
		R:      res.Factors.R,
		I:      res.Factors.I,
		PhiP:   res.Factors.PhiP,
		PhiE:   res.Factors.PhiE,
	}
}

// Rows returns the parameter block as label/value rows.
func (m Metadata) Rows() [][2]string {
	rows := [][2]string{
		{"Seismic Zone", m.Zone},
		{"Region", m.Region},
		{"Soil Type", m.Soil},
		{"Factor R", formatFloat(m.R, 2)},
		{"Factor I", formatFloat(m.I, 2)},
		{"Factor φP", formatFloat(m.PhiP, 2)},
		{"Factor φE", formatFloat(m.PhiE, 2)},
		{"Source", Source},
	}
	if m.Name != "" {
		rows = append([][2]string{{"Project", m.Name}}, rows...)
	}
	return rows
}

// WriteTable writes the spectrum as CSV: a "Spectrum" block with the
// period, Sa, Se and Si columns, a blank line, then a "Parameters" block.
func WriteTable(w io.Writer, c *spectrum.Curve, meta Metadata) error {
	cw := csv.NewWriter(w)

	cw.Write([]string{"Spectrum"})
	cw.Write([]string{"Period (s)", "Sa (g)", "Se (g)", "Si (g)"})
	for i, t := range c.Periods {
		cw.Write([]string{
			formatFloat(t, 4),
			formatFloat(c.Sa[i], 6),
			formatFloat(c.Se[i], 6),
			formatFloat(c.Si[i], 6),
		})
	}

	cw.Write(nil)
	cw.Write([]string{"Parameters"})
	cw.Write([]string{"Parameter", "Value"})
	for _, row := range meta.Rows() {
		cw.Write([]string{row[0], row[1]})
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
