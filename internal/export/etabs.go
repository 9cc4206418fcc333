package export

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

// ETABSHeader is the title line of the response spectrum function file.
const ETABSHeader = "Seismic Design Spectrum"

// Pair is one row of a period-acceleration function.
type Pair struct {
	Period       float64
	Acceleration float64
}

// ETABSPairs returns (T, Si) pairs sorted by period with the (0, Si[0])
// anchor prepended when the curve does not start at T = 0.
func ETABSPairs(c *spectrum.Curve) []Pair {
	pairs := make([]Pair, 0, c.Len()+1)
	for i, t := range c.Periods {
		pairs = append(pairs, Pair{Period: t, Acceleration: c.Si[i]})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Period < pairs[j].Period
	})

	if len(pairs) > 0 && pairs[0].Period != 0 {
		pairs = append([]Pair{{Period: 0, Acceleration: c.Si[0]}}, pairs...)
	}
	return pairs
}

// WriteETABS writes the inelastic spectrum as a two-column text file that
// ETABS imports as a "Response Spectrum Function from File" (period vs
// acceleration in g, one header line).
func WriteETABS(w io.Writer, c *spectrum.Curve) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ETABSHeader)
	for _, p := range ETABSPairs(c) {
		fmt.Fprintf(bw, "%.4f    %.4f\n", p.Period, p.Acceleration)
	}
	return bw.Flush()
}
