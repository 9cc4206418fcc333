package cmd

import (
	"github.com/alexiusacademia/gospectra/internal/nec"
	"github.com/spf13/cobra"
)

var (
	paramsSoil   string
	paramsZone   string
	paramsRegion string
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Resolve site coefficients for a soil type, zone and region",
	Long: `Look up the NEC-SE-DS site amplification coefficients Fa, Fd and Fs,
the zone factor Z, the region ratio η and the characteristic periods
T0, Tc and TL without generating a spectrum.

Examples:
  gospectra params --soil D --zone V --region Sierra
  gospectra params -s E -z VI -r "Oriente"`,
	RunE: runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)

	paramsCmd.Flags().StringVarP(&paramsSoil, "soil", "s", "C", "Soil type (A-E)")
	paramsCmd.Flags().StringVarP(&paramsZone, "zone", "z", "VI", "Seismic zone (I-VI)")
	paramsCmd.Flags().StringVarP(&paramsRegion, "region", "r", "Costa", "Region (Costa, Sierra, Oriente)")
}

func runParams(cmd *cobra.Command, args []string) error {
	soil, err := nec.ParseSoilType(paramsSoil)
	if err != nil {
		return err
	}
	zone, err := nec.ParseZone(paramsZone)
	if err != nil {
		return err
	}
	region, err := nec.ParseRegion(paramsRegion)
	if err != nil {
		return err
	}
	site, err := nec.Resolve(soil, zone, region)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printHeader(w, "SITE PARAMETERS - NEC-SE-DS 2015")
	printSite(w, site)
	return nil
}
