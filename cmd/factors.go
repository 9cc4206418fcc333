package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/gospectra/internal/nec"
	"github.com/spf13/cobra"
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "List the response reduction and importance factors",
	Long: `List the selectable response reduction factors R by structural system
and importance factors I by occupancy category.

Any label printed here can be passed back to --r or --i of the
spectrum command, e.g. --r "8.0 - Special moment-resisting frames".`,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		printHeader(w, "STRUCTURAL FACTORS - NEC-SE-DS 2015")

		printSection(w, "RESPONSE REDUCTION FACTOR R")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, o := range nec.ReductionOptions {
			fmt.Fprintf(tw, "  %.1f\t%s\n", o.Value, o.Description)
		}
		tw.Flush()
		fmt.Fprintln(w)

		printSection(w, "IMPORTANCE FACTOR I")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, o := range nec.ImportanceOptions {
			fmt.Fprintf(tw, "  %.1f\t%s\n", o.Value, o.Description)
		}
		tw.Flush()
		fmt.Fprintln(w)
	},
}

func init() {
	rootCmd.AddCommand(factorsCmd)
}
