package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/gospectra/internal/diagram"
	"github.com/alexiusacademia/gospectra/internal/spectrum"
	"github.com/alexiusacademia/gospectra/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyChart bool
	historyRows  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved spectrum runs",
	Long: `List, show and remove spectra saved with 'gospectra spectrum --save'.

Runs are kept in a local SQLite database. Only the inputs and derived
coefficients are stored; 'history show' recomputes the curve.

Examples:
  gospectra history list
  gospectra history show 3f2a9c1d --chart
  gospectra history rm 3f2a9c1d`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Recompute and print a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Remove a saved run",
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryRm,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRmCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum runs to list (0 for all)")
	historyShowCmd.Flags().BoolVar(&historyChart, "chart", false, "Show terminal chart of Sa and Si")
	historyShowCmd.Flags().IntVar(&historyRows, "rows", 0, "Sampled rows to print")
}

func openHistory() (*store.DB, error) {
	path, err := historyPath()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	runs, err := db.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	total, err := db.Count(ctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No saved runs.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSITE\tR\tI\tTc (s)\tPEAK Sa (g)\tSAVED")
	for _, r := range runs {
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s/%s/%s\t%g\t%g\t%.3f\t%.4f\t%s\n",
			r.ID[:8], name, r.Zone, r.Region, r.Soil, r.R, r.I, r.Tc, r.PeakSa, humanize.Time(r.CreatedAt))
	}
	tw.Flush()

	if total > len(runs) {
		fmt.Fprintf(w, "\nShowing %d of %s runs.\n", len(runs), humanize.Comma(int64(total)))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	in, err := run.Input()
	if err != nil {
		return err
	}
	res, err := spectrum.Compute(in)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n  Run %s, saved %s\n", run.ID, humanize.Time(run.CreatedAt))
	printResult(w, res, historyRows)

	if historyChart {
		fmt.Fprintln(w, diagram.DrawSpectrumChart(res.Curve, diagram.DefaultChartOptions()))
	}
	return nil
}

func runHistoryRm(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	run, err := db.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := db.Delete(ctx, run.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Removed run %s\n", run.ID)
	return nil
}
