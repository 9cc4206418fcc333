package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gospectra/internal/version"
	"github.com/spf13/cobra"
)

// Global flags
var dbPath string

var rootCmd = &cobra.Command{
	Use:   "gospectra",
	Short: "NEC Seismic Design Spectrum Tool",
	Long: `gospectra - Go Seismic Design Spectrum Generator

A CLI tool for the elastic and inelastic acceleration design spectra
of the Ecuadorian Construction Standard (NEC-SE-DS 2015).

This tool helps structural engineers:
  - Resolve site coefficients Fa, Fd, Fs from soil type and seismic zone
  - Generate the Sa and Si spectra for given R, I, φP and φE
  - Export ETABS spectrum functions, CSV tables, charts and PDF reports
  - Keep a local history of computed spectra
  - Serve spectra over HTTP`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   %-56s║\n", version.String())
		fmt.Println("  ║   Go Seismic Design Spectrum Generator (NEC-SE-DS)        ║")
		fmt.Printf("  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Site coefficients for soil types A-E and zones I-VI")
		fmt.Println("    • Elastic (Sa) and inelastic (Si) design spectra")
		fmt.Println("    • ETABS, CSV, image and PDF exports")
		fmt.Println("    • Run history and an HTTP service")
		fmt.Println()
		fmt.Println("  Use 'gospectra --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "History database path (default $GOSPECTRA_DB or ~/.gospectra/history.db)")
}

// historyPath resolves the history database location.
func historyPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := os.Getenv("GOSPECTRA_DB"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	dir := filepath.Join(home, ".gospectra")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
