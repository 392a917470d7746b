package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	demoRoot    string
	outDir      string
	dbPath      string
	logLevel    string
	metricsFile string
	drawCharts  bool
	minRounds   int
)

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cMuted  = color.New(color.Faint)
	cWarn   = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "csround",
	Short: "Round-condition analysis for CS2 replays",
	Long: `Parse a folder of CS2 .dem files, classify every round (economy advantage,
exit frags, first kills, weapon-value duels) and write per-player CSV reports.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "path to a YAML config file")
	pf.StringVar(&demoRoot, "demo-root", "", "directory searched recursively for .dem files")
	pf.StringVar(&outDir, "out-dir", "", "directory CSV files and charts are written to")
	pf.StringVar(&dbPath, "db", "", "path to the run-history SQLite database (empty disables history)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	pf.BoolVar(&drawCharts, "chart", false, "render SVG top-10 charts")
	pf.IntVar(&minRounds, "min-rounds", 0, "minimum rounds for a player to appear in a chart")

	rootCmd.AddCommand(econAdvCmd)
	rootCmd.AddCommand(econPercCmd)
	rootCmd.AddCommand(exitFragCmd)
	rootCmd.AddCommand(firstKillCmd)
	rootCmd.AddCommand(firstBloodCmd)
	rootCmd.AddCommand(weaponDuelCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(killsCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(correlateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(sqlCmd)
}
