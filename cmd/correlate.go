package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/correlate"
	"github.com/pable/csround/internal/report"
)

var (
	correlateEconomy     string
	correlatePerformance string
	correlatePlayers     []string
)

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Fit economy share against event rating and placement per player",
	Long: `Joins weapon_economy_percentage.csv with a performance CSV on (Player, Event)
and fits a least-squares line of rating and of inverted placement against the
player's share of team weapon value. The performance CSV needs the columns
Player, Event, Rating and Placement. Placement ranges such as "3-4" count as
their midpoint. Players with fewer than three events are listed but not fitted.`,
	Args: cobra.NoArgs,
	RunE: runCorrelate,
}

func init() {
	correlateCmd.Flags().StringVar(&correlateEconomy, "economy", "", "economy CSV (default <out-dir>/weapon_economy_percentage.csv)")
	correlateCmd.Flags().StringVar(&correlatePerformance, "performance", "player_performance.csv", "per-event performance CSV")
	correlateCmd.Flags().StringSliceVar(&correlatePlayers, "player", nil, "only fit these players (repeatable)")
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	econPath := correlateEconomy
	if econPath == "" {
		econPath = filepath.Join(s.cfg.Output.Dir, "weapon_economy_percentage.csv")
	}
	economy, err := readInput("economy", econPath)
	if err != nil {
		return err
	}
	performance, err := readInput("performance", correlatePerformance)
	if err != nil {
		return err
	}

	points, err := correlate.Join(economy, performance)
	if err != nil {
		return err
	}
	if len(correlatePlayers) > 0 {
		keep := make(map[string]bool, len(correlatePlayers))
		for _, p := range correlatePlayers {
			keep[strings.ToLower(p)] = true
		}
		for p := range points {
			if !keep[strings.ToLower(p)] {
				delete(points, p)
			}
		}
	}
	if len(points) == 0 {
		fmt.Fprintln(os.Stdout, "No (Player, Event) pairs matched between the two files.")
		return nil
	}

	results := correlate.Analyze(points)
	s.log.Infow("correlation fitted", "players", len(results), "economy", econPath, "performance", correlatePerformance)

	cHeader.Fprintln(os.Stdout, "\nEconomy share vs results")
	var rows [][]string
	var thin []string
	for _, r := range results {
		if r.Rating == nil && r.Placement == nil {
			thin = append(thin, fmt.Sprintf("%s (%d)", r.Player, r.Events))
			continue
		}
		row := []string{r.Player, strconv.Itoa(r.Events)}
		row = append(row, fitCells(r.Rating)...)
		row = append(row, fitCells(r.Placement)...)
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		report.PrintRows(os.Stdout, []string{
			"PLAYER", "EVENTS",
			"RATING SLOPE", "RATING R²", "RATING p",
			"PLACE SLOPE", "PLACE R²", "PLACE p",
		}, rows)
		cMuted.Fprintln(os.Stdout, "slope is change per percentage point of team value; p < 0.05 is marked *")
	}
	if len(thin) > 0 {
		cWarn.Fprintf(os.Stdout, "too few events to fit (need %d): %s\n", correlate.MinPoints, strings.Join(thin, ", "))
	}
	return nil
}

func readInput(kind, path string) (report.Table, error) {
	tbl, err := report.ReadCSV(path)
	if errors.Is(err, fs.ErrNotExist) {
		return report.Table{}, fmt.Errorf("%s CSV %s not found", kind, path)
	}
	if err != nil {
		return report.Table{}, fmt.Errorf("read %s CSV: %w", kind, err)
	}
	return tbl, nil
}

func fitCells(f *correlate.Fit) []string {
	if f == nil {
		return []string{"-", "-", "-"}
	}
	p := strconv.FormatFloat(f.P, 'f', 3, 64)
	if f.Significant() {
		p += " *"
	}
	return []string{
		strconv.FormatFloat(f.Slope, 'f', 4, 64),
		strconv.FormatFloat(f.R2, 'f', 3, 64),
		p,
	}
}
