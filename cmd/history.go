package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/report"
)

var historyPipeline string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analysis runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyPipeline, "pipeline", "", "only list runs of this pipeline")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(historyPipeline)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs stored yet. Run an analysis with --db to record one.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID[:min(8, len(r.ID))],
			r.Pipeline,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.DemoRoot,
			fmt.Sprintf("%d/%d", r.DemosFound-r.DemosFailed, r.DemosFound),
			strconv.Itoa(r.KnifeRounds),
			strconv.Itoa(r.Rows),
		})
	}
	report.PrintRows(os.Stdout, []string{"ID", "PIPELINE", "STARTED", "DEMO ROOT", "DEMOS OK", "KNIFE", "ROWS"}, rows)
	cMuted.Fprintln(os.Stdout, "pass an id prefix to 'csround show' or 'csround drop'")
	return nil
}
