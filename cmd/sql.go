package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the run-history database",
	Long: `Run an arbitrary SQL query against the run-history database and print results as a table.

Schema overview:
  runs(id, pipeline, started_at, demo_root, demos_found, demos_failed,
    knife_rounds, csv_path, columns)
  run_rows(run_id, row_index, player, data)

data holds one exported CSV row as a JSON object keyed by column name:
  SELECT player, json_extract(data, '$.ExitFragRate_%') FROM run_rows WHERE run_id = '...'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
