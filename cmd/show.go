package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/report"
)

var showPlayer string

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the stored rows of one analysis run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPlayer, "player", "", "only show rows of this player (case-insensitive)")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.ResolveRunID(args[0])
	if err != nil {
		return err
	}
	tbl, err := db.RunTable(id)
	if err != nil {
		return fmt.Errorf("load run: %w", err)
	}

	rows := tbl.Rows
	if col := tbl.Column("Player"); showPlayer != "" && col >= 0 {
		rows = rows[:0:0]
		for _, row := range tbl.Rows {
			if strings.EqualFold(row[col], showPlayer) {
				rows = append(rows, row)
			}
		}
	}

	cHeader.Fprintf(os.Stdout, "\n%s  |  run %s\n", tbl.Name, id)
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "(no rows)")
		return nil
	}
	report.PrintRows(os.Stdout, tbl.Header, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
