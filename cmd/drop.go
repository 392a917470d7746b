package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd deletes one stored run.
var dropCmd = &cobra.Command{
	Use:   "drop <run-id>",
	Short: "Delete a stored analysis run",
	Long:  "Permanently delete one run and its rows from the run-history database. CSV files already written are left alone.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.ResolveRunID(args[0])
	if err != nil {
		return err
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete run: %s\n", id)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	ok, err := db.DropRun(id)
	if err != nil {
		return fmt.Errorf("drop run: %w", err)
	}
	if !ok {
		fmt.Fprintln(os.Stdout, "Run does not exist, nothing to drop.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", id)
	return nil
}
