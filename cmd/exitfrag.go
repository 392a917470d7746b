package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/pipeline"
)

var exitFragCmd = &cobra.Command{
	Use:   "exit-frag",
	Short: "Share of kills made after the round was already decided",
	Long: `A kill is an exit frag when it happens after the round outcome is settled:
a CT kill after the bomb detonated, a T kill after the defuse, or a T kill
between time running out and the official round end. Writes
exit_frag_analysis.csv.`,
	Args: cobra.NoArgs,
	RunE: runExitFrag,
}

func runExitFrag(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	return s.analyze(cmd, pipeline.NewExitFrag(s.env))
}
