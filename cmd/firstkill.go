package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/pipeline"
)

var firstKillCmd = &cobra.Command{
	Use:   "first-kill",
	Short: "Opening kills and how often they convert into round wins",
	Args:  cobra.NoArgs,
	RunE:  runFirstKill,
}

func runFirstKill(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	return s.analyze(cmd, pipeline.NewFirstKill(s.env))
}
