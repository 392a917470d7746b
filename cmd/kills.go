package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/pipeline"
)

var killsCmd = &cobra.Command{
	Use:   "kills",
	Short: "Total kills per player, for cross-checking the other reports",
	Args:  cobra.NoArgs,
	RunE:  runKills,
}

func runKills(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	return s.analyze(cmd, pipeline.NewKillCount(s.env))
}
