package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/pipeline"
)

var econPercCmd = &cobra.Command{
	Use:   "econ-perc",
	Short: "Each player's share of their team's starting weapon value, per event",
	Long: `Prices every player's inventory right after freeze time and records it as a
percentage of the team total. Results are grouped by event (the first folder
under the demo root) with an extra "overall" row per player. Writes
weapon_economy_percentage.csv.`,
	Args: cobra.NoArgs,
	RunE: runEconPerc,
}

func runEconPerc(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	return s.analyze(cmd, pipeline.NewEconPerc(s.env, s.cfg.Analysis.SnapshotWindow))
}
