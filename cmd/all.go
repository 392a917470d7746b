package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/pipeline"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every analysis over a single pass of the replays",
	Long: `Parses each replay once and feeds it to econ-adv, econ-perc, exit-frag,
first-kill and weapon-duel in turn. Thresholds come from the config file or
its defaults.`,
	Args: cobra.NoArgs,
	RunE: runAll,
}

func runAll(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	a := s.cfg.Analysis
	return s.analyze(cmd,
		pipeline.NewEconAdv(s.env, a.EconThreshold, a.SnapshotWindow),
		pipeline.NewEconPerc(s.env, a.SnapshotWindow),
		pipeline.NewExitFrag(s.env),
		pipeline.NewFirstKill(s.env),
		pipeline.NewWeaponDuel(s.env, a.DuelThreshold),
	)
}
