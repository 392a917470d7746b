package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/config"
	"github.com/pable/csround/internal/pipeline"
)

var econAdvCmd = &cobra.Command{
	Use:   "econ-adv",
	Short: "K/D split by the team's starting economy (advantage, equal, disadvantage)",
	Long: `For every round, sum each team's equipment value right after freeze time and
classify the CT side as ahead, even or behind by more than --threshold dollars.
Kills, deaths and rounds are then credited to each player under their side's
condition. Writes weapon_advantage_analysis.csv.`,
	Args: cobra.NoArgs,
	RunE: runEconAdv,
}

func init() {
	econAdvCmd.Flags().Int("threshold", config.DefaultEconThreshold, "team value gap in dollars that counts as an advantage")
}

func runEconAdv(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, map[string]string{"analysis.econ_threshold": "threshold"})
	if err != nil {
		return err
	}
	a := s.cfg.Analysis
	return s.analyze(cmd, pipeline.NewEconAdv(s.env, a.EconThreshold, a.SnapshotWindow))
}
