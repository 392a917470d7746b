package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/config"
	"github.com/pable/csround/internal/pipeline"
)

var weaponDuelCmd = &cobra.Command{
	Use:   "weapon-duel",
	Short: "Kills and deaths by the price gap between the two weapons",
	Long: `Compares the killer's and the victim's active weapon prices. A gap larger than
--threshold makes the kill a higher or lower economy kill. Every player gets one
row with all duels and one with AWP duels left out. Writes
weapon_duel_economy_analysis.csv.`,
	Args: cobra.NoArgs,
	RunE: runWeaponDuel,
}

func init() {
	weaponDuelCmd.Flags().Int("threshold", config.DefaultDuelThreshold, "weapon price gap in dollars within which a duel is even")
}

func runWeaponDuel(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, map[string]string{"analysis.duel_threshold": "threshold"})
	if err != nil {
		return err
	}
	return s.analyze(cmd, pipeline.NewWeaponDuel(s.env, s.cfg.Analysis.DuelThreshold))
}
