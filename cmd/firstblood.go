package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/pipeline"
)

var firstBloodCmd = &cobra.Command{
	Use:   "first-blood",
	Short: "Where each round's opening kill was made from, per map",
	Long: `Records the attacker position and side of every round's first valid kill
and writes first_blood_positions.csv (Map, Side, Player, X, Y). With --chart,
one SVG scatter per map is drawn with CT and T openings in separate colours.`,
	Args: cobra.NoArgs,
	RunE: runFirstBlood,
}

func runFirstBlood(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	return s.analyze(cmd, pipeline.NewFirstBlood(s.env))
}
