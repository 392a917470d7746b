package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/csround/internal/classify"
	"github.com/pable/csround/internal/model"
	"github.com/pable/csround/internal/parser"
	"github.com/pable/csround/internal/report"
	"github.com/pable/csround/internal/warmup"
)

var roundsSide string

// roundsCmd prints how every round of one demo was classified.
var roundsCmd = &cobra.Command{
	Use:   "rounds <demo.dem>",
	Short: "Per-round classification drill-down for one demo",
	Args:  cobra.ExactArgs(1),
	RunE:  runRounds,
}

func init() {
	roundsCmd.Flags().StringVar(&roundsSide, "side", "", "only show rounds won by this side: CT or T")
	roundsCmd.Flags().Int("threshold", 0, "economy advantage threshold in dollars (default from config)")
}

func runRounds(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, map[string]string{"analysis.econ_threshold": "threshold"})
	if err != nil {
		return err
	}
	defer s.log.Sync()

	demoPath := args[0]
	var sideFilter model.Side
	if roundsSide != "" {
		if sideFilter = model.ParseSide(roundsSide); !sideFilter.Playing() {
			return fmt.Errorf("invalid --side %q: want CT or T", roundsSide)
		}
	}

	s.log.Infow("Parsing", "demo", filepath.Base(demoPath))
	rep, err := parser.ParseReplay(demoPath, parser.Options{SnapshotWindow: s.cfg.Analysis.SnapshotWindow})
	if err != nil {
		return fmt.Errorf("parse demo: %w", err)
	}
	rep, removed := warmup.FilterKnifeRound(rep)

	cHeader.Fprintf(os.Stdout, "\n%s  |  %s  |  %d rounds\n", rep.Name, rep.MapName, len(rep.Rounds))
	if removed {
		cWarn.Fprintln(os.Stdout, "knife round removed")
	}

	names := s.env.Names.Normalize
	ticks := rep.TicksByRound()
	kills := rep.KillsByRound()
	bombs := classify.BombTicksByRound(rep.Bombs)
	window, threshold := s.cfg.Analysis.SnapshotWindow, s.cfg.Analysis.EconThreshold

	var rows [][]string
	for _, r := range rep.Rounds {
		if sideFilter != model.SideUnknown && r.Winner != sideFilter {
			continue
		}
		snap := classify.EconomySnapshot(ticks[r.Number], r.FreezeEndTick, window, names, classify.EquipValue)
		ctCond, _ := classify.ClassifyEconomy(snap.CTTotal, snap.TTotal, threshold)
		if snap.Empty() {
			ctCond = "-"
		}

		opener := "-"
		if fk, ok := classify.FirstKill(kills[r.Number]); ok {
			opener = fmt.Sprintf("%s (%s)", names(fk.AttackerName), fk.AttackerSide)
		}
		var exits []string
		for _, k := range kills[r.Number] {
			if k.AttackerName != "" && classify.IsExitFrag(k.AttackerSide, k.Tick, r, bombs[r.Number]) {
				exits = append(exits, names(k.AttackerName))
			}
		}

		rows = append(rows, []string{
			strconv.Itoa(r.Number), r.Winner.String(), string(r.Reason),
			"$" + strconv.Itoa(snap.CTTotal), "$" + strconv.Itoa(snap.TTotal), string(ctCond),
			opener, strconv.Itoa(len(kills[r.Number])), strings.Join(exits, ", "),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No rounds match the given filters.")
		return nil
	}
	report.PrintRows(os.Stdout, []string{"ROUND", "WINNER", "REASON", "CT $", "T $", "CT ECON", "FIRST KILL", "KILLS", "EXIT FRAGS"}, rows)
	return nil
}
