package pipeline

import (
	"fmt"
	"io"
	"sort"

	"github.com/pable/csround/internal/aggregator"
	"github.com/pable/csround/internal/classify"
	"github.com/pable/csround/internal/model"
	"github.com/pable/csround/internal/report"
)

// AWP filters of the weapon-duel export. exclude_awp drops every duel where
// either player held the AWP.
const (
	IncludeAWP = "include_awp"
	ExcludeAWP = "exclude_awp"
)

const duelSummaryMinRounds = 50

var (
	awpFilters     = []string{ExcludeAWP, IncludeAWP} // export order
	duelCategories = []classify.DuelCategory{classify.DuelHigher, classify.DuelEqual, classify.DuelLower}
)

func duelBucket(filter string, c classify.DuelCategory) aggregator.Category {
	return aggregator.Category(filter + "/" + c.String())
}

func filterTotal(filter string) aggregator.Category {
	return aggregator.Category(filter + "/total")
}

// WeaponDuel compares the active weapon prices of killer and victim.
type WeaponDuel struct {
	env       Env
	threshold int
	table     *aggregator.Table
	rounds    *aggregator.Participation
}

// NewWeaponDuel returns the weapon-duel pipeline.
func NewWeaponDuel(env Env, threshold int) *WeaponDuel {
	return &WeaponDuel{env: env, threshold: threshold, table: aggregator.New(), rounds: aggregator.NewParticipation()}
}

// Name identifies the pipeline in logs, metrics and run history.
func (p *WeaponDuel) Name() string { return "weapon_duel" }

// Process counts each enemy kill under the price gap between the two
// active weapons, once with AWP duels included and once without.
func (p *WeaponDuel) Process(rep *model.Replay) error {
	if err := rep.Require(model.TableRounds); err != nil {
		return err
	}
	ticks := rep.TicksByRound()
	for _, r := range sortedRounds(rep) {
		for _, t := range ticks[r.Number] {
			if t.Name != "" {
				p.rounds.Mark(rep.Path, p.env.normalize(t.Name), r.Number)
			}
		}
	}

	if err := rep.Require(model.TableKills); err != nil {
		return err
	}
	for _, k := range rep.Kills {
		if k.AttackerName == "" || k.VictimName == "" {
			continue
		}
		if !k.AttackerSide.Playing() || k.VictimSide != k.AttackerSide.Opponent() {
			continue
		}
		attacker, victim := p.env.normalize(k.AttackerName), p.env.normalize(k.VictimName)
		cat := classify.ClassifyDuel(classify.WeaponValue(k.AttackerWeapon), classify.WeaponValue(k.VictimWeapon), p.threshold)

		filters := []string{IncludeAWP}
		if !classify.IsAWPDuel(k.AttackerWeapon, k.VictimWeapon) {
			filters = append(filters, ExcludeAWP)
		}
		for _, f := range filters {
			p.table.Add(attacker, duelBucket(f, cat), aggregator.Kill)
			p.table.Add(attacker, filterTotal(f), aggregator.Kill)
			p.table.Add(victim, duelBucket(f, cat.Mirror()), aggregator.Death)
			p.table.Add(victim, filterTotal(f), aggregator.Death)
		}
	}
	return nil
}

// players returns everyone seen in a round or a duel.
func (p *WeaponDuel) players() []string {
	seen := make(map[string]bool)
	var out []string
	for _, pl := range p.table.Players() {
		seen[pl] = true
		out = append(out, pl)
	}
	for _, pl := range p.rounds.Players() {
		if !seen[pl] {
			out = append(out, pl)
		}
	}
	sort.Strings(out)
	return out
}

// Report returns weapon_duel_economy_analysis.csv, two rows per player.
func (p *WeaponDuel) Report() report.Table {
	t := report.Table{
		Name: "weapon_duel_economy_analysis.csv",
		Header: []string{"Player", "AWP_Filter",
			"Total_Kills", "Higher_Econ_Kills", "Equal_Econ_Kills", "Lower_Econ_Kills",
			"Total_Deaths", "Higher_Econ_Deaths", "Equal_Econ_Deaths", "Lower_Econ_Deaths",
			"Total_Rounds"},
	}
	for _, pl := range p.players() {
		for _, f := range awpFilters {
			total := p.table.Get(pl, filterTotal(f))
			row := []string{pl, f, report.Int(total.Kills)}
			for _, c := range duelCategories {
				row = append(row, report.Int(p.table.Get(pl, duelBucket(f, c)).Kills))
			}
			row = append(row, report.Int(total.Deaths))
			for _, c := range duelCategories {
				row = append(row, report.Int(p.table.Get(pl, duelBucket(f, c)).Deaths))
			}
			row = append(row, report.Int(p.rounds.Rounds(pl)))
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// Summary prints the per-filter breakdown and the top lower-economy killers.
func (p *WeaponDuel) Summary(w io.Writer) {
	players := p.players()
	if len(players) == 0 {
		fmt.Fprintln(w, "No duels collected.")
		return
	}

	totals := make(map[string]int)
	byCat := make(map[aggregator.Category]int)
	for _, pl := range players {
		for _, f := range awpFilters {
			totals[f] += p.table.Get(pl, filterTotal(f)).Kills
			for _, c := range duelCategories {
				byCat[duelBucket(f, c)] += p.table.Get(pl, duelBucket(f, c)).Kills
			}
		}
	}

	for _, f := range []string{IncludeAWP, ExcludeAWP} {
		report.PrintSection(w, fmt.Sprintf("KILLS BY WEAPON VALUE (%s)", f))
		rows := [][]string{}
		for _, c := range duelCategories {
			n := byCat[duelBucket(f, c)]
			rows = append(rows, []string{c.String(), report.Int(n), fmt.Sprintf("%.1f%%", pct(n, totals[f]))})
		}
		rows = append(rows, []string{"total", report.Int(totals[f]), "100%"})
		report.PrintRows(w, []string{"CATEGORY", "KILLS", "SHARE"}, rows)
	}
	removed := totals[IncludeAWP] - totals[ExcludeAWP]
	fmt.Fprintf(w, "\nAWP duels removed: %d (%.1f%%)\n", removed, pct(removed, totals[IncludeAWP]))

	report.PrintSection(w, fmt.Sprintf("TOP 10 LOWER ECONOMY KILLERS (%s, %d+ rounds)", ExcludeAWP, duelSummaryMinRounds))
	items := p.lowerEconRates(duelSummaryMinRounds)
	for i := range items {
		pl := items[i].player
		lower := p.table.Get(pl, duelBucket(ExcludeAWP, classify.DuelLower)).Kills
		total := p.table.Get(pl, filterTotal(ExcludeAWP)).Kills
		items[i].row = []string{pl, fmt.Sprintf("%.1f%%", items[i].value), fmt.Sprintf("%d/%d", lower, total), report.Int(p.rounds.Rounds(pl))}
	}
	report.PrintRows(w, []string{"PLAYER", "LOWER ECON RATE", "KILLS", "ROUNDS"}, rankedRows(topN(items, 10)))
}

// lowerEconRates returns each player's share of non-AWP kills made with the
// cheaper weapon, for players with at least minRounds rounds and one kill.
func (p *WeaponDuel) lowerEconRates(minRounds int) []ranked {
	var items []ranked
	for _, pl := range p.players() {
		total := p.table.Get(pl, filterTotal(ExcludeAWP)).Kills
		if p.rounds.Rounds(pl) < minRounds || total == 0 {
			continue
		}
		lower := p.table.Get(pl, duelBucket(ExcludeAWP, classify.DuelLower)).Kills
		items = append(items, ranked{player: pl, value: pct(lower, total)})
	}
	return items
}

// Chart ranks players by the share of kills made with the cheaper weapon.
func (p *WeaponDuel) Chart(minRounds int) report.Chart {
	return chartOf("weapon_duel_lower_econ_top10.svg", "Most kills with the cheaper weapon (no AWP)", "%", "#8e44ad",
		topN(p.lowerEconRates(minRounds), 10))
}
