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

const (
	econAdvSummaryMinRounds   = 20  // players listed in the summary
	econAdvConditionMinRounds = 50  // per-condition average K/D
	econAdvOverallMinRounds   = 200 // overall average K/D
)

var econConditions = []struct {
	cat    aggregator.Category
	prefix string
	label  string
}{
	{aggregator.Category(classify.Advantage), "Adv", "Advantage"},
	{aggregator.Category(classify.Equal), "Equal", "Equal"},
	{aggregator.Category(classify.Disadvantage), "Disadv", "Disadvantage"},
	{aggregator.Overall, "Overall", "Overall"},
}

// EconAdv splits each player's kills, deaths and rounds by whether their
// team started the round with an economic advantage.
type EconAdv struct {
	env       Env
	threshold int
	window    int
	table     *aggregator.Table
}

// NewEconAdv returns the economy-advantage pipeline.
func NewEconAdv(env Env, threshold, window int) *EconAdv {
	return &EconAdv{env: env, threshold: threshold, window: window, table: aggregator.New()}
}

// Name identifies the pipeline in logs, metrics and run history.
func (p *EconAdv) Name() string { return "econ_adv" }

// Table exposes the aggregate, mainly for tests.
func (p *EconAdv) Table() *aggregator.Table { return p.table }

// Process classifies every round of rep by the CT/T starting value gap and
// credits kills, deaths and rounds to each participant's condition.
func (p *EconAdv) Process(rep *model.Replay) error {
	if err := rep.Require(model.TableRounds, model.TableTicks); err != nil {
		return err
	}
	ticks := rep.TicksByRound()
	kills := rep.KillsByRound()

	for _, r := range sortedRounds(rep) {
		snap := classify.EconomySnapshot(ticks[r.Number], r.FreezeEndTick, p.window, p.env.normalize, classify.EquipValue)
		if snap.Empty() {
			continue
		}
		ctCond, tCond := classify.ClassifyEconomy(snap.CTTotal, snap.TTotal, p.threshold)

		conditions := make(map[string]aggregator.Category, len(snap.Players))
		for _, pv := range snap.Players {
			cat := aggregator.Category(classify.ConditionOf(pv.Side, ctCond, tCond))
			conditions[pv.Player] = cat
			p.table.Add(pv.Player, cat, aggregator.Round)
			p.table.Add(pv.Player, aggregator.Overall, aggregator.Round)
		}

		for _, k := range kills[r.Number] {
			if k.AttackerName == "" || k.VictimName == "" {
				continue
			}
			attacker, victim := p.env.normalize(k.AttackerName), p.env.normalize(k.VictimName)
			if cat, ok := conditions[attacker]; ok {
				p.table.Add(attacker, cat, aggregator.Kill)
				p.table.Add(attacker, aggregator.Overall, aggregator.Kill)
			}
			if cat, ok := conditions[victim]; ok {
				p.table.Add(victim, cat, aggregator.Death)
				p.table.Add(victim, aggregator.Overall, aggregator.Death)
			}
		}
	}
	return nil
}

// players returns everyone with at least one classified round, ordered by
// overall rounds descending.
func (p *EconAdv) players() []string {
	var out []string
	for _, pl := range p.table.Players() {
		if p.table.Get(pl, aggregator.Overall).Rounds > 0 {
			out = append(out, pl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri := p.table.Get(out[i], aggregator.Overall).Rounds
		rj := p.table.Get(out[j], aggregator.Overall).Rounds
		if ri != rj {
			return ri > rj
		}
		return out[i] < out[j]
	})
	return out
}

// Report returns weapon_advantage_analysis.csv.
func (p *EconAdv) Report() report.Table {
	t := report.Table{Name: "weapon_advantage_analysis.csv", Header: []string{"Player"}}
	for _, c := range econConditions {
		t.Header = append(t.Header, c.prefix+"_Kills", c.prefix+"_Deaths", c.prefix+"_Rounds")
	}
	for _, pl := range p.players() {
		row := []string{pl}
		for _, c := range econConditions {
			cnt := p.table.Get(pl, c.cat)
			row = append(row, report.Int(cnt.Kills), report.Int(cnt.Deaths), report.Int(cnt.Rounds))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Summary prints the top players by overall K/D.
func (p *EconAdv) Summary(w io.Writer) {
	players := p.players()
	if len(players) == 0 {
		fmt.Fprintln(w, "No economy data collected.")
		return
	}

	total := 0
	byCond := make(map[aggregator.Category]int)
	for _, pl := range players {
		total += p.table.Get(pl, aggregator.Overall).Rounds
		for _, c := range econConditions[:3] {
			byCond[c.cat] += p.table.Get(pl, c.cat).Rounds
		}
	}
	report.PrintSection(w, "ROUND SPLIT")
	var split [][]string
	for _, c := range econConditions[:3] {
		split = append(split, []string{c.label, report.Int(byCond[c.cat]), fmt.Sprintf("%.1f%%", pct(byCond[c.cat], total))})
	}
	split = append(split, []string{"Total player-rounds", report.Int(total), "100%"})
	report.PrintRows(w, []string{"CONDITION", "ROUNDS", "SHARE"}, split)

	var significant []string
	for _, pl := range players {
		if p.table.Get(pl, aggregator.Overall).Rounds >= econAdvSummaryMinRounds {
			significant = append(significant, pl)
		}
	}
	if len(significant) == 0 {
		return
	}

	report.PrintSection(w, fmt.Sprintf("AVERAGE K/D (players with %d+ rounds, n=%d)", econAdvSummaryMinRounds, len(significant)))
	var avg [][]string
	for _, c := range econConditions {
		need := econAdvConditionMinRounds
		if c.cat == aggregator.Overall {
			need = econAdvOverallMinRounds
		}
		sum, n := 0.0, 0
		for _, pl := range significant {
			if p.table.Get(pl, c.cat).Rounds >= need {
				sum += p.table.KD(pl, c.cat)
				n++
			}
		}
		if n == 0 {
			continue
		}
		avg = append(avg, []string{c.label, fmt.Sprintf("%.3f", sum/float64(n)), report.Int(n)})
	}
	if len(avg) > 0 {
		report.PrintRows(w, []string{"CONDITION", "AVG K/D", "PLAYERS"}, avg)
	}

	report.PrintSection(w, fmt.Sprintf("TOP 10 PLAYERS BY OVERALL K/D (%d+ rounds)", econAdvSummaryMinRounds))
	var items []ranked
	for _, pl := range significant {
		o := p.table.Get(pl, aggregator.Overall)
		kd := o.KDRatio()
		items = append(items, ranked{player: pl, value: kd, row: []string{
			pl, fmt.Sprintf("%.2f", kd), report.Int(o.Kills), report.Int(o.Deaths), report.Int(o.Rounds),
			fmt.Sprintf("%.2f", p.table.KD(pl, econConditions[0].cat)),
			fmt.Sprintf("%.2f", p.table.KD(pl, econConditions[1].cat)),
			fmt.Sprintf("%.2f", p.table.KD(pl, econConditions[2].cat)),
		}})
	}
	report.PrintRows(w, []string{"PLAYER", "K/D", "K", "D", "ROUNDS", "ADV K/D", "EQUAL K/D", "DISADV K/D"}, rankedRows(topN(items, 10)))
}

// Chart ranks players by K/D while at an economy disadvantage.
func (p *EconAdv) Chart(minRounds int) report.Chart {
	var items []ranked
	for _, pl := range p.players() {
		if p.table.Get(pl, aggregator.Overall).Rounds < minRounds {
			continue
		}
		items = append(items, ranked{player: pl, value: p.table.KD(pl, econConditions[2].cat)})
	}
	return chartOf("econ_adv_disadvantage_kd.svg", "Highest K/D with an economy disadvantage", "", "#e74c3c", topN(items, 10))
}
