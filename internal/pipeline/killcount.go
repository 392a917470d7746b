package pipeline

import (
	"fmt"
	"io"

	"github.com/pable/csround/internal/aggregator"
	"github.com/pable/csround/internal/model"
	"github.com/pable/csround/internal/report"
)

// KillCount totals kills per attacker. It is a cross-check for the other
// pipelines' kill columns.
type KillCount struct {
	env   Env
	table *aggregator.Table
}

// NewKillCount returns the kill verification pipeline.
func NewKillCount(env Env) *KillCount {
	return &KillCount{env: env, table: aggregator.New()}
}

// Name identifies the pipeline in logs, metrics and run history.
func (p *KillCount) Name() string { return "kill_verify" }

// Process counts every kill with a known attacker, team kills included.
func (p *KillCount) Process(rep *model.Replay) error {
	if err := rep.Require(model.TableKills); err != nil {
		return err
	}
	for _, k := range rep.Kills {
		if k.AttackerName == "" {
			continue
		}
		p.table.Add(p.env.normalize(k.AttackerName), aggregator.Overall, aggregator.Kill)
	}
	return nil
}

func (p *KillCount) ranked() []ranked {
	var items []ranked
	for _, pl := range p.table.Players() {
		n := p.table.Get(pl, aggregator.Overall).Kills
		items = append(items, ranked{player: pl, value: float64(n), row: []string{pl, report.Int(n)}})
	}
	return topN(items, len(items))
}

// Report returns player_kills_verification.csv, most kills first.
func (p *KillCount) Report() report.Table {
	return report.Table{
		Name:   "player_kills_verification.csv",
		Header: []string{"Player", "TotalKills"},
		Rows:   rankedRows(p.ranked()),
	}
}

// Summary prints total kills and the top 10 killers.
func (p *KillCount) Summary(w io.Writer) {
	items := p.ranked()
	if len(items) == 0 {
		fmt.Fprintln(w, "No kills data found.")
		return
	}
	total := 0
	for _, it := range items {
		total += int(it.value)
	}
	fmt.Fprintf(w, "Total players: %d  |  total kills: %d\n", p.table.Len(), total)
	report.PrintSection(w, "TOP 10 PLAYERS BY KILLS")
	report.PrintRows(w, []string{"PLAYER", "KILLS"}, rankedRows(items[:min(10, len(items))]))
}

// Total returns the kill count for player.
func (p *KillCount) Total(player string) int {
	return p.table.Get(player, aggregator.Overall).Kills
}
