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
	catExitFrag   aggregator.Category = "exit_frag"
	catMeaningful aggregator.Category = "meaningful"
)

// ExitFrag separates kills made after a round was already decided from the
// ones that mattered.
type ExitFrag struct {
	env    Env
	table  *aggregator.Table
	rounds *aggregator.Participation
}

// NewExitFrag returns the exit-frag pipeline.
func NewExitFrag(env Env) *ExitFrag {
	return &ExitFrag{env: env, table: aggregator.New(), rounds: aggregator.NewParticipation()}
}

// Name identifies the pipeline in logs, metrics and run history.
func (p *ExitFrag) Name() string { return "exit_frag" }

// Process marks round participation from ticks, then splits each kill into
// exit frag or meaningful. Participation survives a replay without kills.
func (p *ExitFrag) Process(rep *model.Replay) error {
	for _, t := range rep.Ticks {
		if t.Name == "" {
			continue
		}
		p.rounds.Mark(rep.Path, p.env.normalize(t.Name), t.RoundNumber)
	}

	if err := rep.Require(model.TableRounds, model.TableKills); err != nil {
		return err
	}

	bombs := classify.BombTicksByRound(rep.Bombs)
	kills := rep.KillsByRound()
	for _, r := range sortedRounds(rep) {
		for _, k := range kills[r.Number] {
			if k.AttackerName == "" || !k.AttackerSide.Playing() {
				continue
			}
			attacker := p.env.normalize(k.AttackerName)
			if classify.IsExitFrag(k.AttackerSide, k.Tick, r, bombs[r.Number]) {
				p.table.Add(attacker, catExitFrag, aggregator.Kill)
			} else {
				p.table.Add(attacker, catMeaningful, aggregator.Kill)
			}
		}
	}
	return nil
}

type exitFragRow struct {
	player                   string
	rounds, exit, meaningful int
	exitRate, meaningfulRate float64
}

func (r exitFragRow) kills() int { return r.exit + r.meaningful }

// rows returns players with at least one kill, ordered by exit-frag rate.
func (p *ExitFrag) rows() []exitFragRow {
	var out []exitFragRow
	for _, pl := range p.table.Players() {
		r := exitFragRow{
			player:     pl,
			rounds:     p.rounds.Rounds(pl),
			exit:       p.table.Get(pl, catExitFrag).Kills,
			meaningful: p.table.Get(pl, catMeaningful).Kills,
		}
		if r.kills() == 0 {
			continue
		}
		r.exitRate = report.Round2(pct(r.exit, r.kills()))
		r.meaningfulRate = report.Round2(pct(r.meaningful, r.kills()))
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].exitRate != out[j].exitRate {
			return out[i].exitRate > out[j].exitRate
		}
		return out[i].player < out[j].player
	})
	return out
}

// Report returns exit_frag_analysis.csv.
func (p *ExitFrag) Report() report.Table {
	t := report.Table{
		Name: "exit_frag_analysis.csv",
		Header: []string{"Player", "TotalRounds", "TotalKills", "MeaningfulKills", "ExitFrags",
			"MeaningfulRate_%", "ExitFragRate_%"},
	}
	for _, r := range p.rows() {
		t.Rows = append(t.Rows, []string{
			r.player, report.Int(r.rounds), report.Int(r.kills()), report.Int(r.meaningful), report.Int(r.exit),
			report.Float(r.meaningfulRate), report.Float(r.exitRate),
		})
	}
	return t
}

// Summary prints the exit-frag merchants and the most impactful players.
func (p *ExitFrag) Summary(w io.Writer) {
	rows := p.rows()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No kills collected.")
		return
	}
	header := []string{"PLAYER", "RATE", "KILLS", "ROUNDS"}

	report.PrintSection(w, "TOP 10 EXIT FRAG MERCHANTS")
	var exit, meaningful []ranked
	totalKills, totalExit := 0, 0
	for _, r := range rows {
		totalKills += r.kills()
		totalExit += r.exit
		exit = append(exit, ranked{player: r.player, value: r.exitRate, row: []string{
			r.player, report.Float(r.exitRate) + "%", fmt.Sprintf("%d/%d", r.exit, r.kills()), report.Int(r.rounds),
		}})
		meaningful = append(meaningful, ranked{player: r.player, value: r.meaningfulRate, row: []string{
			r.player, report.Float(r.meaningfulRate) + "%", fmt.Sprintf("%d/%d", r.meaningful, r.kills()), report.Int(r.rounds),
		}})
	}
	report.PrintRows(w, header, rankedRows(topN(exit, 10)))

	report.PrintSection(w, "TOP 10 MOST IMPACTFUL PLAYERS")
	report.PrintRows(w, header, rankedRows(topN(meaningful, 10)))

	fmt.Fprintf(w, "\nTotal kills: %d  |  exit frags: %d (%.2f%%)  |  meaningful: %d (%.2f%%)\n",
		totalKills, totalExit, pct(totalExit, totalKills), totalKills-totalExit, pct(totalKills-totalExit, totalKills))
}

// Chart ranks players by exit-frag rate.
func (p *ExitFrag) Chart(minRounds int) report.Chart {
	var items []ranked
	for _, r := range p.rows() {
		if r.rounds < minRounds {
			continue
		}
		items = append(items, ranked{player: r.player, value: r.exitRate})
	}
	return chartOf("exit_frag_top10.svg", "Highest exit frag rate", "%", "#e67e22", topN(items, 10))
}
