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

var outcomes = []classify.Outcome{classify.FKWon, classify.FKLost, classify.NoFKWon, classify.NoFKLost}

// FirstKill attributes each round's opening kill and records, for every
// participant, whether they opened it and whether their side won.
type FirstKill struct {
	env   Env
	table *aggregator.Table
	teams map[string]string
}

// NewFirstKill returns the first-kill pipeline.
func NewFirstKill(env Env) *FirstKill {
	return &FirstKill{env: env, table: aggregator.New(), teams: make(map[string]string)}
}

// Name identifies the pipeline in logs, metrics and run history.
func (p *FirstKill) Name() string { return "first_kill" }

// Process finds each round's opening kill and records the joint
// first-kill/round-result outcome for every participant. Rounds without
// any kill are skipped.
func (p *FirstKill) Process(rep *model.Replay) error {
	if err := rep.Require(model.TableRounds, model.TableKills); err != nil {
		return err
	}
	clans := p.clanNames(rep.Ticks)
	ticks := rep.TicksByRound()
	kills := rep.KillsByRound()

	for _, r := range sortedRounds(rep) {
		roundKills := kills[r.Number]
		if len(roundKills) == 0 {
			continue
		}
		var opener string
		if first, ok := classify.FirstKill(roundKills); ok {
			opener = p.env.normalize(first.AttackerName)
		}

		for _, ps := range p.participants(ticks[r.Number]) {
			p.teams[ps.Player] = p.env.Teams.TeamOf(ps.Player, clans[ps.Player])
			out := classify.RoundOutcome(ps.Player == opener, ps.Side, r.Winner)
			p.table.Add(ps.Player, aggregator.Category(out.String()), aggregator.Round)
			p.table.Add(ps.Player, aggregator.Overall, aggregator.Round)
		}

		for _, k := range roundKills {
			if k.AttackerName == "" {
				continue
			}
			p.table.Add(p.env.normalize(k.AttackerName), aggregator.Overall, aggregator.Kill)
		}
	}
	return nil
}

// participants returns the distinct (player, side) pairs with a playing side,
// in first-seen order.
func (p *FirstKill) participants(ticks []model.TickSnapshot) []classify.PlayerSide {
	seen := make(map[classify.PlayerSide]bool)
	var out []classify.PlayerSide
	for _, t := range ticks {
		if t.Name == "" || !t.Side.Playing() {
			continue
		}
		ps := classify.PlayerSide{Player: p.env.normalize(t.Name), Side: t.Side}
		if seen[ps] {
			continue
		}
		seen[ps] = true
		out = append(out, ps)
	}
	return out
}

// clanNames returns the most common clan name per player across the
// replay's ticks. Ties go to the name seen first.
func (p *FirstKill) clanNames(ticks []model.TickSnapshot) map[string]string {
	type tally struct {
		count map[string]int
		order []string
	}
	byPlayer := make(map[string]*tally)
	for _, t := range ticks {
		if t.Name == "" || t.TeamName == "" {
			continue
		}
		pl := p.env.normalize(t.Name)
		tl := byPlayer[pl]
		if tl == nil {
			tl = &tally{count: make(map[string]int)}
			byPlayer[pl] = tl
		}
		if tl.count[t.TeamName] == 0 {
			tl.order = append(tl.order, t.TeamName)
		}
		tl.count[t.TeamName]++
	}

	out := make(map[string]string, len(byPlayer))
	for pl, tl := range byPlayer {
		best := ""
		for _, name := range tl.order {
			if best == "" || tl.count[name] > tl.count[best] {
				best = name
			}
		}
		out[pl] = best
	}
	return out
}

type firstKillRow struct {
	player, team           string
	rounds, kills          int
	byOutcome              [4]int
	fkRate, winRate        float64
	fkWinRate, noFKWinRate float64
}

// count sums the rounds whose outcome satisfies match.
func (r firstKillRow) count(match func(classify.Outcome) bool) int {
	n := 0
	for i, o := range outcomes {
		if match(o) {
			n += r.byOutcome[i]
		}
	}
	return n
}

func (r firstKillRow) firstKills() int { return r.count(classify.Outcome.GotFirstKill) }
func (r firstKillRow) won() int        { return r.count(classify.Outcome.Won) }
func (r firstKillRow) lost() int       { return r.rounds - r.won() }

// rows returns players with at least one round, ordered by first kills.
func (p *FirstKill) rows() []firstKillRow {
	var out []firstKillRow
	for _, pl := range p.table.Players() {
		overall := p.table.Get(pl, aggregator.Overall)
		if overall.Rounds == 0 {
			continue
		}
		r := firstKillRow{player: pl, team: p.teams[pl], rounds: overall.Rounds, kills: overall.Kills}
		for i, o := range outcomes {
			r.byOutcome[i] = p.table.Get(pl, aggregator.Category(o.String())).Rounds
		}
		fk := r.firstKills()
		r.fkRate = report.Round2(pct(fk, r.rounds))
		r.winRate = report.Round2(pct(r.won(), r.rounds))
		r.fkWinRate = report.Round2(pct(r.byOutcome[classify.FKWon], fk))
		r.noFKWinRate = report.Round2(pct(r.byOutcome[classify.NoFKWon], r.rounds-fk))
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if fi, fj := out[i].firstKills(), out[j].firstKills(); fi != fj {
			return fi > fj
		}
		return out[i].player < out[j].player
	})
	return out
}

// Report returns first_kill_analysis.csv.
func (p *FirstKill) Report() report.Table {
	t := report.Table{
		Name: "first_kill_analysis.csv",
		Header: []string{"Player", "Team", "RoundsPlayed", "TotalKills", "FirstKills", "RoundsWon", "RoundsLost",
			"FK_and_Won", "FK_and_Lost", "NoFK_and_Won", "NoFK_and_Lost",
			"FirstKillRate_%", "WinRate_%", "FK_WinRate_%", "NoFK_WinRate_%"},
	}
	for _, r := range p.rows() {
		t.Rows = append(t.Rows, []string{
			r.player, r.team, report.Int(r.rounds), report.Int(r.kills), report.Int(r.firstKills()),
			report.Int(r.won()), report.Int(r.lost()),
			report.Int(r.byOutcome[classify.FKWon]), report.Int(r.byOutcome[classify.FKLost]),
			report.Int(r.byOutcome[classify.NoFKWon]), report.Int(r.byOutcome[classify.NoFKLost]),
			report.Float(r.fkRate), report.Float(r.winRate), report.Float(r.fkWinRate), report.Float(r.noFKWinRate),
		})
	}
	return t
}

// Summary prints leaderboards and the overall first-kill win advantage.
func (p *FirstKill) Summary(w io.Writer) {
	rows := p.rows()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No data collected.")
		return
	}
	header := []string{"PLAYER", "TEAM", "FIRST KILLS", "ROUNDS", "FK RATE", "FK WIN RATE"}
	line := func(r firstKillRow) []string {
		return []string{r.player, r.team, report.Int(r.firstKills()), report.Int(r.rounds),
			report.Float(r.fkRate) + "%", report.Float(r.fkWinRate) + "%"}
	}

	report.PrintSection(w, "TOP 10 FIRST KILL LEADERS")
	var leaders [][]string
	for i, r := range rows {
		if i == 10 {
			break
		}
		leaders = append(leaders, line(r))
	}
	report.PrintRows(w, header, leaders)

	if len(rows) >= 10 {
		var high, low []ranked
		for _, r := range rows {
			high = append(high, ranked{player: r.player, value: r.fkRate, row: line(r)})
			low = append(low, ranked{player: r.player, value: -r.fkRate, row: line(r)})
		}
		report.PrintSection(w, "TOP 10 FIRST KILL RATE")
		report.PrintRows(w, header, rankedRows(topN(high, 10)))
		report.PrintSection(w, "LOWEST 10 FIRST KILL RATE")
		report.PrintRows(w, header, rankedRows(topN(low, 10)))
	}

	var rounds, fks, fkWon, noFKWon int
	for _, r := range rows {
		rounds += r.rounds
		fks += r.firstKills()
		fkWon += r.byOutcome[classify.FKWon]
		noFKWon += r.byOutcome[classify.NoFKWon]
	}
	withFK, withoutFK := pct(fkWon, fks), pct(noFKWon, rounds-fks)
	report.PrintSection(w, "OVERALL")
	report.PrintRows(w, []string{"METRIC", "VALUE"}, [][]string{
		{"Total rounds analyzed", report.Int(rounds)},
		{"Total first kills", report.Int(fks)},
		{"Win rate with first kill", fmt.Sprintf("%.2f%%", withFK)},
		{"Win rate without first kill", fmt.Sprintf("%.2f%%", withoutFK)},
		{"First kill advantage", fmt.Sprintf("%+.2f%%", withFK-withoutFK)},
		{"Players analyzed", report.Int(len(rows))},
	})
}

// Chart ranks players by first-kill rate.
func (p *FirstKill) Chart(minRounds int) report.Chart {
	var items []ranked
	for _, r := range p.rows() {
		if r.rounds < minRounds {
			continue
		}
		items = append(items, ranked{player: r.player, value: r.fkRate})
	}
	return chartOf("first_kill_rate_top10.svg", "Highest first kill rate", "%", "#27ae60", topN(items, 10))
}
