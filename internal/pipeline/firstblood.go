package pipeline

import (
	"fmt"
	"io"
	"sort"

	"github.com/pable/csround/internal/classify"
	"github.com/pable/csround/internal/model"
	"github.com/pable/csround/internal/report"
)

// bloodPoint is where one round's opening kill was made from.
type bloodPoint struct {
	mapName, player string
	side            model.Side
	x, y            float64
}

// FirstBlood collects the attacker position of every round's opening kill,
// grouped by map.
type FirstBlood struct {
	env    Env
	points []bloodPoint
}

// NewFirstBlood returns the first-blood position pipeline.
func NewFirstBlood(env Env) *FirstBlood {
	return &FirstBlood{env: env}
}

// Name identifies the pipeline in logs, metrics and run history.
func (p *FirstBlood) Name() string { return "first_blood" }

// Process records the opening kill of each round. A replay without a map name
// cannot be placed and is skipped.
func (p *FirstBlood) Process(rep *model.Replay) error {
	if err := rep.Require(model.TableRounds, model.TableKills); err != nil {
		return err
	}
	if rep.MapName == "" {
		return fmt.Errorf("%s: %w: map name", rep.Name, model.ErrMissingData)
	}
	kills := rep.KillsByRound()
	for _, r := range sortedRounds(rep) {
		first, ok := classify.FirstKill(kills[r.Number])
		if !ok {
			continue
		}
		p.points = append(p.points, bloodPoint{
			mapName: rep.MapName,
			player:  p.env.normalize(first.AttackerName),
			side:    first.AttackerSide,
			x:       first.AttackerX,
			y:       first.AttackerY,
		})
	}
	return nil
}

// byMap returns the points ordered by map, keeping replay and round order
// within a map.
func (p *FirstBlood) byMap() []bloodPoint {
	out := make([]bloodPoint, len(p.points))
	copy(out, p.points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].mapName < out[j].mapName })
	return out
}

// Report returns first_blood_positions.csv, one row per opening kill.
func (p *FirstBlood) Report() report.Table {
	t := report.Table{
		Name:   "first_blood_positions.csv",
		Header: []string{"Map", "Side", "Player", "X", "Y"},
	}
	for _, pt := range p.byMap() {
		t.Rows = append(t.Rows, []string{pt.mapName, pt.side.String(), pt.player, report.Float(pt.x), report.Float(pt.y)})
	}
	return t
}

type mapSplit struct {
	name        string
	ct, t       int
	ctPct, tPct float64
}

func (m mapSplit) total() int { return m.ct + m.t }

// splits counts opening kills per side for each map, busiest map first.
func (p *FirstBlood) splits() []mapSplit {
	idx := make(map[string]int)
	var out []mapSplit
	for _, pt := range p.byMap() {
		i, ok := idx[pt.mapName]
		if !ok {
			i = len(out)
			idx[pt.mapName] = i
			out = append(out, mapSplit{name: pt.mapName})
		}
		if pt.side == model.SideCT {
			out[i].ct++
		} else {
			out[i].t++
		}
	}
	for i := range out {
		out[i].ctPct = report.Round2(pct(out[i].ct, out[i].total()))
		out[i].tPct = report.Round2(pct(out[i].t, out[i].total()))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].total() > out[j].total() })
	return out
}

// Summary prints the CT/T split of opening kills per map and overall.
func (p *FirstBlood) Summary(w io.Writer) {
	splits := p.splits()
	if len(splits) == 0 {
		fmt.Fprintln(w, "No data collected.")
		return
	}
	var rows [][]string
	var ct, t int
	for _, m := range splits {
		rows = append(rows, []string{m.name, report.Int(m.total()), report.Int(m.ct), report.Int(m.t),
			report.Float(m.ctPct) + "%", report.Float(m.tPct) + "%"})
		ct += m.ct
		t += m.t
	}
	report.PrintSection(w, "FIRST BLOODS BY MAP")
	report.PrintRows(w, []string{"MAP", "TOTAL", "CT", "T", "CT %", "T %"}, rows)
	fmt.Fprintf(w, "Total first bloods: %d  |  CT %d (%.2f%%)  |  T %d (%.2f%%)  |  maps: %d\n",
		ct+t, ct, pct(ct, ct+t), t, pct(t, ct+t), len(splits))
}

// Plots returns one position scatter per map with CT and T as separate series.
func (p *FirstBlood) Plots() []report.Scatter {
	var (
		out    []report.Scatter
		cur    *report.Scatter
		curMap string
	)
	for _, pt := range p.byMap() {
		if cur == nil || pt.mapName != curMap {
			curMap = pt.mapName
			out = append(out, report.Scatter{
				File:  pt.mapName + "_first_blood.svg",
				Title: "First blood: " + pt.mapName,
				Series: []report.Series{
					{Label: "CT", Color: "#3498db"},
					{Label: "T", Color: "#f39c12"},
				},
			})
			cur = &out[len(out)-1]
		}
		se := &cur.Series[1]
		if pt.side == model.SideCT {
			se = &cur.Series[0]
		}
		se.X = append(se.X, pt.x)
		se.Y = append(se.Y, pt.y)
	}
	return out
}
