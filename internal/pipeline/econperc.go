package pipeline

import (
	"fmt"
	"io"
	"sort"

	"github.com/pable/csround/internal/classify"
	"github.com/pable/csround/internal/model"
	"github.com/pable/csround/internal/report"
	"github.com/pable/csround/internal/scan"
)

// OverallEvent is the synthetic event row aggregating all events of a player.
const OverallEvent = "overall"

type econShare struct {
	valueSum int
	pctSum   float64
	rounds   int
}

func (s econShare) avgValue() float64 {
	if s.rounds == 0 {
		return 0
	}
	return float64(s.valueSum) / float64(s.rounds)
}

func (s econShare) avgPct() float64 {
	if s.rounds == 0 {
		return 0
	}
	return s.pctSum / float64(s.rounds)
}

type playerEvent struct {
	player, event string
}

// EconPerc measures what share of their team's starting weapon value each
// player carries, per event.
type EconPerc struct {
	env    Env
	window int
	shares map[playerEvent]*econShare
}

// NewEconPerc returns the economy-percentage pipeline.
func NewEconPerc(env Env, window int) *EconPerc {
	return &EconPerc{env: env, window: window, shares: make(map[playerEvent]*econShare)}
}

// Name identifies the pipeline in logs, metrics and run history.
func (p *EconPerc) Name() string { return "economy_perc" }

// Process records, per round, each player's inventory value and its share
// of the team total under the replay's event.
func (p *EconPerc) Process(rep *model.Replay) error {
	if err := rep.Require(model.TableRounds, model.TableTicks); err != nil {
		return err
	}
	event := rep.Event
	if event == "" {
		event = scan.Ungrouped
	}
	ticks := rep.TicksByRound()

	for _, r := range sortedRounds(rep) {
		snap := classify.EconomySnapshot(ticks[r.Number], r.FreezeEndTick, p.window, p.env.normalize, classify.InventoryWorth)
		if snap.Empty() {
			continue
		}
		for _, pv := range snap.Players {
			teamTotal := snap.TTotal
			if pv.Side == model.SideCT {
				teamTotal = snap.CTTotal
			}
			k := playerEvent{pv.Player, event}
			s := p.shares[k]
			if s == nil {
				s = &econShare{}
				p.shares[k] = s
			}
			s.valueSum += pv.Value
			s.pctSum += model.Pct(pv.Value, teamTotal)
			s.rounds++
		}
	}
	return nil
}

// overall folds every event of each player into one share.
func (p *EconPerc) overall() map[string]econShare {
	out := make(map[string]econShare)
	for k, s := range p.shares {
		o := out[k.player]
		o.valueSum += s.valueSum
		o.pctSum += s.pctSum
		o.rounds += s.rounds
		out[k.player] = o
	}
	return out
}

// Report returns weapon_economy_percentage.csv with an overall row per player.
func (p *EconPerc) Report() report.Table {
	t := report.Table{
		Name:   "weapon_economy_percentage.csv",
		Header: []string{"Player", "Event", "RoundsPlayed", "AvgWeaponValue", "AvgPercentageOfTeam"},
	}
	keys := make([]playerEvent, 0, len(p.shares))
	for k := range p.shares {
		keys = append(keys, k)
	}
	for pl := range p.overall() {
		keys = append(keys, playerEvent{pl, OverallEvent})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].player != keys[j].player {
			return keys[i].player < keys[j].player
		}
		return keys[i].event < keys[j].event
	})

	overall := p.overall()
	for _, k := range keys {
		var s econShare
		if k.event == OverallEvent {
			s = overall[k.player]
		} else {
			s = *p.shares[k]
		}
		t.Rows = append(t.Rows, []string{
			k.player, k.event, report.Int(s.rounds), report.Float(s.avgValue()), report.Float(s.avgPct()),
		})
	}
	return t
}

// Summary prints the players carrying the largest share of team value.
func (p *EconPerc) Summary(w io.Writer) {
	overall := p.overall()
	if len(overall) == 0 {
		fmt.Fprintln(w, "No economy data collected.")
		return
	}
	events := make(map[string]bool)
	for k := range p.shares {
		events[k.event] = true
	}
	fmt.Fprintf(w, "Players tracked: %d  |  events: %d  |  rows: %d\n", len(overall), len(events), len(p.shares)+len(overall))

	report.PrintSection(w, "TOP 10 SHARE OF TEAM WEAPON VALUE")
	var items []ranked
	for pl, s := range overall {
		items = append(items, ranked{player: pl, value: s.avgPct(), row: []string{
			pl, report.Float(s.avgPct()) + "%", report.Float(s.avgValue()), report.Int(s.rounds),
		}})
	}
	report.PrintRows(w, []string{"PLAYER", "AVG % OF TEAM", "AVG VALUE", "ROUNDS"}, rankedRows(topN(items, 10)))
}

// Chart ranks players by their overall share of team value.
func (p *EconPerc) Chart(minRounds int) report.Chart {
	var items []ranked
	for pl, s := range p.overall() {
		if s.rounds < minRounds {
			continue
		}
		items = append(items, ranked{player: pl, value: s.avgPct()})
	}
	return chartOf("economy_perc_top10.svg", "Largest share of team weapon value", "%", "#4a90e2", topN(items, 10))
}
