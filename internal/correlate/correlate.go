package correlate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pable/csround/internal/pipeline"
	"github.com/pable/csround/internal/report"
)

// Columns the two input tables must carry.
var (
	EconomyColumns     = []string{"Player", "Event", "AvgPercentageOfTeam"}
	PerformanceColumns = []string{"Player", "Event", "Rating", "Placement"}
)

// Point is one player's economy share and results at one event.
type Point struct {
	Event     string
	EconPct   float64
	Rating    float64
	Placement float64 // 1/placement, so larger is better; 0 when unknown
}

// ParsePlacement reads a finishing position. Ranges such as "3-4" become
// their midpoint. ok is false for empty, malformed or non-positive values.
func ParsePlacement(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if lo, hi, isRange := strings.Cut(s, "-"); isRange {
		a, errA := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if errA != nil || errB != nil {
			return 0, false
		}
		v := (a + b) / 2
		return v, v > 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Join matches economy rows to performance rows on (Player, Event). The
// synthetic overall economy rows are ignored. Points are grouped by player
// and ordered by event.
func Join(economy, performance report.Table) (map[string][]Point, error) {
	if err := report.RequireColumns(economy, EconomyColumns...); err != nil {
		return nil, fmt.Errorf("economy table: %w", err)
	}
	if err := report.RequireColumns(performance, PerformanceColumns...); err != nil {
		return nil, fmt.Errorf("performance table: %w", err)
	}

	type key struct{ player, event string }
	econ := make(map[key]float64)
	for _, rec := range economy.Records() {
		ev := strings.TrimSpace(rec["Event"])
		if ev == pipeline.OverallEvent {
			continue
		}
		v, err := strconv.ParseFloat(rec["AvgPercentageOfTeam"], 64)
		if err != nil {
			continue
		}
		econ[key{rec["Player"], ev}] = v
	}

	out := make(map[string][]Point)
	for _, rec := range performance.Records() {
		k := key{rec["Player"], strings.TrimSpace(rec["Event"])}
		pct, ok := econ[k]
		if !ok {
			continue
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(rec["Rating"]), 64)
		if err != nil {
			continue
		}
		p := Point{Event: k.event, EconPct: pct, Rating: rating}
		if place, ok := ParsePlacement(rec["Placement"]); ok {
			p.Placement = 1 / place
		}
		out[k.player] = append(out[k.player], p)
	}
	for pl := range out {
		pts := out[pl]
		sort.Slice(pts, func(i, j int) bool { return pts[i].Event < pts[j].Event })
	}
	return out, nil
}

// Result holds both fits for one player. A nil fit had too few points.
type Result struct {
	Player    string
	Events    int
	Rating    *Fit
	Placement *Fit
}

// Analyze fits rating and inverted placement against economy share for
// every player in points, sorted by player.
func Analyze(points map[string][]Point) []Result {
	players := make([]string, 0, len(points))
	for pl := range points {
		players = append(players, pl)
	}
	sort.Strings(players)

	out := make([]Result, 0, len(players))
	for _, pl := range players {
		pts := points[pl]
		res := Result{Player: pl, Events: len(pts)}

		var x, rating, px, place []float64
		for _, p := range pts {
			x = append(x, p.EconPct)
			rating = append(rating, p.Rating)
			if p.Placement > 0 {
				px = append(px, p.EconPct)
				place = append(place, p.Placement)
			}
		}
		if f, err := Linear(x, rating); err == nil {
			res.Rating = &f
		}
		if f, err := Linear(px, place); err == nil {
			res.Placement = &f
		}
		out = append(out, res)
	}
	return out
}
