package aggregator

import (
	"sort"

	"github.com/pable/csround/internal/model"
)

// Category names a bucket counters are accumulated under.
type Category string

// Overall is the bucket every classified round also counts towards.
const Overall Category = "overall"

// Delta is an increment applied to a Counter.
type Delta struct {
	Kills, Deaths, Rounds int
}

// Kill, Death and Round are the common single-field deltas.
var (
	Kill  = Delta{Kills: 1}
	Death = Delta{Deaths: 1}
	Round = Delta{Rounds: 1}
)

// cellKey identifies one (player, category) counter.
type cellKey struct {
	player   string
	category Category
}

// Table accumulates counters per player identity and category. It is
// owned by one pipeline for one run and is not safe for concurrent use.
type Table struct {
	cells   map[cellKey]*model.Counter
	players map[string]struct{}
}

// New returns an empty Table.
func New() *Table {
	return &Table{
		cells:   make(map[cellKey]*model.Counter),
		players: make(map[string]struct{}),
	}
}

// Add applies d to the counter for (player, cat), creating it at zero first.
func (t *Table) Add(player string, cat Category, d Delta) {
	k := cellKey{player, cat}
	c := t.cells[k]
	if c == nil {
		c = &model.Counter{}
		t.cells[k] = c
		t.players[player] = struct{}{}
	}
	c.Kills += d.Kills
	c.Deaths += d.Deaths
	c.Rounds += d.Rounds
}

// Get returns the counter for (player, cat). Missing pairs read as zero and
// are not inserted.
func (t *Table) Get(player string, cat Category) model.Counter {
	if c := t.cells[cellKey{player, cat}]; c != nil {
		return *c
	}
	return model.Counter{}
}

// Has reports whether player has any counter.
func (t *Table) Has(player string) bool {
	_, ok := t.players[player]
	return ok
}

// Players returns every player with at least one counter, sorted.
func (t *Table) Players() []string {
	out := make([]string, 0, len(t.players))
	for p := range t.players {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct players.
func (t *Table) Len() int { return len(t.players) }

// KD returns kills over deaths for (player, cat) with deaths floored to 1.
func (t *Table) KD(player string, cat Category) float64 {
	return t.Get(player, cat).KDRatio()
}

// Participation tracks which rounds a player took part in. Keys are scoped by
// replay so that equal round numbers in different replays stay distinct.
type Participation struct {
	seen  map[participationKey]struct{}
	count map[string]int
}

type participationKey struct {
	replay, player string
	round          int
}

// NewParticipation returns an empty Participation set.
func NewParticipation() *Participation {
	return &Participation{
		seen:  make(map[participationKey]struct{}),
		count: make(map[string]int),
	}
}

// Mark records that player took part in round of replay. It returns false
// when the pair was already recorded.
func (p *Participation) Mark(replay, player string, round int) bool {
	k := participationKey{replay, player, round}
	if _, dup := p.seen[k]; dup {
		return false
	}
	p.seen[k] = struct{}{}
	p.count[player]++
	return true
}

// Rounds returns the number of distinct rounds player took part in.
func (p *Participation) Rounds(player string) int { return p.count[player] }

// Players returns every player seen, sorted.
func (p *Participation) Players() []string {
	out := make([]string, 0, len(p.count))
	for pl := range p.count {
		out = append(out, pl)
	}
	sort.Strings(out)
	return out
}
