package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingData is returned when a replay lacks a table a pipeline needs.
var ErrMissingData = errors.New("missing data")

// Side represents which side a player is on in a given round.
type Side int

const (
	SideUnknown    Side = 0
	SideSpectators Side = 1
	SideT          Side = 2
	SideCT         Side = 3
)

func (s Side) String() string {
	switch s {
	case SideT:
		return "T"
	case SideCT:
		return "CT"
	default:
		return "?"
	}
}

// Playing reports whether s is one of the two playing sides.
func (s Side) Playing() bool {
	return s == SideT || s == SideCT
}

// Opponent returns the other playing side, or SideUnknown.
func (s Side) Opponent() Side {
	switch s {
	case SideT:
		return SideCT
	case SideCT:
		return SideT
	default:
		return SideUnknown
	}
}

// ParseSide accepts "t", "ct", "terrorist" or "counter-terrorist" in any case.
func ParseSide(s string) Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "terrorist", "terrorists":
		return SideT
	case "ct", "counter-terrorist", "counterterrorists":
		return SideCT
	case "spectator", "spectators":
		return SideSpectators
	default:
		return SideUnknown
	}
}

// EndReason is why a round ended.
type EndReason string

const (
	EndBombExploded EndReason = "bomb_exploded"
	EndBombDefused  EndReason = "bomb_defused"
	EndTimeRanOut   EndReason = "time_ran_out"
	EndCTKilled     EndReason = "ct_killed"
	EndTKilled      EndReason = "t_killed"
	EndOther        EndReason = "other"
)

// BombEventKind distinguishes bomb defuse from detonation.
type BombEventKind string

const (
	BombDefuse   BombEventKind = "defuse"
	BombDetonate BombEventKind = "detonate"
)

// ---- Tables emitted by the parser ----

type Round struct {
	Number          int
	StartTick       int
	FreezeEndTick   int
	EndTick         int
	OfficialEndTick int // equals EndTick when the official-end event was not seen
	Winner          Side
	Reason          EndReason
}

// TickSnapshot is one player's state on one tick shortly after freeze time.
type TickSnapshot struct {
	Tick, RoundNumber int
	Name              string
	Side              Side
	TeamName          string   // clan name, may be empty
	EquipValue        int      // current equipment value
	Inventory         []string // weapon keys, see classify.WeaponKey
}

type Kill struct {
	Tick, RoundNumber        int
	AttackerName, VictimName string // AttackerName is empty for world kills
	AttackerSide, VictimSide Side
	Weapon                   string // weapon key of the killing weapon
	AttackerWeapon           string // display name of attacker's active weapon
	VictimWeapon             string // display name of victim's active weapon

	// Attacker world position at the kill; zero for world kills.
	AttackerX, AttackerY float64
}

type Damage struct {
	Tick, RoundNumber        int
	AttackerName, VictimName string
	Weapon                   string // weapon key
}

type BombEvent struct {
	Tick, RoundNumber int
	Kind              BombEventKind
}

// Replay holds every table parsed from one demo file. It is treated as
// immutable once returned by the parser; filters build new values.
type Replay struct {
	Path     string
	Name     string // base file name
	Event    string // top-level folder under the demo root
	MapName  string
	TickRate float64

	Rounds  []Round
	Ticks   []TickSnapshot
	Kills   []Kill
	Damages []Damage
	Bombs   []BombEvent
}

// Table names a replay table for Require.
type Table string

const (
	TableRounds Table = "rounds"
	TableTicks  Table = "ticks"
	TableKills  Table = "kills"
)

func (r *Replay) rows(t Table) int {
	switch t {
	case TableRounds:
		return len(r.Rounds)
	case TableTicks:
		return len(r.Ticks)
	case TableKills:
		return len(r.Kills)
	}
	return 0
}

// Require returns an ErrMissingData error naming every empty table in tables.
func (r *Replay) Require(tables ...Table) error {
	var missing []string
	for _, t := range tables {
		if r.rows(t) == 0 {
			missing = append(missing, string(t))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", r.Name, ErrMissingData, strings.Join(missing, ", "))
	}
	return nil
}

// FirstRound returns the minimum round number, or false if there are no rounds.
func (r *Replay) FirstRound() (int, bool) {
	if len(r.Rounds) == 0 {
		return 0, false
	}
	first := r.Rounds[0].Number
	for _, rd := range r.Rounds[1:] {
		if rd.Number < first {
			first = rd.Number
		}
	}
	return first, true
}

// KillsByRound groups kills by round number, preserving input order.
func (r *Replay) KillsByRound() map[int][]Kill {
	out := make(map[int][]Kill)
	for _, k := range r.Kills {
		out[k.RoundNumber] = append(out[k.RoundNumber], k)
	}
	return out
}

// TicksByRound groups snapshots by round number, preserving input order.
func (r *Replay) TicksByRound() map[int][]TickSnapshot {
	out := make(map[int][]TickSnapshot)
	for _, t := range r.Ticks {
		out[t.RoundNumber] = append(out[t.RoundNumber], t)
	}
	return out
}

// ---- Aggregated metrics ----

// Counter is the unit of accumulation for one (player, category) pair.
type Counter struct {
	Kills  int
	Deaths int
	Rounds int
}

func (c Counter) KDRatio() float64 {
	if c.Deaths == 0 {
		return float64(c.Kills)
	}
	return float64(c.Kills) / float64(c.Deaths)
}

// Pct returns part/whole*100, or 0 when whole is 0.
func Pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
