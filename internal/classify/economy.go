// Package classify assigns a categorical condition to rounds and kills.
package classify

import "github.com/pable/csround/internal/model"

// Condition is a side's economic standing for a round.
type Condition string

const (
	Advantage    Condition = "advantage"
	Equal        Condition = "equal"
	Disadvantage Condition = "disadvantage"
)

// DefaultSnapshotWindow is the number of ticks after freeze end whose
// snapshots describe a player's starting loadout.
const DefaultSnapshotWindow = 16

// PlayerSide identifies one player on one side within a round.
type PlayerSide struct {
	Player string
	Side   model.Side
}

// PlayerValue is the starting value resolved for one player.
type PlayerValue struct {
	PlayerSide
	Value int
}

// Snapshot is the economy picture of one round's starting window.
type Snapshot struct {
	Players []PlayerValue // in order of first appearance in the window
	CTTotal int
	TTotal  int
}

// Empty reports whether the window held no snapshots.
func (s Snapshot) Empty() bool { return len(s.Players) == 0 }

// ValueFunc extracts the economy value of a single tick snapshot.
type ValueFunc func(model.TickSnapshot) int

// EquipValue reads the player's current equipment value.
func EquipValue(t model.TickSnapshot) int { return t.EquipValue }

// InventoryWorth prices the player's inventory.
func InventoryWorth(t model.TickSnapshot) int { return InventoryValue(t.Inventory) }

// EconomySnapshot reduces the ticks of one round to a per-player value.
// Only ticks in [freezeEnd, freezeEnd+window] count. Each player's value is
// the mode of their values across the window; ties go to the value seen
// first. Players are identified by name after normalize is applied.
func EconomySnapshot(ticks []model.TickSnapshot, freezeEnd, window int, normalize func(string) string, value ValueFunc) Snapshot {
	type tally struct {
		counts map[int]int
		order  []int
	}
	var keys []PlayerSide
	tallies := make(map[PlayerSide]*tally)

	for _, t := range ticks {
		if t.Tick < freezeEnd || t.Tick > freezeEnd+window {
			continue
		}
		if !t.Side.Playing() {
			continue
		}
		name := t.Name
		if normalize != nil {
			name = normalize(name)
		}
		k := PlayerSide{Player: name, Side: t.Side}
		tl, ok := tallies[k]
		if !ok {
			tl = &tally{counts: make(map[int]int)}
			tallies[k] = tl
			keys = append(keys, k)
		}
		v := value(t)
		if tl.counts[v] == 0 {
			tl.order = append(tl.order, v)
		}
		tl.counts[v]++
	}

	var snap Snapshot
	for _, k := range keys {
		tl := tallies[k]
		best, bestCount := 0, 0
		for _, v := range tl.order {
			if c := tl.counts[v]; c > bestCount {
				best, bestCount = v, c
			}
		}
		snap.Players = append(snap.Players, PlayerValue{PlayerSide: k, Value: best})
		switch k.Side {
		case model.SideCT:
			snap.CTTotal += best
		case model.SideT:
			snap.TTotal += best
		}
	}
	return snap
}

// ClassifyEconomy compares team totals. A side is at an advantage only when
// its total exceeds the other's by strictly more than threshold.
func ClassifyEconomy(ctTotal, tTotal, threshold int) (ct, t Condition) {
	switch {
	case ctTotal > tTotal+threshold:
		return Advantage, Disadvantage
	case tTotal > ctTotal+threshold:
		return Disadvantage, Advantage
	default:
		return Equal, Equal
	}
}

// ConditionOf returns the condition that applies to side.
func ConditionOf(side model.Side, ct, t Condition) Condition {
	if side == model.SideCT {
		return ct
	}
	return t
}
