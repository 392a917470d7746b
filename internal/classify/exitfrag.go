package classify

import "github.com/pable/csround/internal/model"

// BombTicks holds the last defuse and detonation tick of a round.
// A zero value with the matching Has flag false means the event never happened.
type BombTicks struct {
	Defuse, Detonate       int
	HasDefuse, HasDetonate bool
}

// BombTicksByRound collects, per round, the last tick of each bomb event kind.
func BombTicksByRound(events []model.BombEvent) map[int]BombTicks {
	out := make(map[int]BombTicks)
	for _, e := range events {
		b := out[e.RoundNumber]
		switch e.Kind {
		case model.BombDefuse:
			if !b.HasDefuse || e.Tick > b.Defuse {
				b.Defuse, b.HasDefuse = e.Tick, true
			}
		case model.BombDetonate:
			if !b.HasDetonate || e.Tick > b.Detonate {
				b.Detonate, b.HasDetonate = e.Tick, true
			}
		}
		out[e.RoundNumber] = b
	}
	return out
}

// IsExitFrag reports whether a kill happened after the round's outcome was
// already settled:
//
//	CT kill, T won by detonation:   after the detonation (end tick if unknown)
//	T kill, CT won by defuse:       after the defuse (never if unknown)
//	T kill, CT won on time:         after the end tick, up to official end
//
// No other combination is ever an exit frag.
func IsExitFrag(attacker model.Side, killTick int, r model.Round, bomb BombTicks) bool {
	switch {
	case attacker == model.SideCT && r.Reason == model.EndBombExploded && r.Winner == model.SideT:
		detonate := r.EndTick
		if bomb.HasDetonate {
			detonate = bomb.Detonate
		}
		return killTick > detonate
	case attacker == model.SideT && r.Reason == model.EndBombDefused && r.Winner == model.SideCT:
		return bomb.HasDefuse && killTick > bomb.Defuse
	case attacker == model.SideT && r.Reason == model.EndTimeRanOut && r.Winner == model.SideCT:
		return killTick > r.EndTick && killTick <= r.OfficialEndTick
	}
	return false
}
