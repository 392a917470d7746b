package classify

import "github.com/pable/csround/internal/model"

// Outcome joins first-kill attribution with the round result for one player.
type Outcome int

const (
	FKWon Outcome = iota
	FKLost
	NoFKWon
	NoFKLost
)

func (o Outcome) String() string {
	switch o {
	case FKWon:
		return "fk_won"
	case FKLost:
		return "fk_lost"
	case NoFKWon:
		return "nofk_won"
	default:
		return "nofk_lost"
	}
}

// GotFirstKill reports whether the outcome includes the round's first kill.
func (o Outcome) GotFirstKill() bool { return o == FKWon || o == FKLost }

// Won reports whether the outcome is a round win.
func (o Outcome) Won() bool { return o == FKWon || o == NoFKWon }

// ValidOpeningKill reports whether k can open a round. World kills,
// suicides and kills by a player without a playing side are excluded.
func ValidOpeningKill(k model.Kill) bool {
	if k.AttackerName == "" || k.AttackerName == k.VictimName {
		return false
	}
	if !k.AttackerSide.Playing() {
		return false
	}
	return !IsWorldDamage(k.Weapon)
}

// FirstKill returns the earliest valid kill among kills. Equal ticks keep
// input order. ok is false when no kill qualifies.
func FirstKill(kills []model.Kill) (first model.Kill, ok bool) {
	for _, k := range kills {
		if !ValidOpeningKill(k) {
			continue
		}
		if !ok || k.Tick < first.Tick {
			first, ok = k, true
		}
	}
	return first, ok
}

// RoundOutcome combines whether player opened the round with whether their
// side won it.
func RoundOutcome(gotFirstKill bool, side, winner model.Side) Outcome {
	won := side == winner
	switch {
	case gotFirstKill && won:
		return FKWon
	case gotFirstKill:
		return FKLost
	case won:
		return NoFKWon
	default:
		return NoFKLost
	}
}
