package classify

// DefaultDuelThreshold is the price gap within which two weapons count as equal.
const DefaultDuelThreshold = 200

// DuelCategory compares the attacker's weapon value against the victim's.
type DuelCategory int

const (
	DuelEqual DuelCategory = iota
	DuelHigher
	DuelLower
)

func (d DuelCategory) String() string {
	switch d {
	case DuelHigher:
		return "higher_econ"
	case DuelLower:
		return "lower_econ"
	default:
		return "equal_econ"
	}
}

// Mirror returns the category as seen from the other player.
func (d DuelCategory) Mirror() DuelCategory {
	switch d {
	case DuelHigher:
		return DuelLower
	case DuelLower:
		return DuelHigher
	default:
		return DuelEqual
	}
}

// ClassifyDuel buckets attackerValue-victimValue against threshold:
// above is Higher, below -threshold is Lower, inside the band is Equal.
func ClassifyDuel(attackerValue, victimValue, threshold int) DuelCategory {
	diff := attackerValue - victimValue
	switch {
	case diff > threshold:
		return DuelHigher
	case diff < -threshold:
		return DuelLower
	default:
		return DuelEqual
	}
}
