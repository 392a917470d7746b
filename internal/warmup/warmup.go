// Package warmup drops a leading knife round from a replay.
package warmup

import (
	"strings"

	"github.com/pable/csround/internal/classify"
	"github.com/pable/csround/internal/model"
)

// IsKnifeRound reports whether round n of rep was played without any real
// weapon. A round with no damage at all is not treated as a knife round.
func IsKnifeRound(rep *model.Replay, n int) bool {
	seen := false
	for _, d := range rep.Damages {
		if d.RoundNumber != n {
			continue
		}
		seen = true
		if classify.ValidGuns[strings.ToLower(d.Weapon)] || classify.IsValidGun(d.Weapon) {
			return false
		}
	}
	return seen
}

// FilterKnifeRound returns rep without its first round when that round is a
// knife round. The input is never modified; when nothing is removed the same
// pointer is returned and removed is false.
func FilterKnifeRound(rep *model.Replay) (out *model.Replay, removed bool) {
	first, ok := rep.FirstRound()
	if !ok || !IsKnifeRound(rep, first) {
		return rep, false
	}

	out = &model.Replay{
		Path:     rep.Path,
		Name:     rep.Name,
		Event:    rep.Event,
		MapName:  rep.MapName,
		TickRate: rep.TickRate,
	}
	for _, r := range rep.Rounds {
		if r.Number != first {
			out.Rounds = append(out.Rounds, r)
		}
	}
	for _, t := range rep.Ticks {
		if t.RoundNumber != first {
			out.Ticks = append(out.Ticks, t)
		}
	}
	for _, k := range rep.Kills {
		if k.RoundNumber != first {
			out.Kills = append(out.Kills, k)
		}
	}
	for _, d := range rep.Damages {
		if d.RoundNumber != first {
			out.Damages = append(out.Damages, d)
		}
	}
	for _, b := range rep.Bombs {
		if b.RoundNumber != first {
			out.Bombs = append(out.Bombs, b)
		}
	}
	return out, true
}
