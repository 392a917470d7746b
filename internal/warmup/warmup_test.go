package warmup

import (
	"testing"

	"github.com/pable/csround/internal/model"
)

// makeReplay builds a two-round replay whose first round used weapons1.
func makeReplay(weapons1 ...string) *model.Replay {
	rep := &model.Replay{
		Name:   "test.dem",
		Rounds: []model.Round{{Number: 1}, {Number: 2}},
		Ticks: []model.TickSnapshot{
			{Tick: 10, RoundNumber: 1, Name: "a"},
			{Tick: 110, RoundNumber: 2, Name: "a"},
		},
		Kills: []model.Kill{
			{Tick: 20, RoundNumber: 1, AttackerName: "a", VictimName: "b"},
			{Tick: 120, RoundNumber: 2, AttackerName: "a", VictimName: "b"},
		},
		Damages: []model.Damage{{Tick: 130, RoundNumber: 2, Weapon: "ak47"}},
		Bombs:   []model.BombEvent{{Tick: 30, RoundNumber: 1, Kind: model.BombDetonate}},
	}
	for i, w := range weapons1 {
		rep.Damages = append(rep.Damages, model.Damage{Tick: 15 + i, RoundNumber: 1, Weapon: w})
	}
	return rep
}

func TestKnifeOnlyRoundRemoved(t *testing.T) {
	rep := makeReplay("knife", "knife")
	out, removed := FilterKnifeRound(rep)
	if !removed {
		t.Fatal("expected knife round to be removed")
	}
	if len(out.Rounds) != 1 || out.Rounds[0].Number != 2 {
		t.Errorf("rounds = %+v, want only round 2", out.Rounds)
	}
	if len(out.Ticks) != 1 || len(out.Kills) != 1 || len(out.Damages) != 1 || len(out.Bombs) != 0 {
		t.Errorf("round 1 rows left behind: ticks=%d kills=%d damages=%d bombs=%d",
			len(out.Ticks), len(out.Kills), len(out.Damages), len(out.Bombs))
	}
	for _, k := range out.Kills {
		if k.RoundNumber == 1 {
			t.Error("kill from round 1 survived")
		}
	}
	// Input untouched.
	if len(rep.Rounds) != 2 || len(rep.Kills) != 2 || len(rep.Damages) != 3 {
		t.Error("input replay was modified")
	}
}

func TestRealWeaponKeepsRound(t *testing.T) {
	rep := makeReplay("ak47", "knife")
	out, removed := FilterKnifeRound(rep)
	if removed {
		t.Fatal("round with ak47 damage must not be removed")
	}
	if out != rep {
		t.Error("expected the same replay back when nothing is removed")
	}
}

func TestDisplayNameCountsAsRealWeapon(t *testing.T) {
	if _, removed := FilterKnifeRound(makeReplay("Knife", "AK-47")); removed {
		t.Error("display-name AK-47 should count as a real weapon")
	}
}

func TestNoDamageKeepsRound(t *testing.T) {
	rep := makeReplay()
	if _, removed := FilterKnifeRound(rep); removed {
		t.Error("first round with no damage must be kept")
	}
}

func TestGrenadeOnlyRoundRemoved(t *testing.T) {
	if _, removed := FilterKnifeRound(makeReplay("knife", "hegrenade")); !removed {
		t.Error("knife and grenade damage only should count as a knife round")
	}
}

func TestEmptyReplay(t *testing.T) {
	rep := &model.Replay{}
	if out, removed := FilterKnifeRound(rep); removed || out != rep {
		t.Error("empty replay should pass through")
	}
}
