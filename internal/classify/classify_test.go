package classify

import (
	"testing"

	"github.com/pable/csround/internal/model"
)

func tick(tk int, name string, side model.Side, value int) model.TickSnapshot {
	return model.TickSnapshot{Tick: tk, RoundNumber: 1, Name: name, Side: side, EquipValue: value}
}

// ---- Economy ----

func TestEconomySnapshotModeAndWindow(t *testing.T) {
	ticks := []model.TickSnapshot{
		tick(99, "a", model.SideCT, 9999), // before freeze end
		tick(100, "a", model.SideCT, 4000),
		tick(101, "a", model.SideCT, 4000),
		tick(102, "a", model.SideCT, 200), // one noisy tick
		tick(100, "b", model.SideT, 800),
		tick(116, "b", model.SideT, 800),
		tick(117, "b", model.SideT, 5000), // after window
		tick(100, "watcher", model.SideSpectators, 1000),
	}
	snap := EconomySnapshot(ticks, 100, DefaultSnapshotWindow, nil, EquipValue)
	if len(snap.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(snap.Players))
	}
	if snap.CTTotal != 4000 {
		t.Errorf("CTTotal = %d, want 4000", snap.CTTotal)
	}
	if snap.TTotal != 800 {
		t.Errorf("TTotal = %d, want 800", snap.TTotal)
	}
}

func TestEconomySnapshotTieFirstSeen(t *testing.T) {
	ticks := []model.TickSnapshot{
		tick(10, "a", model.SideT, 300),
		tick(11, "a", model.SideT, 700),
		tick(12, "a", model.SideT, 700),
		tick(13, "a", model.SideT, 300),
	}
	snap := EconomySnapshot(ticks, 10, DefaultSnapshotWindow, nil, EquipValue)
	if snap.TTotal != 300 {
		t.Errorf("tie should resolve to first-seen value 300, got %d", snap.TTotal)
	}
}

func TestEconomySnapshotNormalizes(t *testing.T) {
	ticks := []model.TickSnapshot{
		tick(10, "SH1R0", model.SideCT, 1000),
		tick(11, "sh1r0", model.SideCT, 1000),
	}
	norm := func(s string) string {
		if s == "SH1R0" || s == "sh1r0" {
			return "sh1ro"
		}
		return s
	}
	snap := EconomySnapshot(ticks, 10, DefaultSnapshotWindow, norm, EquipValue)
	if len(snap.Players) != 1 || snap.Players[0].Player != "sh1ro" {
		t.Fatalf("expected one normalized player, got %+v", snap.Players)
	}
	if snap.CTTotal != 1000 {
		t.Errorf("CTTotal = %d, want 1000", snap.CTTotal)
	}
}

func TestEconomySnapshotEmptyWindow(t *testing.T) {
	ticks := []model.TickSnapshot{tick(500, "a", model.SideT, 100)}
	if snap := EconomySnapshot(ticks, 10, DefaultSnapshotWindow, nil, EquipValue); !snap.Empty() {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestInventoryWorth(t *testing.T) {
	ts := model.TickSnapshot{Inventory: []string{"ak47", "glock", "knife", "hegrenade"}}
	if got := InventoryWorth(ts); got != 2900 {
		t.Errorf("InventoryWorth = %d, want 2900", got)
	}
}

func TestClassifyEconomy(t *testing.T) {
	cases := []struct {
		ct, t  int
		wantCT Condition
		wantT  Condition
	}{
		{ct: 10000, t: 7500, wantCT: Advantage, wantT: Disadvantage},
		{ct: 7500, t: 10000, wantCT: Disadvantage, wantT: Advantage},
		{ct: 10000, t: 10000, wantCT: Equal, wantT: Equal},
		{ct: 12000, t: 10000, wantCT: Equal, wantT: Equal}, // exactly threshold
		{ct: 12001, t: 10000, wantCT: Advantage, wantT: Disadvantage},
	}
	for _, c := range cases {
		ct, tt := ClassifyEconomy(c.ct, c.t, 2000)
		if ct != c.wantCT || tt != c.wantT {
			t.Errorf("ClassifyEconomy(%d, %d) = (%s, %s), want (%s, %s)", c.ct, c.t, ct, tt, c.wantCT, c.wantT)
		}
	}
}

// ---- Exit frags ----

func TestExitFragBombExploded(t *testing.T) {
	r := model.Round{Number: 1, EndTick: 200, OfficialEndTick: 300, Winner: model.SideT, Reason: model.EndBombExploded}
	bomb := BombTicks{Detonate: 100, HasDetonate: true}

	if !IsExitFrag(model.SideCT, 150, r, bomb) {
		t.Error("CT kill after detonation should be an exit frag")
	}
	if IsExitFrag(model.SideCT, 50, r, bomb) {
		t.Error("CT kill before detonation should not be an exit frag")
	}
	for _, tk := range []int{50, 150, 250} {
		if IsExitFrag(model.SideT, tk, r, bomb) {
			t.Errorf("T kill at %d should never be an exit frag", tk)
		}
	}
}

func TestExitFragDetonateFallsBackToEndTick(t *testing.T) {
	r := model.Round{EndTick: 200, OfficialEndTick: 300, Winner: model.SideT, Reason: model.EndBombExploded}
	if IsExitFrag(model.SideCT, 150, r, BombTicks{}) {
		t.Error("without a detonation tick, kill before end tick is not an exit frag")
	}
	if !IsExitFrag(model.SideCT, 250, r, BombTicks{}) {
		t.Error("without a detonation tick, kill after end tick is an exit frag")
	}
}

func TestExitFragDefuseNeedsTick(t *testing.T) {
	r := model.Round{EndTick: 200, OfficialEndTick: 300, Winner: model.SideCT, Reason: model.EndBombDefused}
	if IsExitFrag(model.SideT, 250, r, BombTicks{}) {
		t.Error("unknown defuse tick must never yield an exit frag")
	}
	bomb := BombTicks{Defuse: 180, HasDefuse: true}
	if !IsExitFrag(model.SideT, 190, r, bomb) {
		t.Error("T kill after defuse should be an exit frag")
	}
	if IsExitFrag(model.SideCT, 190, r, bomb) {
		t.Error("CT kill after defuse should not be an exit frag")
	}
}

func TestExitFragTimeRanOutWindow(t *testing.T) {
	r := model.Round{EndTick: 200, OfficialEndTick: 300, Winner: model.SideCT, Reason: model.EndTimeRanOut}
	cases := map[int]bool{150: false, 200: false, 201: true, 300: true, 301: false}
	for tk, want := range cases {
		if got := IsExitFrag(model.SideT, tk, r, BombTicks{}); got != want {
			t.Errorf("T kill at %d: got %v, want %v", tk, got, want)
		}
	}
}

func TestExitFragEliminationNever(t *testing.T) {
	r := model.Round{EndTick: 200, OfficialEndTick: 300, Winner: model.SideCT, Reason: model.EndTKilled}
	if IsExitFrag(model.SideCT, 250, r, BombTicks{}) || IsExitFrag(model.SideT, 250, r, BombTicks{}) {
		t.Error("elimination rounds never produce exit frags")
	}
}

func TestBombTicksByRoundKeepsLast(t *testing.T) {
	got := BombTicksByRound([]model.BombEvent{
		{Tick: 100, RoundNumber: 1, Kind: model.BombDetonate},
		{Tick: 120, RoundNumber: 1, Kind: model.BombDetonate},
		{Tick: 90, RoundNumber: 2, Kind: model.BombDefuse},
	})
	if b := got[1]; !b.HasDetonate || b.Detonate != 120 || b.HasDefuse {
		t.Errorf("round 1 bomb ticks = %+v", b)
	}
	if b := got[2]; !b.HasDefuse || b.Defuse != 90 {
		t.Errorf("round 2 bomb ticks = %+v", b)
	}
}

// ---- First kill ----

func TestFirstKillSkipsInvalid(t *testing.T) {
	kills := []model.Kill{
		{Tick: 10, AttackerName: "", VictimName: "x", AttackerSide: model.SideUnknown, Weapon: "world"},
		{Tick: 20, AttackerName: "a", VictimName: "a", AttackerSide: model.SideT, Weapon: "hegrenade"},
		{Tick: 25, AttackerName: "c", VictimName: "x", AttackerSide: model.SideCT, Weapon: "trigger_hurt"},
		{Tick: 40, AttackerName: "b", VictimName: "y", AttackerSide: model.SideCT, Weapon: "ak47"},
		{Tick: 30, AttackerName: "d", VictimName: "z", AttackerSide: model.SideT, Weapon: "awp"},
		{Tick: 30, AttackerName: "e", VictimName: "w", AttackerSide: model.SideT, Weapon: "awp"},
	}
	fk, ok := FirstKill(kills)
	if !ok {
		t.Fatal("expected a first kill")
	}
	if fk.AttackerName != "d" {
		t.Errorf("first killer = %q, want d", fk.AttackerName)
	}
}

func TestFirstKillNone(t *testing.T) {
	if _, ok := FirstKill(nil); ok {
		t.Error("no kills should yield no first kill")
	}
}

func TestRoundOutcome(t *testing.T) {
	if o := RoundOutcome(true, model.SideT, model.SideT); o != FKWon {
		t.Errorf("got %s, want fk_won", o)
	}
	if o := RoundOutcome(true, model.SideT, model.SideCT); o != FKLost {
		t.Errorf("got %s, want fk_lost", o)
	}
	if o := RoundOutcome(false, model.SideCT, model.SideCT); o != NoFKWon {
		t.Errorf("got %s, want nofk_won", o)
	}
	if o := RoundOutcome(false, model.SideCT, model.SideT); o != NoFKLost {
		t.Errorf("got %s, want nofk_lost", o)
	}
}

func TestOutcomePredicates(t *testing.T) {
	cases := []struct {
		o       Outcome
		fk, won bool
	}{
		{FKWon, true, true},
		{FKLost, true, false},
		{NoFKWon, false, true},
		{NoFKLost, false, false},
	}
	for _, c := range cases {
		if c.o.GotFirstKill() != c.fk || c.o.Won() != c.won {
			t.Errorf("%s: GotFirstKill=%v Won=%v, want %v %v", c.o, c.o.GotFirstKill(), c.o.Won(), c.fk, c.won)
		}
	}
}

// ---- Weapon duels ----

func TestDuelSymmetry(t *testing.T) {
	awp, glock := WeaponValue("AWP"), WeaponValue("Glock-18")
	if awp != 4750 || glock != 200 {
		t.Fatalf("prices: awp=%d glock=%d", awp, glock)
	}
	d := ClassifyDuel(awp, glock, DefaultDuelThreshold)
	if d != DuelHigher {
		t.Errorf("attacker category = %s, want higher_econ", d)
	}
	if d.Mirror() != DuelLower {
		t.Errorf("victim category = %s, want lower_econ", d.Mirror())
	}
	swapped := ClassifyDuel(glock, awp, DefaultDuelThreshold)
	if swapped != DuelLower || swapped.Mirror() != DuelHigher {
		t.Errorf("swapped duel = %s/%s, want lower_econ/higher_econ", swapped, swapped.Mirror())
	}
}

func TestDuelBand(t *testing.T) {
	if d := ClassifyDuel(2900, 2700, 200); d != DuelEqual {
		t.Errorf("gap of exactly threshold should be equal, got %s", d)
	}
	if d := ClassifyDuel(2700, 2900, 200); d != DuelEqual {
		t.Errorf("negative gap of exactly threshold should be equal, got %s", d)
	}
	if d := ClassifyDuel(1050, 1250, 199); d != DuelLower {
		t.Errorf("got %s, want lower_econ", d)
	}
}

func TestWeaponValueFreeItems(t *testing.T) {
	for _, w := range []string{"Knife", "knife_karambit", "HE Grenade", "Molotov", "Flashbang", "Smoke Grenade", "Decoy Grenade", "C4", "Unknown Gadget", ""} {
		if v := WeaponValue(w); v != 0 {
			t.Errorf("WeaponValue(%q) = %d, want 0", w, v)
		}
	}
}

func TestIsAWPDuel(t *testing.T) {
	if !IsAWPDuel("AWP", "AK-47") || !IsAWPDuel("Glock-18", "awp") {
		t.Error("expected AWP duel")
	}
	if IsAWPDuel("SSG 08", "AK-47") {
		t.Error("SSG 08 is not the AWP")
	}
}

func TestWeaponKey(t *testing.T) {
	cases := map[string]string{
		"AK-47":          "ak47",
		"M4A4":           "m4a1",
		"M4A1":           "m4a1_silencer",
		"USP-S":          "usp_silencer",
		"Knife":          "knife",
		"weapon_knife_t": "knife",
		"ak47":           "ak47",
		"weapon_deagle":  "deagle",
	}
	for in, want := range cases {
		if got := WeaponKey(in); got != want {
			t.Errorf("WeaponKey(%q) = %q, want %q", in, got, want)
		}
	}
	if !IsValidGun("Desert Eagle") || IsValidGun("Knife") || IsValidGun("HE Grenade") {
		t.Error("IsValidGun allow-list mismatch")
	}
}
