package aggregator

import "testing"

const (
	playerA = "alpha"
	playerB = "bravo"
	playerC = "charlie"
)

const catAdv Category = "advantage"

func TestAddCreatesAtZero(t *testing.T) {
	tbl := New()
	if tbl.Has(playerA) {
		t.Fatal("empty table should not have players")
	}
	tbl.Add(playerA, catAdv, Kill)
	tbl.Add(playerA, catAdv, Kill)
	tbl.Add(playerA, catAdv, Delta{Deaths: 1, Rounds: 2})

	got := tbl.Get(playerA, catAdv)
	if got.Kills != 2 || got.Deaths != 1 || got.Rounds != 2 {
		t.Errorf("counter = %+v, want kills=2 deaths=1 rounds=2", got)
	}
}

func TestGetDoesNotInsert(t *testing.T) {
	tbl := New()
	if c := tbl.Get(playerB, Overall); c.Kills != 0 || c.Deaths != 0 || c.Rounds != 0 {
		t.Errorf("missing counter should read as zero, got %+v", c)
	}
	if tbl.Len() != 0 || tbl.Has(playerB) {
		t.Error("Get must not insert the player")
	}
}

func TestPlayersSorted(t *testing.T) {
	tbl := New()
	tbl.Add(playerC, Overall, Round)
	tbl.Add(playerA, Overall, Round)
	tbl.Add(playerB, catAdv, Kill)
	tbl.Add(playerA, catAdv, Kill)

	got := tbl.Players()
	want := []string{playerA, playerB, playerC}
	if len(got) != len(want) {
		t.Fatalf("Players() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Players()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// ---- K/D convention ----

func TestKDZeroDeathsUsesKills(t *testing.T) {
	tbl := New()
	for i := 0; i < 5; i++ {
		tbl.Add(playerA, catAdv, Kill)
	}
	if kd := tbl.KD(playerA, catAdv); kd != 5.0 {
		t.Errorf("KD with 5 kills and 0 deaths = %v, want 5.0", kd)
	}
}

func TestKDRatio(t *testing.T) {
	tbl := New()
	tbl.Add(playerA, catAdv, Delta{Kills: 3, Deaths: 2})
	if kd := tbl.KD(playerA, catAdv); kd != 1.5 {
		t.Errorf("KD = %v, want 1.5", kd)
	}
	if kd := tbl.KD(playerB, catAdv); kd != 0 {
		t.Errorf("KD for unknown player = %v, want 0", kd)
	}
}

// ---- Participation ----

func TestParticipationScopedByReplay(t *testing.T) {
	p := NewParticipation()
	if !p.Mark("a.dem", playerA, 1) {
		t.Error("first mark should be new")
	}
	if p.Mark("a.dem", playerA, 1) {
		t.Error("duplicate mark should be rejected")
	}
	p.Mark("b.dem", playerA, 1)
	p.Mark("a.dem", playerA, 2)
	p.Mark("a.dem", playerB, 1)

	if got := p.Rounds(playerA); got != 3 {
		t.Errorf("Rounds(alpha) = %d, want 3", got)
	}
	if got := p.Rounds(playerB); got != 1 {
		t.Errorf("Rounds(bravo) = %d, want 1", got)
	}
	if got := p.Rounds(playerC); got != 0 {
		t.Errorf("Rounds(charlie) = %d, want 0", got)
	}
	if pl := p.Players(); len(pl) != 2 || pl[0] != playerA {
		t.Errorf("Players() = %v", pl)
	}
}
