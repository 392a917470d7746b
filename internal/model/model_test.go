package model

import (
	"errors"
	"strings"
	"testing"
)

func TestOpponent(t *testing.T) {
	cases := map[Side]Side{
		SideT:          SideCT,
		SideCT:         SideT,
		SideSpectators: SideUnknown,
		SideUnknown:    SideUnknown,
	}
	for in, want := range cases {
		if got := in.Opponent(); got != want {
			t.Errorf("%v.Opponent() = %v, want %v", in, got, want)
		}
	}
}

func TestRequireNamesEmptyTables(t *testing.T) {
	rep := &Replay{Name: "a.dem", Rounds: []Round{{Number: 1}}}
	if err := rep.Require(TableRounds); err != nil {
		t.Fatalf("Require(rounds) = %v", err)
	}
	err := rep.Require(TableRounds, TableTicks, TableKills)
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("err = %v, want ErrMissingData", err)
	}
	if !strings.Contains(err.Error(), "ticks, kills") {
		t.Errorf("error %q should name the empty tables", err)
	}
}

func TestPct(t *testing.T) {
	if got := Pct(1, 4); got != 25 {
		t.Errorf("Pct(1, 4) = %v", got)
	}
	if got := Pct(3, 0); got != 0 {
		t.Errorf("Pct(3, 0) = %v, want 0", got)
	}
}
