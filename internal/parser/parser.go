package parser

import (
	"fmt"
	"os"
	"path/filepath"

	common "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/common"
	demoinfocs "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs"
	"github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/events"

	"github.com/pable/csround/internal/classify"
	"github.com/pable/csround/internal/model"
)

// Options tunes what the parser records.
type Options struct {
	// SnapshotWindow is how many ticks after freeze end player snapshots are
	// recorded for. Zero means classify.DefaultSnapshotWindow.
	SnapshotWindow int
	// Event is stored on the replay as-is.
	Event string
}

// ParseReplay parses the demo at path into a model.Replay. Panics raised by
// the demo library on corrupt input are returned as errors.
func ParseReplay(path string, opts Options) (rep *model.Replay, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open demo: %w", err)
	}
	defer f.Close()

	window := opts.SnapshotWindow
	if window <= 0 {
		window = classify.DefaultSnapshotWindow
	}

	p := demoinfocs.NewParser(f)
	defer p.Close()

	defer func() {
		if r := recover(); r != nil {
			rep, err = nil, fmt.Errorf("parse demo %s: panic: %v", filepath.Base(path), r)
		}
	}()

	rep = &model.Replay{
		Path:  path,
		Name:  filepath.Base(path),
		Event: opts.Event,
	}

	var (
		roundNumber    int
		roundStartTick int
		freezeEndTick  int
		frozen         bool // freeze time still running in the current round
	)

	p.RegisterEventHandler(func(e events.RoundStart) {
		if p.GameState().IsWarmupPeriod() {
			return
		}
		roundNumber++
		roundStartTick = p.GameState().IngameTick()
		freezeEndTick = roundStartTick
		frozen = true
	})

	p.RegisterEventHandler(func(e events.RoundFreezetimeEnd) {
		if roundNumber == 0 {
			return
		}
		freezeEndTick = p.GameState().IngameTick()
		frozen = false
	})

	p.RegisterEventHandler(func(e events.RoundEnd) {
		if roundNumber == 0 {
			return
		}
		endTick := p.GameState().IngameTick()
		rep.Rounds = append(rep.Rounds, model.Round{
			Number:          roundNumber,
			StartTick:       roundStartTick,
			FreezeEndTick:   freezeEndTick,
			EndTick:         endTick,
			OfficialEndTick: endTick,
			Winner:          sideFromCommon(e.Winner),
			Reason:          reasonFromEvent(e.Reason),
		})
	})

	p.RegisterEventHandler(func(e events.RoundEndOfficial) {
		n := len(rep.Rounds)
		if n == 0 || rep.Rounds[n-1].Number != roundNumber {
			return
		}
		rep.Rounds[n-1].OfficialEndTick = p.GameState().IngameTick()
	})

	// Starting loadout: one row per playing player per frame right after freeze end.
	p.RegisterEventHandler(func(e events.FrameDone) {
		if roundNumber == 0 || frozen {
			return
		}
		tick := p.GameState().IngameTick()
		if tick < freezeEndTick || tick > freezeEndTick+window {
			return
		}
		for _, pl := range p.GameState().Participants().Playing() {
			if pl == nil || pl.Name == "" {
				continue
			}
			rep.Ticks = append(rep.Ticks, model.TickSnapshot{
				Tick:        tick,
				RoundNumber: roundNumber,
				Name:        pl.Name,
				Side:        sideFromCommon(pl.Team),
				TeamName:    clanName(pl),
				EquipValue:  pl.EquipmentValueCurrent(),
				Inventory:   inventory(pl),
			})
		}
	})

	p.RegisterEventHandler(func(e events.Kill) {
		if roundNumber == 0 || e.Victim == nil {
			return
		}
		k := model.Kill{
			Tick:         p.GameState().IngameTick(),
			RoundNumber:  roundNumber,
			VictimName:   e.Victim.Name,
			VictimSide:   sideFromCommon(e.Victim.Team),
			Weapon:       equipmentKey(e.Weapon),
			VictimWeapon: activeWeaponName(e.Victim),
		}
		if e.Killer != nil {
			k.AttackerName = e.Killer.Name
			k.AttackerSide = sideFromCommon(e.Killer.Team)
			k.AttackerWeapon = activeWeaponName(e.Killer)
			pos := e.Killer.Position()
			k.AttackerX, k.AttackerY = pos.X, pos.Y
			if k.AttackerWeapon == "" && e.Weapon != nil {
				k.AttackerWeapon = e.Weapon.Type.String()
			}
		}
		rep.Kills = append(rep.Kills, k)
	})

	p.RegisterEventHandler(func(e events.PlayerHurt) {
		if roundNumber == 0 || e.Player == nil {
			return
		}
		d := model.Damage{
			Tick:        p.GameState().IngameTick(),
			RoundNumber: roundNumber,
			VictimName:  e.Player.Name,
			Weapon:      equipmentKey(e.Weapon),
		}
		if e.Attacker != nil {
			d.AttackerName = e.Attacker.Name
		}
		rep.Damages = append(rep.Damages, d)
	})

	p.RegisterEventHandler(func(e events.BombDefused) {
		if roundNumber == 0 {
			return
		}
		rep.Bombs = append(rep.Bombs, model.BombEvent{
			Tick: p.GameState().IngameTick(), RoundNumber: roundNumber, Kind: model.BombDefuse,
		})
	})

	p.RegisterEventHandler(func(e events.BombExplode) {
		if roundNumber == 0 {
			return
		}
		rep.Bombs = append(rep.Bombs, model.BombEvent{
			Tick: p.GameState().IngameTick(), RoundNumber: roundNumber, Kind: model.BombDetonate,
		})
	})

	if err := p.ParseToEnd(); err != nil {
		return nil, fmt.Errorf("parse demo: %w", err)
	}

	header := p.Header()
	rep.MapName = header.MapName
	rep.TickRate = p.TickRate()

	return rep, nil
}

func sideFromCommon(t common.Team) model.Side {
	switch t {
	case common.TeamTerrorists:
		return model.SideT
	case common.TeamCounterTerrorists:
		return model.SideCT
	case common.TeamSpectators:
		return model.SideSpectators
	default:
		return model.SideUnknown
	}
}

func reasonFromEvent(r events.RoundEndReason) model.EndReason {
	switch r {
	case events.RoundEndReasonTargetBombed:
		return model.EndBombExploded
	case events.RoundEndReasonBombDefused:
		return model.EndBombDefused
	case events.RoundEndReasonTargetSaved:
		return model.EndTimeRanOut
	case events.RoundEndReasonTerroristsWin:
		return model.EndCTKilled
	case events.RoundEndReasonCTWin:
		return model.EndTKilled
	default:
		return model.EndOther
	}
}

func equipmentKey(e *common.Equipment) string {
	if e == nil {
		return ""
	}
	return classify.WeaponKey(e.Type.String())
}

func activeWeaponName(pl *common.Player) string {
	if w := pl.ActiveWeapon(); w != nil {
		return w.Type.String()
	}
	return ""
}

func inventory(pl *common.Player) []string {
	var out []string
	for _, w := range pl.Weapons() {
		if w == nil {
			continue
		}
		out = append(out, classify.WeaponKey(w.Type.String()))
	}
	return out
}

func clanName(pl *common.Player) string {
	if pl.TeamState == nil {
		return ""
	}
	return pl.TeamState.ClanName()
}
