// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"goedge/bsp"
	"goedge/bsp/bsptest"
	"goedge/cbuf"
	"goedge/cmd"
	"goedge/commandline"
	"goedge/conlog"
	"goedge/cvar"
	"goedge/cvars"
	"goedge/dump"
	"goedge/floors"
	"goedge/math"
	"goedge/math/vec"
	"goedge/rand"
	"goedge/trace"
	"goedge/world"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		slog.Error("goedge", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	defer f.Close()
	return cvar.LoadYAML(f)
}

// decorate gives the test level some stacked floors: a lit bridge in every
// fourth sector and a slime pool in the next one.
func decorate(lv *bsp.Level) error {
	lamp := &bsp.Props{Light: 96, Gravity: 1, Friction: 1}
	slime := &bsp.Props{Light: 255, Special: 5, Gravity: 1, Friction: 0.5, Viscosity: 0.6}
	for i, sec := range lv.Sectors {
		var ef *bsp.ExtraFloor
		switch i % 4 {
		case 0:
			ef = &bsp.ExtraFloor{Bottom: 64, Top: 72, Flags: bsp.ExtraThick | bsp.ExtraFloodLight, Control: lamp}
		case 1:
			ef = &bsp.ExtraFloor{Bottom: 0, Top: 24, Flags: bsp.ExtraThick | bsp.ExtraLiquid, Control: slime}
		default:
			continue
		}
		ef.Line = bsp.NoLine
		if err := floors.AddExtraFloor(sec, ef); err != nil {
			return errors.Wrapf(err, "sector %d", i)
		}
	}
	return nil
}

func run() error {
	if p := commandline.Config(); p != "" {
		if err := loadConfig(p); err != nil {
			return err
		}
	}
	if commandline.Developer() {
		cvars.Developer.SetValue(float32(commandline.DeveloperLevel()))
	}

	n := commandline.Grid()
	size := float32(commandline.SectorSize())
	lv := bsptest.Grid(n, n, size)
	if err := decorate(lv); err != nil {
		return err
	}
	w, err := world.New(lv, world.Options{})
	if err != nil {
		return err
	}
	if err := w.RegisterCommands(); err != nil {
		return err
	}
	defer w.Close()
	defer w.UnregisterCommands()
	conlog.Printf("world %v: %dx%d sectors\n", w.ID(), n, n)

	g := rand.New(uint32(commandline.Seed()))
	extent := float32(n) * size
	var ids []world.ThingID
	for i := 0; i < commandline.Things(); i++ {
		r := g.Range(12, 40)
		p := g.Vec2(vec.Vec2{X: r, Y: r}, vec.Vec2{X: extent - r, Y: extent - r})
		id := w.AddThing(p.X, p.Y, 0, r, 56, 0)
		if err := w.Link(id); err != nil {
			return err
		}
		ids = append(ids, id)
	}

	cb := cbuf.New(cbuf.Commands, cbuf.Cvars)
	cb.AddText(commandline.Exec())

	hits := 0
	for tick := 0; tick < commandline.Ticks(); tick++ {
		if err := cb.Execute(); err != nil {
			return err
		}
		for _, id := range ids {
			t, _ := w.Thing(id)
			x := math.Clamp(t.Radius, t.Pos.X+g.Range(-8, 8), extent-t.Radius)
			y := math.Clamp(t.Radius, t.Pos.Y+g.Range(-8, 8), extent-t.Radius)
			if err := w.UpdatePosition(id, x, y, t.Pos.Z); err != nil {
				return err
			}
			// settle on the floor of the gap the thing belongs to
			gaps, best, err := w.ThingGap(id)
			if err != nil {
				return err
			}
			if best >= 0 && gaps[best].Height() >= t.Height && gaps[best].Floor != t.Pos.Z {
				if err := w.UpdatePosition(id, x, y, gaps[best].Floor); err != nil {
					return err
				}
			}
		}
		if len(ids) == 0 {
			continue
		}
		// one hit-scan per tick from a random thing
		shooter := ids[g.Intn(len(ids))]
		t, _ := w.Thing(shooter)
		to := g.Vec2(vec.Vec2{}, vec.Vec2{X: extent, Y: extent})
		w.Trace(t.Pos.X, t.Pos.Y, to.X, to.Y, trace.Lines|trace.Things, func(in *trace.Intercept) bool {
			if in.IsLine() {
				return !lv.Lines[in.Line].Blocking()
			}
			if in.Thing == shooter {
				return true
			}
			hits++
			conlog.DPrintf("tick %d: %d hits %d at %v\n", tick, shooter, in.Thing, in.Point())
			return false
		})
	}
	conlog.Printf("%d ticks, %d things, %d hits\n", commandline.Ticks(), len(ids), hits)
	for _, c := range []string{"bm_stats", "touch_stats"} {
		if _, err := cmd.ExecuteString(c); err != nil {
			return err
		}
	}

	if p := commandline.Dump(); p != "" {
		if err := dump.Save(p, w); err != nil {
			return err
		}
		conlog.Printf("wrote %s\n", p)
	}
	return nil
}
