// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"sort"

	"github.com/pkg/errors"

	"goedge/blockmap"
	"goedge/bsp"
	"goedge/cmd"
	"goedge/conlog"
)

var commandNames = []string{"bm_stats", "touch_stats", "thing_info"}

// RegisterCommands adds the debug console commands for w. Only one world
// can own them at a time.
func (w *World) RegisterCommands() error {
	fns := []cmd.QFunc{w.bmStats, w.touchStats, w.thingInfo}
	for i, n := range commandNames {
		if err := cmd.AddCommand(n, fns[i]); err != nil {
			for _, o := range commandNames[:i] {
				cmd.RemoveCommand(o)
			}
			return err
		}
	}
	return nil
}

func (w *World) UnregisterCommands() {
	for _, n := range commandNames {
		cmd.RemoveCommand(n)
	}
}

func (w *World) bmStats(_ cmd.Arguments) error {
	st := w.bm.Stats()
	cols, rows := w.bm.Dims()
	conlog.Printf("blockmap %dx%d cell size %v\n", cols, rows, w.bm.CellSize)
	conlog.Printf("%d cells, %d empty, %d line refs, max %d lines per cell, %d things\n",
		st.Cells, st.EmptyCells, st.LineRefs, st.MaxLines, st.Things)
	return nil
}

func (w *World) touchStats(_ cmd.Arguments) error {
	st := w.touch.Stats()
	conlog.Printf("touch nodes: %d total, %d in use, %d free\n", st.Nodes, st.InUse, st.Free)
	return nil
}

func (w *World) thingInfo(a cmd.Arguments) error {
	args := a.Args()
	if len(args) < 2 {
		conlog.Printf("thing_info <id>\n")
		return nil
	}
	id := blockmap.ThingID(args[1].Int())
	t, err := w.thing(id)
	if err != nil {
		return errors.Wrap(err, "thing_info")
	}
	conlog.Printf("thing %d at %v radius %v height %v linked %v\n", id, t.Pos, t.Radius, t.Height, t.linked)
	if !t.linked {
		return nil
	}
	var secs []int
	w.ForEachTouchedSector(id, func(s bsp.SectorID) bool {
		secs = append(secs, int(s))
		return true
	})
	sort.Ints(secs)
	conlog.Printf("subsector %d, touches sectors %v\n", t.Subsector, secs)
	if cx, cy, ok := w.bm.ThingCell(id); ok {
		conlog.Printf("blockmap cell %d,%d\n", cx, cy)
	}
	gaps, best, _ := w.ThingGap(id)
	conlog.Printf("gaps %v, best %d\n", gaps, best)
	return nil
}
