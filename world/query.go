// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"goedge/bsp"
	"goedge/cvars"
	"goedge/floors"
	"goedge/trace"
)

func (w *World) enter() {
	w.querying++
}

func (w *World) leave() {
	w.querying--
}

// ForEachTouchedSector visits the sectors the footprint of a linked thing
// overlaps, in no particular order. Things without sector links have none.
func (w *World) ForEachTouchedSector(id ThingID, fn func(bsp.SectorID) bool) bool {
	t, err := w.thing(id)
	if err != nil || !t.linked || t.linkFlags&NoSector != 0 {
		return true
	}
	w.enter()
	defer w.leave()
	if !cvars.TouchNodes.Bool() {
		return fn(w.level.SubsectorSector(t.Subsector))
	}
	return w.touch.ForEachSector(id, fn)
}

// ForEachSectorThing visits the things whose footprint overlaps sec.
func (w *World) ForEachSectorThing(sec bsp.SectorID, fn func(ThingID) bool) bool {
	w.enter()
	defer w.leave()
	return w.touch.ForEachThing(sec, fn)
}

// ForEachSubsectorThing visits the things whose center lies in s, most
// recently linked first.
func (w *World) ForEachSubsectorThing(s bsp.SubsectorID, fn func(ThingID) bool) bool {
	if s < 0 || int(s) >= len(w.subsectorThings) {
		return true
	}
	w.enter()
	defer w.leave()
	for id := w.subsectorThings[s]; id != NoThing; id = w.things[id].snext {
		if !fn(id) {
			return false
		}
	}
	return true
}

// QueryLines visits every line in the blockmap cells overlapping box once.
func (w *World) QueryLines(box bsp.BBox, fn func(bsp.LineID) bool) bool {
	w.enter()
	defer w.leave()
	return w.bm.QueryLines(box, fn)
}

// QueryThings visits the linked things whose footprint overlaps box.
func (w *World) QueryThings(box bsp.BBox, fn func(ThingID) bool) bool {
	w.enter()
	defer w.leave()
	return w.bm.QueryThings(box, fn)
}

// Trace reports the lines and things crossed by the segment from (ax, ay)
// to (bx, by), nearest first.
func (w *World) Trace(ax, ay, bx, by float32, flags trace.Flags, fn func(*trace.Intercept) bool) bool {
	w.enter()
	defer w.leave()
	return w.tracer.Trace(ax, ay, bx, by, flags, fn)
}

// ThingGap returns the open gaps of the sector the thing stands in and the
// index of the one it belongs to, -1 if there are none.
func (w *World) ThingGap(id ThingID) ([]bsp.Gap, int, error) {
	t, err := w.thing(id)
	if err != nil {
		return nil, -1, err
	}
	sec := w.level.Sector(w.level.SubsectorSector(w.level.PointInSubsector(t.Pos.X, t.Pos.Y)))
	gaps := floors.SectorGaps(sec)
	return gaps, floors.FindBestGap(gaps, t.Pos.Z, t.Pos.Z+t.Height), nil
}

// ThingProps returns the region properties at the feet of the thing.
func (w *World) ThingProps(id ThingID) (*bsp.Props, error) {
	t, err := w.thing(id)
	if err != nil {
		return nil, err
	}
	sec := w.level.Sector(w.level.SubsectorSector(w.level.PointInSubsector(t.Pos.X, t.Pos.Y)))
	return floors.PropsAt(sec, t.Pos.Z), nil
}
