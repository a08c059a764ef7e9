// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"github.com/pkg/errors"

	"goedge/bsp"
	"goedge/cvars"
)

func (w *World) checkMutable(op string) error {
	if w.querying > 0 {
		instrumentViolation(op)
		return errors.Wrap(ErrReentrantQuery, op)
	}
	return nil
}

// Link puts a thing into the world at its current position.
func (w *World) Link(id ThingID) error {
	if err := w.checkMutable("link"); err != nil {
		return err
	}
	t, err := w.thing(id)
	if err != nil {
		return err
	}
	if t.linked {
		instrumentViolation("link")
		return errors.Wrapf(ErrAlreadyLinked, "thing %d", id)
	}
	instrumentLinkOp("link")
	w.link(id, t)
	return nil
}

// Unlink takes a thing out of the world and releases its touch nodes. On
// an unlinked thing it changes nothing and returns ErrNotLinked.
func (w *World) Unlink(id ThingID) error {
	if err := w.checkMutable("unlink"); err != nil {
		return err
	}
	t, err := w.thing(id)
	if err != nil {
		return err
	}
	if !t.linked {
		instrumentViolation("unlink")
		return errors.Wrapf(ErrNotLinked, "thing %d", id)
	}
	instrumentLinkOp("unlink")
	w.unlink(id, t)
	w.touch.Release(id)
	return nil
}

// UpdatePosition moves a linked thing. Touch nodes for sectors still
// overlapped are kept. An unlinked thing only gets its position stored
// and ErrNotLinked is returned.
func (w *World) UpdatePosition(id ThingID, x, y, z float32) error {
	if err := w.checkMutable("move"); err != nil {
		return err
	}
	t, err := w.thing(id)
	if err != nil {
		return err
	}
	if !t.linked {
		t.Pos.X, t.Pos.Y, t.Pos.Z = x, y, z
		return errors.Wrapf(ErrNotLinked, "thing %d", id)
	}
	instrumentLinkOp("move")
	w.unlink(id, t)
	t.Pos.X, t.Pos.Y, t.Pos.Z = x, y, z
	w.link(id, t)
	return nil
}

// SetFlags changes the flags of a thing. A linked thing is relinked so it
// leaves the structures it no longer belongs to.
func (w *World) SetFlags(id ThingID, flags ThingFlags) error {
	if err := w.checkMutable("flags"); err != nil {
		return err
	}
	t, err := w.thing(id)
	if err != nil {
		return err
	}
	if !t.linked {
		t.Flags = flags
		return nil
	}
	instrumentLinkOp("flags")
	w.unlink(id, t)
	if t.linkFlags&NoSector == 0 && flags&NoSector != 0 {
		w.touch.Release(id)
	}
	t.Flags = flags
	w.link(id, t)
	return nil
}

// unlink removes the thing from the blockmap and its subsector list. The
// touch nodes stay so the next link can reuse them.
func (w *World) unlink(id ThingID, t *Thing) {
	if t.linkFlags&NoBlockmap == 0 {
		if err := w.bm.UnlinkThing(id); err != nil {
			// a linked thing is always in the blockmap
			panic(err)
		}
	}
	if t.linkFlags&NoSector == 0 {
		if t.snext != NoThing {
			w.things[t.snext].sprev = t.sprev
		}
		if t.sprev != NoThing {
			w.things[t.sprev].snext = t.snext
		} else {
			w.subsectorThings[t.Subsector] = t.snext
		}
		t.snext, t.sprev = NoThing, NoThing
	}
	t.linked = false
}

func (w *World) link(id ThingID, t *Thing) {
	t.linkFlags = t.Flags
	t.Subsector = w.level.PointInSubsector(t.Pos.X, t.Pos.Y)
	if t.linkFlags&NoSector == 0 {
		t.sprev = NoThing
		t.snext = w.subsectorThings[t.Subsector]
		if t.snext != NoThing {
			w.things[t.snext].sprev = id
		}
		w.subsectorThings[t.Subsector] = id
		if cvars.TouchNodes.Bool() {
			w.touchSectors(id, t)
		} else {
			w.touch.Release(id)
		}
	}
	if t.linkFlags&NoBlockmap == 0 {
		if err := w.bm.LinkThing(id, t.Pos.X, t.Pos.Y, t.Radius); err != nil {
			// an unlinked thing is never in the blockmap
			panic(err)
		}
	}
	t.linked = true
}

// touchSectors refreshes the touch nodes of a thing: the sector of its
// subsector plus every sector whose subsectors the footprint overlaps.
func (w *World) touchSectors(id ThingID, t *Thing) {
	w.touch.Begin(id)
	w.touch.Touch(id, w.level.SubsectorSector(t.Subsector))
	w.level.BoxSubsectors(t.Box(), func(s bsp.SubsectorID) bool {
		w.touch.Touch(id, w.level.SubsectorSector(s))
		return true
	})
	w.touch.End(id)
}
