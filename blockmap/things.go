// SPDX-License-Identifier: GPL-2.0-or-later

package blockmap

import (
	"github.com/pkg/errors"

	"goedge/bsp"
	"goedge/conlog"
)

type ThingID int32

const NoThing ThingID = -1

// thingLink is the per thing entry of the cell chains. cell is -1 while
// the thing is not linked.
type thingLink struct {
	next, prev ThingID
	cell       int32
	box        bsp.BBox
}

func (bm *Blockmap) grow(id ThingID) {
	for int(id) >= len(bm.things) {
		bm.things = append(bm.things, thingLink{next: NoThing, prev: NoThing, cell: -1})
	}
}

// LinkThing puts the thing into the cell containing its center. Things
// outside the grid go to the nearest border cell.
func (bm *Blockmap) LinkThing(id ThingID, x, y, radius float32) error {
	if id < 0 {
		return errors.Wrapf(ErrNotLinked, "bad thing %d", id)
	}
	bm.grow(id)
	t := &bm.things[id]
	if t.cell >= 0 {
		return errors.Wrapf(ErrAlreadyLinked, "thing %d", id)
	}
	if radius > bm.CellSize {
		conlog.DPrintf("LinkThing: thing %d radius %v exceeds cell size %v\n", id, radius, bm.CellSize)
	}
	c := bm.clampedCellOf(x, y)
	t.cell = int32(c)
	t.box = bsp.BoxAround(x, y, radius)
	t.prev = NoThing
	t.next = bm.cellThings[c]
	if t.next != NoThing {
		bm.things[t.next].prev = id
	}
	bm.cellThings[c] = id
	return nil
}

func (bm *Blockmap) UnlinkThing(id ThingID) error {
	if !bm.IsLinked(id) {
		return errors.Wrapf(ErrNotLinked, "thing %d", id)
	}
	t := &bm.things[id]
	if t.next != NoThing {
		bm.things[t.next].prev = t.prev
	}
	if t.prev != NoThing {
		bm.things[t.prev].next = t.next
	} else {
		bm.cellThings[t.cell] = t.next
	}
	t.next, t.prev, t.cell = NoThing, NoThing, -1
	return nil
}

func (bm *Blockmap) IsLinked(id ThingID) bool {
	return id >= 0 && int(id) < len(bm.things) && bm.things[id].cell >= 0
}

// ThingBox returns the box the thing was linked with.
func (bm *Blockmap) ThingBox(id ThingID) (bsp.BBox, bool) {
	if !bm.IsLinked(id) {
		return bsp.BBox{}, false
	}
	return bm.things[id].box, true
}

// ThingCell returns the cell the thing is linked into.
func (bm *Blockmap) ThingCell(id ThingID) (cx, cy int, ok bool) {
	if !bm.IsLinked(id) {
		return 0, 0, false
	}
	c := int(bm.things[id].cell)
	return c % bm.cols, c / bm.cols, true
}

// ForEachCellThing visits the things linked into one cell, most recently
// linked first.
func (bm *Blockmap) ForEachCellThing(cx, cy int, fn func(ThingID) bool) bool {
	if cx < 0 || cy < 0 || cx >= bm.cols || cy >= bm.rows {
		return true
	}
	for id := bm.cellThings[cy*bm.cols+cx]; id != NoThing; {
		// fn may unlink id
		next := bm.things[id].next
		if !fn(id) {
			return false
		}
		id = next
	}
	return true
}
