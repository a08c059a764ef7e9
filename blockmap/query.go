// SPDX-License-Identifier: GPL-2.0-or-later

package blockmap

import (
	"goedge/bsp"
	qmath "goedge/math"
)

// Marks records which lines a single query already reported.
type Marks struct {
	stamp []uint32
	epoch uint32
}

// Seen marks the line and reports whether it was marked before.
func (m *Marks) Seen(id bsp.LineID) bool {
	if m.stamp[id] == m.epoch {
		return true
	}
	m.stamp[id] = m.epoch
	return false
}

// AcquireMarks returns a cleared mark buffer for a query. Queries started
// from inside a visitor get their own buffer. Every call must be paired
// with ReleaseMarks.
func (bm *Blockmap) AcquireMarks() *Marks {
	if bm.depth == len(bm.marks) {
		bm.marks = append(bm.marks, &Marks{stamp: make([]uint32, bm.numLines)})
	}
	m := bm.marks[bm.depth]
	bm.depth++
	m.epoch++
	if m.epoch == 0 {
		clear(m.stamp)
		m.epoch = 1
	}
	return m
}

func (bm *Blockmap) ReleaseMarks() {
	bm.depth--
}

// cellRange returns the cells overlapping box grown by halo cells on every
// side, clamped to the grid. ok is false if nothing is left.
func (bm *Blockmap) cellRange(box bsp.BBox, halo int) (x0, y0, x1, y1 int, ok bool) {
	s := float64(bm.CellSize)
	x0 = qmath.FloorDiv(float64(box.Min.X)-float64(bm.Origin.X), s) - halo
	y0 = qmath.FloorDiv(float64(box.Min.Y)-float64(bm.Origin.Y), s) - halo
	x1 = qmath.FloorDiv(float64(box.Max.X)-float64(bm.Origin.X), s) + halo
	y1 = qmath.FloorDiv(float64(box.Max.Y)-float64(bm.Origin.Y), s) + halo
	if x1 < 0 || y1 < 0 || x0 >= bm.cols || y0 >= bm.rows || x0 > x1 || y0 > y1 {
		return 0, 0, 0, 0, false
	}
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, bm.cols-1)
	y1 = min(y1, bm.rows-1)
	return x0, y0, x1, y1, true
}

// QueryLines calls fn once for every line in the cells overlapping box.
// Lines are not clipped against box. It returns false if fn stopped it.
func (bm *Blockmap) QueryLines(box bsp.BBox, fn func(bsp.LineID) bool) bool {
	x0, y0, x1, y1, ok := bm.cellRange(box, 0)
	if !ok {
		return true
	}
	m := bm.AcquireMarks()
	defer bm.ReleaseMarks()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			for _, l := range bm.cellLines[y*bm.cols+x] {
				if m.Seen(l) {
					continue
				}
				if !fn(l) {
					return false
				}
			}
		}
	}
	return true
}

// QueryThings calls fn for every linked thing whose box overlaps box.
// Things are linked by their center only, so one extra ring of cells is
// scanned to catch things hanging over from a neighbor cell.
func (bm *Blockmap) QueryThings(box bsp.BBox, fn func(ThingID) bool) bool {
	x0, y0, x1, y1, ok := bm.cellRange(box, 1)
	if !ok {
		return true
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			stopped := !bm.ForEachCellThing(x, y, func(id ThingID) bool {
				if !bm.things[id].box.Overlaps(box) {
					return true
				}
				return fn(id)
			})
			if stopped {
				return false
			}
		}
	}
	return true
}
