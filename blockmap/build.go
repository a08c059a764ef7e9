// SPDX-License-Identifier: GPL-2.0-or-later

// Package blockmap is the uniform grid over the level. Every cell knows the
// static lines crossing it and the things whose center lies inside it.
package blockmap

import (
	"log/slog"

	"github.com/pkg/errors"

	"goedge/bsp"
	"goedge/cvars"
	qmath "goedge/math"
	"goedge/math/vec"
)

var (
	ErrNoLines       = errors.New("blockmap: level has no lines")
	ErrBadCellSize   = errors.New("blockmap: bad cell size")
	ErrAlreadyLinked = errors.New("thing already linked")
	ErrNotLinked     = errors.New("thing not linked")
)

type Options struct {
	// CellSize of 0 uses bm_cellsize.
	CellSize float32
	// Bounds overrides the box computed from the line endpoints.
	Bounds *bsp.BBox
}

type Blockmap struct {
	Origin   vec.Vec2
	CellSize float32
	cols     int
	rows     int

	cellLines [][]bsp.LineID
	numLines  int

	cellThings []ThingID
	things     []thingLink

	// one buffer per query nesting level
	marks []*Marks
	depth int
}

// Build rasterizes every line into the cells its segment passes through.
func Build(lines []bsp.Line, opts Options) (*Blockmap, error) {
	if len(lines) == 0 {
		slog.Error("Build: no lines")
		return nil, ErrNoLines
	}
	size := opts.CellSize
	if size == 0 {
		size = cvars.BlockmapCellSize.Value()
	}
	if !(size > 0) {
		return nil, errors.Wrapf(ErrBadCellSize, "%v", size)
	}
	var bounds bsp.BBox
	if opts.Bounds != nil {
		bounds = *opts.Bounds
	} else {
		bounds = bsp.EmptyBox()
		for i := range lines {
			bounds.AddPoint(lines[i].V1)
			bounds.AddPoint(lines[i].V2)
		}
	}
	if bounds.Empty() {
		return nil, errors.Wrap(ErrNoLines, "empty bounds")
	}
	bm := &Blockmap{
		Origin:   bounds.Min,
		CellSize: size,
		cols:     int((bounds.Max.X-bounds.Min.X)/size) + 1,
		rows:     int((bounds.Max.Y-bounds.Min.Y)/size) + 1,
		numLines: len(lines),
	}
	n := bm.cols * bm.rows
	bm.cellLines = make([][]bsp.LineID, n)
	bm.cellThings = make([]ThingID, n)
	for i := range bm.cellThings {
		bm.cellThings[i] = NoThing
	}
	for i := range lines {
		bm.addLine(bsp.LineID(i), &lines[i])
	}
	return bm, nil
}

// addLine walks the rows the line spans and adds it to the columns covered
// by the part of the line inside each row.
func (bm *Blockmap) addLine(id bsp.LineID, l *bsp.Line) {
	s := float64(bm.CellSize)
	x1 := float64(l.V1.X) - float64(bm.Origin.X)
	y1 := float64(l.V1.Y) - float64(bm.Origin.Y)
	x2 := float64(l.V2.X) - float64(bm.Origin.X)
	y2 := float64(l.V2.Y) - float64(bm.Origin.Y)
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	r0 := max(qmath.FloorDiv(y1, s), 0)
	r1 := min(qmath.FloorDiv(y2, s), bm.rows-1)
	for r := r0; r <= r1; r++ {
		ya := max(y1, float64(r)*s)
		yb := min(y2, float64(r+1)*s)
		xa, xb := x1, x2
		if y2 != y1 {
			xa = x1 + (ya-y1)*(x2-x1)/(y2-y1)
			xb = x1 + (yb-y1)*(x2-x1)/(y2-y1)
		}
		c0 := qmath.FloorDiv(min(xa, xb), s)
		c1 := qmath.FloorDiv(max(xa, xb), s)
		if c1 < 0 || c0 >= bm.cols {
			continue
		}
		c0 = max(c0, 0)
		c1 = min(c1, bm.cols-1)
		for c := c0; c <= c1; c++ {
			i := r*bm.cols + c
			bm.cellLines[i] = append(bm.cellLines[i], id)
		}
	}
}

func (bm *Blockmap) Dims() (cols, rows int) {
	return bm.cols, bm.rows
}

// Bounds is the area covered by the grid.
func (bm *Blockmap) Bounds() bsp.BBox {
	return bsp.BBox{
		Min: bm.Origin,
		Max: vec.Vec2{
			X: bm.Origin.X + float32(bm.cols)*bm.CellSize,
			Y: bm.Origin.Y + float32(bm.rows)*bm.CellSize,
		},
	}
}

// CellOf returns the cell containing (x, y), ok is false outside the grid.
func (bm *Blockmap) CellOf(x, y float32) (cx, cy int, ok bool) {
	cx = qmath.FloorDiv(float64(x)-float64(bm.Origin.X), float64(bm.CellSize))
	cy = qmath.FloorDiv(float64(y)-float64(bm.Origin.Y), float64(bm.CellSize))
	ok = cx >= 0 && cy >= 0 && cx < bm.cols && cy < bm.rows
	return cx, cy, ok
}

func (bm *Blockmap) clampedCellOf(x, y float32) int {
	cx, cy, _ := bm.CellOf(x, y)
	cx = qmath.Clamp(0, cx, bm.cols-1)
	cy = qmath.Clamp(0, cy, bm.rows-1)
	return cy*bm.cols + cx
}

// CellLines returns the static lines of a cell. The slice must not be
// modified.
func (bm *Blockmap) CellLines(cx, cy int) []bsp.LineID {
	if cx < 0 || cy < 0 || cx >= bm.cols || cy >= bm.rows {
		return nil
	}
	return bm.cellLines[cy*bm.cols+cx]
}

type Stats struct {
	Cells      int
	EmptyCells int
	MaxLines   int
	LineRefs   int
	Things     int
}

func (bm *Blockmap) Stats() Stats {
	st := Stats{Cells: len(bm.cellLines)}
	for _, l := range bm.cellLines {
		if len(l) == 0 {
			st.EmptyCells++
		}
		st.LineRefs += len(l)
		st.MaxLines = max(st.MaxLines, len(l))
	}
	for i := range bm.things {
		if bm.things[i].cell >= 0 {
			st.Things++
		}
	}
	return st
}
