// SPDX-License-Identifier: GPL-2.0-or-later

// Package bsptest builds small levels with a valid BSP for tests and demos.
package bsptest

import (
	"goedge/bsp"
	"goedge/math/vec"
)

const (
	DefaultFloor = 0
	DefaultCeil  = 128
	DefaultLight = 160
)

// Grid returns a level of cols x rows square sectors of the given size with
// the bottom left corner at the origin. Sector (c, r) has index r*cols+c and
// owns the subsector with the same index.
func Grid(cols, rows int, size float32) *bsp.Level {
	lv := &bsp.Level{}
	for i := 0; i < cols*rows; i++ {
		lv.Sectors = append(lv.Sectors, &bsp.Sector{
			Floor: DefaultFloor,
			Ceil:  DefaultCeil,
			Props: bsp.Props{Light: DefaultLight, Gravity: 1, Friction: 1},
		})
	}
	sec := func(c, r int) bsp.SectorID {
		if c < 0 || r < 0 || c >= cols || r >= rows {
			return bsp.NoSector
		}
		return bsp.SectorID(r*cols + c)
	}
	pt := func(c, r int) vec.Vec2 {
		return vec.Vec2{X: float32(c) * size, Y: float32(r) * size}
	}
	addLine := func(a, b vec.Vec2, front, back bsp.SectorID) bsp.LineID {
		lv.Lines = append(lv.Lines, bsp.Line{V1: a, V2: b, Front: front, Back: back})
		return bsp.LineID(len(lv.Lines) - 1)
	}

	// hor[r][c] is the edge from (c,r) to (c+1,r)
	hor := make([][]bsp.LineID, rows+1)
	for r := 0; r <= rows; r++ {
		hor[r] = make([]bsp.LineID, cols)
		for c := 0; c < cols; c++ {
			if r == 0 {
				hor[r][c] = addLine(pt(c+1, r), pt(c, r), sec(c, r), bsp.NoSector)
				continue
			}
			hor[r][c] = addLine(pt(c, r), pt(c+1, r), sec(c, r-1), sec(c, r))
		}
	}
	// ver[c][r] is the edge from (c,r) to (c,r+1)
	ver := make([][]bsp.LineID, cols+1)
	for c := 0; c <= cols; c++ {
		ver[c] = make([]bsp.LineID, rows)
		for r := 0; r < rows; r++ {
			if c == cols {
				ver[c][r] = addLine(pt(c, r+1), pt(c, r), sec(c-1, r), bsp.NoSector)
				continue
			}
			ver[c][r] = addLine(pt(c, r), pt(c, r+1), sec(c, r), sec(c-1, r))
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			lv.Subsectors = append(lv.Subsectors, bsp.Subsector{
				Sector: sec(c, r),
				Segs: []bsp.Seg{
					{V1: pt(c, r), V2: pt(c, r+1), Line: ver[c][r]},
					{V1: pt(c, r+1), V2: pt(c+1, r+1), Line: hor[r+1][c]},
					{V1: pt(c+1, r+1), V2: pt(c+1, r), Line: ver[c+1][r]},
					{V1: pt(c+1, r), V2: pt(c, r), Line: hor[r][c]},
				},
			})
		}
	}

	var split func(c0, c1, r0, r1 int) bsp.Child
	split = func(c0, c1, r0, r1 int) bsp.Child {
		if c1-c0 == 1 && r1-r0 == 1 {
			return bsp.LeafChild(bsp.SubsectorID(r0*cols + c0))
		}
		var n bsp.Node
		if c1-c0 >= r1-r0 {
			cm := (c0 + c1) / 2
			n.Div = bsp.DivLine{X: float32(cm) * size, Y: float32(r0) * size, DY: float32(r1-r0) * size}
			n.Children[0] = split(cm, c1, r0, r1)
			n.Children[1] = split(c0, cm, r0, r1)
		} else {
			rm := (r0 + r1) / 2
			n.Div = bsp.DivLine{X: float32(c0) * size, Y: float32(rm) * size, DX: float32(c1-c0) * size}
			n.Children[0] = split(c0, c1, r0, rm)
			n.Children[1] = split(c0, c1, rm, r1)
		}
		lv.Nodes = append(lv.Nodes, n)
		return bsp.Child(len(lv.Nodes) - 1)
	}
	split(0, cols, 0, rows)

	if err := lv.Finalize(); err != nil {
		panic(err)
	}
	return lv
}
