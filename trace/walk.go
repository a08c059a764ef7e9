// SPDX-License-Identifier: GPL-2.0-or-later

package trace

import (
	stdmath "math"
	"slices"

	"goedge/bsp"
	qmath "goedge/math"
)

// nudge moves a start point off a cell boundary.
const nudge = 1.0 / 256

// axis returns the step direction, the fraction of the segment until the
// first boundary and the fraction between boundaries for one coordinate.
func axis(p, d, size float64) (step int, tMax, tDelta float64) {
	switch {
	case d > 0:
		return 1, ((stdmath.Floor(p/size)+1)*size - p) / d, size / d
	case d < 0:
		return -1, (stdmath.Floor(p/size)*size - p) / d, -size / d
	}
	return 0, stdmath.Inf(1), stdmath.Inf(1)
}

func onBoundary(p, size float64) bool {
	return stdmath.Mod(p, size) == 0
}

type cell struct{ x, y int }

func direction(d float64) float64 {
	if d < 0 {
		return -1
	}
	return 1
}

// walk visits the cells crossed by div between the fractions t0 and t1 in
// order. When the segment passes exactly through a cell corner both side
// cells are visited before the diagonal one.
func (tr *Tracer) walk(div bsp.DivLine, t0, t1 float64, visit func(cx, cy int) bool) bool {
	bm := tr.bm
	size := float64(bm.CellSize)
	cols, rows := bm.Dims()
	ox, oy := float64(bm.Origin.X), float64(bm.Origin.Y)

	x1 := float64(div.X) + t0*float64(div.DX) - ox
	y1 := float64(div.Y) + t0*float64(div.DY) - oy
	dx := (t1 - t0) * float64(div.DX)
	dy := (t1 - t0) * float64(div.DY)
	bx, by := qmath.FloorDiv(x1, size), qmath.FloorDiv(y1, size)
	if onBoundary(x1, size) {
		x1 += nudge * direction(dx)
	}
	if onBoundary(y1, size) {
		y1 += nudge * direction(dy)
	}
	cx := qmath.Clamp(0, qmath.FloorDiv(x1, size), cols-1)
	cy := qmath.Clamp(0, qmath.FloorDiv(y1, size), rows-1)
	stepX, tMaxX, tDeltaX := axis(x1, dx, size)
	stepY, tMaxY, tDeltaY := axis(y1, dy, size)

	// A start on a boundary nudged backwards leaves the cells behind it,
	// which hold the lines lying on that boundary.
	if bx != cx || by != cy {
		behind := [...]cell{{bx, cy}, {cx, by}, {bx, by}}
		for i, c := range behind {
			if c == (cell{cx, cy}) || c.x < 0 || c.y < 0 || c.x >= cols || c.y >= rows {
				continue
			}
			if slices.Contains(behind[:i], c) {
				continue
			}
			if !visit(c.x, c.y) {
				return false
			}
		}
	}

	for n := 2 * (cols + rows + 1); n > 0; n-- {
		if !visit(cx, cy) {
			return false
		}
		if tMaxX > 1 && tMaxY > 1 {
			return true
		}
		switch {
		case tMaxX < tMaxY:
			cx += stepX
			tMaxX += tDeltaX
		case tMaxY < tMaxX:
			cy += stepY
			tMaxY += tDeltaY
		default:
			if !visit(cx+stepX, cy) || !visit(cx, cy+stepY) {
				return false
			}
			cx += stepX
			cy += stepY
			tMaxX += tDeltaX
			tMaxY += tDeltaY
		}
		if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
			return true
		}
	}
	return true
}
