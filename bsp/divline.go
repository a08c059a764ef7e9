// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// DivLine is an infinite line through (X, Y) with direction (DX, DY).
// The front side is to the right of the direction.
type DivLine struct {
	X, Y   float32
	DX, DY float32
}

func (d DivLine) cross(x, y float32) float64 {
	return float64(d.DX)*(float64(y)-float64(d.Y)) -
		float64(d.DY)*(float64(x)-float64(d.X))
}

// PointOnSide returns 0 for the front side and 1 for the back side.
// Points exactly on the line count as back.
func (d DivLine) PointOnSide(x, y float32) int {
	if d.cross(x, y) < 0 {
		return 0
	}
	return 1
}

// BoxSide reports whether any corner of b lies strictly in front of and
// strictly behind the line.
func (d DivLine) BoxSide(b BBox) (front, back bool) {
	for _, c := range b.Corners() {
		cr := d.cross(c.X, c.Y)
		if cr < 0 {
			front = true
		} else if cr > 0 {
			back = true
		}
	}
	return front, back
}

// Intercept returns the fraction along d where it crosses o, using the
// ratio of perpendicular distances. Parallel lines return 0.
func (d DivLine) Intercept(o DivLine) float32 {
	den := float64(o.DY)*float64(d.DX) - float64(o.DX)*float64(d.DY)
	if den == 0 {
		return 0
	}
	num := (float64(o.X)-float64(d.X))*float64(o.DY) +
		(float64(d.Y)-float64(o.Y))*float64(o.DX)
	return float32(num / den)
}
