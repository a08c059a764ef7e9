// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/chewxy/math32"

	"goedge/math/vec"
)

type (
	LineID      int32
	SectorID    int32
	SubsectorID int32
)

const (
	NoLine   LineID   = -1
	NoSector SectorID = -1
)

type LineFlags uint16

const (
	LineBlocking LineFlags = 1 << iota
	LineTwoSided
)

// BBox is an axis aligned box in the map plane.
type BBox struct {
	Min vec.Vec2
	Max vec.Vec2
}

// EmptyBox returns a box that any AddPoint will replace.
func EmptyBox() BBox {
	return BBox{
		Min: vec.Vec2{X: math32.MaxFloat32, Y: math32.MaxFloat32},
		Max: vec.Vec2{X: -math32.MaxFloat32, Y: -math32.MaxFloat32},
	}
}

// BoxAround returns the square of half width r centered on (x, y).
func BoxAround(x, y, r float32) BBox {
	return BBox{
		Min: vec.Vec2{X: x - r, Y: y - r},
		Max: vec.Vec2{X: x + r, Y: y + r},
	}
}

func (b *BBox) AddPoint(p vec.Vec2) {
	b.Min.X = math32.Min(b.Min.X, p.X)
	b.Min.Y = math32.Min(b.Min.Y, p.Y)
	b.Max.X = math32.Max(b.Max.X, p.X)
	b.Max.Y = math32.Max(b.Max.Y, p.Y)
}

func (b BBox) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Overlaps reports whether the interiors of both boxes intersect.
// Boxes that only share an edge do not overlap.
func (b BBox) Overlaps(o BBox) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// Corners in the order bottom left, top left, top right, bottom right.
func (b BBox) Corners() [4]vec.Vec2 {
	return [4]vec.Vec2{
		b.Min,
		{X: b.Min.X, Y: b.Max.Y},
		b.Max,
		{X: b.Max.X, Y: b.Min.Y},
	}
}

// Line is a static wall segment of the level. Front is the sector on the
// right side when walking from V1 to V2.
type Line struct {
	V1, V2 vec.Vec2
	DX, DY float32
	Box    BBox
	Front  SectorID
	Back   SectorID
	Flags  LineFlags
}

func (l *Line) Div() DivLine {
	return DivLine{X: l.V1.X, Y: l.V1.Y, DX: l.DX, DY: l.DY}
}

// Blocking lines stop sight and movement: one sided or flagged.
func (l *Line) Blocking() bool {
	return l.Back == NoSector || l.Flags&LineBlocking != 0
}

// Seg is one edge of a subsector polygon. Line is NoLine for minisegs.
type Seg struct {
	V1, V2 vec.Vec2
	Line   LineID
}

func (s *Seg) Div() DivLine {
	return DivLine{X: s.V1.X, Y: s.V1.Y, DX: s.V2.X - s.V1.X, DY: s.V2.Y - s.V1.Y}
}

// Subsector is a convex leaf of the BSP. Its segs wind clockwise so the
// interior is on the front side of every seg.
type Subsector struct {
	Sector SectorID
	Segs   []Seg
	Box    BBox
}

// Child references either a node or, with LeafFlag set, a subsector.
type Child uint32

const LeafFlag Child = 1 << 31

func LeafChild(s SubsectorID) Child {
	return Child(s) | LeafFlag
}

func (c Child) IsLeaf() bool {
	return c&LeafFlag != 0
}

func (c Child) Subsector() SubsectorID {
	return SubsectorID(c &^ LeafFlag)
}

func (c Child) Node() int {
	return int(c)
}

// Node splits space by Div. Children[0] and Box[0] describe the front side.
type Node struct {
	Div      DivLine
	Box      [2]BBox
	Children [2]Child
}

// Level holds the static geometry produced by the level loader. It is not
// modified after Finalize apart from sector heights and extra floors.
type Level struct {
	Lines      []Line
	Sectors    []*Sector
	Subsectors []Subsector
	// the root is the last node
	Nodes []Node
}

func (lv *Level) Sector(id SectorID) *Sector {
	return lv.Sectors[id]
}

func (lv *Level) SubsectorSector(id SubsectorID) SectorID {
	return lv.Subsectors[id].Sector
}
