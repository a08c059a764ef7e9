// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// Props are the region properties that apply to things inside a part of a
// sector: lighting, damage specials and movement modifiers.
type Props struct {
	Light     int
	Special   int
	Gravity   float32
	Friction  float32
	Viscosity float32
}

type ExtraFloorFlags uint8

const (
	// liquids never block and may overlap anything
	ExtraLiquid ExtraFloorFlags = 1 << iota
	// thick floors have a body from Bottom to Top, thin ones have Bottom == Top
	ExtraThick
	// the control sector light applies below this floor
	ExtraFloodLight
	// the control sector props apply below this floor
	ExtraFloodProps
)

// ExtraFloor is a stacked floor inside a host sector, created by a line
// special that references the host from a control sector.
type ExtraFloor struct {
	Bottom, Top float32
	Flags       ExtraFloorFlags
	// properties of the control sector
	Control *Props
	// properties in effect between this floor and the next lower one,
	// computed by floors.Flood
	Below *Props
	// the line special that created this floor
	Line LineID
}

func (ef *ExtraFloor) Liquid() bool {
	return ef.Flags&ExtraLiquid != 0
}

func (ef *ExtraFloor) Solid() bool {
	return ef.Flags&ExtraLiquid == 0
}

// Gap is an open vertical interval [Floor, Ceil).
type Gap struct {
	Floor, Ceil float32
}

func (g Gap) Height() float32 {
	return g.Ceil - g.Floor
}

type Sector struct {
	Floor, Ceil float32
	Props       Props

	// sorted bottom to top
	Solid  []*ExtraFloor
	Liquid []*ExtraFloor

	gaps      []Gap
	gapsValid bool
}

// SetHeights moves the base floor and ceiling, for example for doors and
// lifts, and invalidates the cached gaps.
func (s *Sector) SetHeights(floor, ceil float32) {
	s.Floor = floor
	s.Ceil = ceil
	s.gapsValid = false
}

// Invalidate drops the cached gaps.
func (s *Sector) Invalidate() {
	s.gapsValid = false
}

// CachedGaps returns the gaps stored by StoreGaps, ok is false once the
// sector changed.
func (s *Sector) CachedGaps() (gaps []Gap, ok bool) {
	return s.gaps, s.gapsValid
}

func (s *Sector) StoreGaps(g []Gap) {
	s.gaps = g
	s.gapsValid = true
}
