// SPDX-License-Identifier: GPL-2.0-or-later

package floors

import (
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"goedge/bsp"
)

type Fit int

const (
	FitOk Fit = iota
	FitStuckInCeiling
	FitStuckInFloor
	FitStuckInOtherFloor
)

var (
	ErrStuckInCeiling    = errors.New("extra floor stuck in ceiling")
	ErrStuckInFloor      = errors.New("extra floor stuck in floor")
	ErrStuckInOtherFloor = errors.New("extra floor overlaps another extra floor")
	ErrBadExtraFloor     = errors.New("malformed extra floor")
)

func (f Fit) String() string {
	switch f {
	case FitOk:
		return "Ok"
	case FitStuckInCeiling:
		return "StuckInCeiling"
	case FitStuckInFloor:
		return "StuckInFloor"
	case FitStuckInOtherFloor:
		return "StuckInOtherFloor"
	}
	return "Unknown"
}

// Err maps a fit result to its sentinel error, nil for FitOk.
func (f Fit) Err() error {
	switch f {
	case FitStuckInCeiling:
		return ErrStuckInCeiling
	case FitStuckInFloor:
		return ErrStuckInFloor
	case FitStuckInOtherFloor:
		return ErrStuckInOtherFloor
	}
	return nil
}

// ExtraFloorFits checks a new solid extra floor spanning [z1, z2) against
// the host sector and the solid extra floors already inserted.
func ExtraFloorFits(sec *bsp.Sector, z1, z2 float32) Fit {
	if z2 > sec.Ceil {
		return FitStuckInCeiling
	}
	if z1 < sec.Floor {
		return FitStuckInFloor
	}
	for _, ef := range sec.Solid {
		if z1 < ef.Top && z2 > ef.Bottom {
			return FitStuckInOtherFloor
		}
		// two thin floors at the same height
		if z1 == ef.Bottom && z2 == ef.Top {
			return FitStuckInOtherFloor
		}
	}
	return FitOk
}

// AddExtraFloor validates ef and inserts it into the host chain by height.
// Any error means the level is malformed and must not be played.
func AddExtraFloor(sec *bsp.Sector, ef *bsp.ExtraFloor) error {
	if ef.Top < ef.Bottom {
		return errors.Wrapf(ErrBadExtraFloor, "line %d: top %v below bottom %v", ef.Line, ef.Top, ef.Bottom)
	}
	if ef.Flags&bsp.ExtraThick == 0 && ef.Top != ef.Bottom {
		return errors.Wrapf(ErrBadExtraFloor, "line %d: thin floor with height %v", ef.Line, ef.Top-ef.Bottom)
	}
	if ef.Control == nil {
		return errors.Wrapf(ErrBadExtraFloor, "line %d: no control sector", ef.Line)
	}
	if ef.Solid() {
		if fit := ExtraFloorFits(sec, ef.Bottom, ef.Top); fit != FitOk {
			slog.Error("AddExtraFloor: bad extra floor", "line", ef.Line, "fit", fit.String())
			return errors.Wrapf(fit.Err(), "line %d: [%v, %v)", ef.Line, ef.Bottom, ef.Top)
		}
		sec.Solid = insertSorted(sec.Solid, ef)
	} else {
		sec.Liquid = insertSorted(sec.Liquid, ef)
	}
	sec.Invalidate()
	Flood(sec)
	return nil
}

func insertSorted(chain []*bsp.ExtraFloor, ef *bsp.ExtraFloor) []*bsp.ExtraFloor {
	i := sort.Search(len(chain), func(i int) bool {
		return chain[i].Bottom > ef.Bottom
	})
	chain = append(chain, nil)
	copy(chain[i+1:], chain[i:])
	chain[i] = ef
	return chain
}

// Flood assigns the region properties below every extra floor, walking from
// the ceiling down. Light flows down from FloodLight floors, the remaining
// properties from FloodProps floors and from liquids.
func Flood(sec *bsp.Sector) {
	var all []*bsp.ExtraFloor
	forEachSorted(sec, func(ef *bsp.ExtraFloor) {
		all = append(all, ef)
	})
	cur := &sec.Props
	for i := len(all) - 1; i >= 0; i-- {
		ef := all[i]
		light := ef.Flags&bsp.ExtraFloodLight != 0
		props := ef.Flags&bsp.ExtraFloodProps != 0 || ef.Liquid()
		if light || props {
			np := *cur
			if props {
				np = *ef.Control
				np.Light = cur.Light
			}
			if light {
				np.Light = ef.Control.Light
			}
			cur = &np
		}
		ef.Below = cur
	}
}

// PropsAt returns the region properties in effect at height z. It is the
// Below of the lowest extra floor whose top is above z, or the sector's own.
func PropsAt(sec *bsp.Sector, z float32) *bsp.Props {
	var found *bsp.ExtraFloor
	forEachSorted(sec, func(ef *bsp.ExtraFloor) {
		if found == nil && ef.Top > z {
			found = ef
		}
	})
	if found == nil || found.Below == nil {
		return &sec.Props
	}
	return found.Below
}
