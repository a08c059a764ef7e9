// SPDX-License-Identifier: GPL-2.0-or-later

// Package floors does the vertical reasoning inside a sector column: which
// intervals are open after subtracting the solid extra floors, which of them
// a thing should occupy, and which region properties apply at a height.
package floors

import (
	"github.com/chewxy/math32"

	"goedge/bsp"
	"goedge/conlog"
	"goedge/cvars"
	qmath "goedge/math"
)

// Filter decides whether an extra floor closes off space for a kind of
// thing.
type Filter func(ef *bsp.ExtraFloor) bool

var (
	// BlockSolid is the filter for walking things: only solid floors block.
	BlockSolid Filter = func(ef *bsp.ExtraFloor) bool {
		return ef.Solid()
	}
	// BlockSolidAndLiquid is for water walkers, which stand on liquid
	// surfaces.
	BlockSolidAndLiquid Filter = func(*bsp.ExtraFloor) bool {
		return true
	}
)

// ComputeGaps returns the open intervals of sec bottom to top. A nil filter
// means BlockSolid. Zero height gaps are kept, they stand for closed doors
// and crushed space and must be treated as unusable by callers.
func ComputeGaps(sec *bsp.Sector, filter Filter) []bsp.Gap {
	if filter == nil {
		filter = BlockSolid
	}
	gaps := []bsp.Gap{{Floor: sec.Floor, Ceil: math32.Max(sec.Floor, sec.Ceil)}}
	forEachSorted(sec, func(ef *bsp.ExtraFloor) {
		if !filter(ef) {
			return
		}
		gaps = removeSolid(gaps, ef.Bottom, ef.Top)
	})
	if limit := cvars.MaxGaps.Int(); limit > 0 && len(gaps) > limit {
		conlog.Warnf("ComputeGaps: %d gaps exceed sv_maxgaps %d\n", len(gaps), limit)
	}
	return gaps
}

// removeSolid subtracts [z1, z2) from every gap. A gap the interval cuts is
// replaced by the part below and the part above, either may have zero
// height. A gap completely inside the interval disappears.
func removeSolid(gaps []bsp.Gap, z1, z2 float32) []bsp.Gap {
	out := make([]bsp.Gap, 0, len(gaps)+1)
	for _, g := range gaps {
		if z2 < g.Floor || z1 > g.Ceil || (z2 == g.Floor && z1 < z2) || (z1 == g.Ceil && z1 < z2) {
			// no intersection
			out = append(out, g)
			continue
		}
		if z1 <= g.Floor && z2 >= g.Ceil && g.Ceil > g.Floor {
			// completely blocks it
			continue
		}
		if z1 >= g.Floor {
			out = append(out, bsp.Gap{Floor: g.Floor, Ceil: z1})
		}
		if z2 <= g.Ceil {
			out = append(out, bsp.Gap{Floor: z2, Ceil: g.Ceil})
		}
	}
	return out
}

// forEachSorted visits solid and liquid extra floors merged bottom to top.
func forEachSorted(sec *bsp.Sector, fn func(ef *bsp.ExtraFloor)) {
	s, l := sec.Solid, sec.Liquid
	for len(s) > 0 || len(l) > 0 {
		if len(l) == 0 || (len(s) > 0 && s[0].Bottom <= l[0].Bottom) {
			fn(s[0])
			s = s[1:]
			continue
		}
		fn(l[0])
		l = l[1:]
	}
}

// SectorGaps returns the BlockSolid gaps of sec, cached until the sector
// heights or extra floors change.
func SectorGaps(sec *bsp.Sector) []bsp.Gap {
	if g, ok := sec.CachedGaps(); ok {
		return g
	}
	g := ComputeGaps(sec, BlockSolid)
	sec.StoreGaps(g)
	return g
}

// FindBestGap picks the gap a thing occupying [z1, z2) belongs in:
// a gap already containing it, else the only gap it fits, else the fitting
// gap whose floor is closest to z1, else the closest gap regardless of fit.
// Ties go to the lower gap. It returns -1 for an empty list.
func FindBestGap(gaps []bsp.Gap, z1, z2 float32) int {
	switch len(gaps) {
	case 0:
		return -1
	case 1:
		return 0
	}
	fitNum := 0
	fitLast := -1
	fitClosest := -1
	fitMinDist := float32(math32.MaxFloat32)
	nofitClosest := -1
	nofitMinDist := float32(math32.MaxFloat32)

	for i, g := range gaps {
		if z1 >= g.Floor && z2 <= g.Ceil {
			return i
		}
		dist := qmath.Abs(z1 - g.Floor)
		if z2-z1 <= g.Ceil-g.Floor {
			// fits if moved up or down
			fitNum++
			fitLast = i
			if dist < fitMinDist {
				fitMinDist = dist
				fitClosest = i
			}
		} else if dist < nofitMinDist {
			nofitMinDist = dist
			nofitClosest = i
		}
	}
	switch {
	case fitNum == 1:
		return fitLast
	case fitNum > 1:
		return fitClosest
	}
	return nofitClosest
}
