// SPDX-License-Identifier: GPL-2.0-or-later

// Package trace walks a segment through the blockmap and reports the lines
// and things it crosses sorted by distance from the start.
package trace

import (
	"sort"

	"github.com/chewxy/math32"

	"goedge/blockmap"
	"goedge/bsp"
	"goedge/conlog"
	"goedge/cvars"
	"goedge/math/vec"
)

type Flags uint8

const (
	Lines Flags = 1 << iota
	Things
	// stop at the first one sided line, for sight checks
	EarlyOut
)

// Intercept is a line or a thing crossed by a trace. Frac is the position
// along the trace, 0 at the start and 1 at the end.
type Intercept struct {
	Frac  float32
	Line  bsp.LineID
	Thing blockmap.ThingID
	div   bsp.DivLine
}

func (in *Intercept) IsLine() bool {
	return in.Line != bsp.NoLine
}

// Point is the world position of the intercept.
func (in *Intercept) Point() vec.Vec2 {
	from := vec.Vec2{X: in.div.X, Y: in.div.Y}
	to := vec.Vec2{X: in.div.X + in.div.DX, Y: in.div.Y + in.div.DY}
	return vec.Lerp(from, to, in.Frac)
}

type scratch struct {
	intercepts []Intercept
	thingSeen  []uint32
	epoch      uint32
}

func (s *scratch) seen(id blockmap.ThingID) bool {
	for int(id) >= len(s.thingSeen) {
		s.thingSeen = append(s.thingSeen, 0)
	}
	if s.thingSeen[id] == s.epoch {
		return true
	}
	s.thingSeen[id] = s.epoch
	return false
}

type Tracer struct {
	bm    *blockmap.Blockmap
	lines []bsp.Line

	// one per trace nesting level
	scratch []*scratch
	depth   int
}

// New returns a tracer over bm, which must have been built from lines.
func New(bm *blockmap.Blockmap, lines []bsp.Line) *Tracer {
	return &Tracer{bm: bm, lines: lines}
}

func (tr *Tracer) acquire() *scratch {
	if tr.depth == len(tr.scratch) {
		tr.scratch = append(tr.scratch, &scratch{})
	}
	s := tr.scratch[tr.depth]
	tr.depth++
	s.intercepts = s.intercepts[:0]
	s.epoch++
	if s.epoch == 0 {
		clear(s.thingSeen)
		s.epoch = 1
	}
	return s
}

func (tr *Tracer) release() {
	tr.depth--
}

// Trace collects the intercepts of the segment from (ax, ay) to (bx, by)
// selected by flags and calls fn for them in order of increasing Frac.
// It returns false if fn returned false or if EarlyOut hit a one sided
// line. The Intercept passed to fn is only valid during the call.
func (tr *Tracer) Trace(ax, ay, bx, by float32, flags Flags, fn func(*Intercept) bool) bool {
	if ax == bx && ay == by {
		return true
	}
	div := bsp.DivLine{X: ax, Y: ay, DX: bx - ax, DY: by - ay}
	t0, t1, ok := clip(div, tr.bm.Bounds())
	if !ok {
		return true
	}
	instrumentTrace()

	s := tr.acquire()
	defer tr.release()
	var m *blockmap.Marks
	if flags&Lines != 0 {
		m = tr.bm.AcquireMarks()
		defer tr.bm.ReleaseMarks()
	}
	c := collector{tr: tr, s: s, m: m, div: div, flags: flags}
	if !tr.walk(div, t0, t1, c.cell) {
		instrumentEarlyOut()
		return false
	}
	instrumentIntercepts(c.lines, c.things)
	if limit := cvars.MaxIntercepts.Int(); limit > 0 && len(s.intercepts) > limit {
		conlog.Warnf("Trace: %d intercepts exceed sv_maxintercepts %d\n", len(s.intercepts), limit)
	}

	sort.SliceStable(s.intercepts, func(i, j int) bool {
		return s.intercepts[i].Frac < s.intercepts[j].Frac
	})
	for i := range s.intercepts {
		if !fn(&s.intercepts[i]) {
			return false
		}
	}
	return true
}

// clip returns the part of div inside box as fractions along div.
func clip(div bsp.DivLine, box bsp.BBox) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	edge := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = min(t1, r)
		}
		return true
	}
	x, y := float64(div.X), float64(div.Y)
	dx, dy := float64(div.DX), float64(div.DY)
	if edge(-dx, x-float64(box.Min.X)) &&
		edge(dx, float64(box.Max.X)-x) &&
		edge(-dy, y-float64(box.Min.Y)) &&
		edge(dy, float64(box.Max.Y)-y) {
		return t0, t1, t0 <= t1
	}
	return 0, 0, false
}

type collector struct {
	tr     *Tracer
	s      *scratch
	m      *blockmap.Marks
	div    bsp.DivLine
	flags  Flags
	lines  int
	things int
}

// cell adds the intercepts of one cell. It returns false when EarlyOut
// stops the trace.
func (c *collector) cell(cx, cy int) bool {
	if c.flags&Lines != 0 {
		for _, l := range c.tr.bm.CellLines(cx, cy) {
			if c.m.Seen(l) {
				continue
			}
			if !c.addLine(l) {
				return false
			}
		}
	}
	if c.flags&Things != 0 {
		// things are linked by center, so look one cell around
		for y := cy - 1; y <= cy+1; y++ {
			for x := cx - 1; x <= cx+1; x++ {
				c.tr.bm.ForEachCellThing(x, y, c.addThing)
			}
		}
	}
	return true
}

func (c *collector) addLine(id bsp.LineID) bool {
	ld := &c.tr.lines[id]
	s1 := c.div.PointOnSide(ld.V1.X, ld.V1.Y)
	s2 := c.div.PointOnSide(ld.V2.X, ld.V2.Y)
	if s1 == s2 {
		return true
	}
	frac := c.div.Intercept(ld.Div())
	if frac < 0 || frac > 1 {
		return true
	}
	if c.flags&EarlyOut != 0 && frac < 1 && ld.Back == bsp.NoSector {
		return false
	}
	c.s.intercepts = append(c.s.intercepts, Intercept{Frac: frac, Line: id, Thing: blockmap.NoThing, div: c.div})
	c.lines++
	return true
}

// addThing tests the diagonal of the thing box that crosses the trace
// direction, so any trace through the box crosses it.
func (c *collector) addThing(id blockmap.ThingID) bool {
	if c.s.seen(id) {
		return true
	}
	box, ok := c.tr.bm.ThingBox(id)
	if !ok {
		return true
	}
	var p1, p2 vec.Vec2
	if math32.Signbit(c.div.DX) == math32.Signbit(c.div.DY) {
		p1 = vec.Vec2{X: box.Min.X, Y: box.Max.Y}
		p2 = vec.Vec2{X: box.Max.X, Y: box.Min.Y}
	} else {
		p1 = box.Min
		p2 = box.Max
	}
	if c.div.PointOnSide(p1.X, p1.Y) == c.div.PointOnSide(p2.X, p2.Y) {
		return true
	}
	dl := bsp.DivLine{X: p1.X, Y: p1.Y, DX: p2.X - p1.X, DY: p2.Y - p1.Y}
	frac := c.div.Intercept(dl)
	if frac < 0 || frac > 1 {
		return true
	}
	c.s.intercepts = append(c.s.intercepts, Intercept{Frac: frac, Line: bsp.NoLine, Thing: id, div: c.div})
	c.things++
	return true
}
