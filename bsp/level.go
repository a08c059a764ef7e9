// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/pkg/errors"
)

var ErrBadLevel = errors.New("bad level")

// Finalize derives the cached line, subsector and node data and checks that
// all references are in range. It must run once after loading.
func (lv *Level) Finalize() error {
	if len(lv.Lines) == 0 {
		return errors.Wrap(ErrBadLevel, "no lines")
	}
	if len(lv.Subsectors) == 0 {
		return errors.Wrap(ErrBadLevel, "no subsectors")
	}
	nsec := SectorID(len(lv.Sectors))
	for i := range lv.Lines {
		l := &lv.Lines[i]
		l.DX = l.V2.X - l.V1.X
		l.DY = l.V2.Y - l.V1.Y
		l.Box = EmptyBox()
		l.Box.AddPoint(l.V1)
		l.Box.AddPoint(l.V2)
		if l.Front < 0 || l.Front >= nsec {
			return errors.Wrapf(ErrBadLevel, "line %d: bad front sector %d", i, l.Front)
		}
		if l.Back != NoSector && (l.Back < 0 || l.Back >= nsec) {
			return errors.Wrapf(ErrBadLevel, "line %d: bad back sector %d", i, l.Back)
		}
		if l.Back != NoSector {
			l.Flags |= LineTwoSided
		}
	}
	for i := range lv.Subsectors {
		ss := &lv.Subsectors[i]
		if ss.Sector < 0 || ss.Sector >= nsec {
			return errors.Wrapf(ErrBadLevel, "subsector %d: bad sector %d", i, ss.Sector)
		}
		if len(ss.Segs) < 3 {
			return errors.Wrapf(ErrBadLevel, "subsector %d: only %d segs", i, len(ss.Segs))
		}
		ss.Box = EmptyBox()
		for _, sg := range ss.Segs {
			if sg.Line != NoLine && (sg.Line < 0 || int(sg.Line) >= len(lv.Lines)) {
				return errors.Wrapf(ErrBadLevel, "subsector %d: bad line %d", i, sg.Line)
			}
			ss.Box.AddPoint(sg.V1)
			ss.Box.AddPoint(sg.V2)
		}
	}
	if len(lv.Nodes) == 0 {
		if len(lv.Subsectors) != 1 {
			return errors.Wrapf(ErrBadLevel, "%d subsectors without nodes", len(lv.Subsectors))
		}
		return nil
	}
	done := make([]bool, len(lv.Nodes))
	if _, err := lv.nodeBox(lv.root(), done); err != nil {
		return err
	}
	return nil
}

// nodeBox recomputes the child boxes of every node below c bottom up and
// returns the box of c.
func (lv *Level) nodeBox(c Child, done []bool) (BBox, error) {
	if c.IsLeaf() {
		s := c.Subsector()
		if s < 0 || int(s) >= len(lv.Subsectors) {
			return BBox{}, errors.Wrapf(ErrBadLevel, "bad subsector reference %d", s)
		}
		return lv.Subsectors[s].Box, nil
	}
	n := c.Node()
	if n >= len(lv.Nodes) {
		return BBox{}, errors.Wrapf(ErrBadLevel, "bad node reference %d", n)
	}
	if done[n] {
		return BBox{}, errors.Wrapf(ErrBadLevel, "node %d referenced twice", n)
	}
	done[n] = true
	nd := &lv.Nodes[n]
	box := EmptyBox()
	for s := 0; s < 2; s++ {
		b, err := lv.nodeBox(nd.Children[s], done)
		if err != nil {
			return BBox{}, err
		}
		nd.Box[s] = b
		box.AddPoint(b.Min)
		box.AddPoint(b.Max)
	}
	return box, nil
}

// Bounds returns the box of all line endpoints.
func (lv *Level) Bounds() BBox {
	b := EmptyBox()
	for i := range lv.Lines {
		b.AddPoint(lv.Lines[i].V1)
		b.AddPoint(lv.Lines[i].V2)
	}
	return b
}
