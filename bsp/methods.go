// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

func (lv *Level) root() Child {
	if len(lv.Nodes) == 0 {
		return LeafChild(0)
	}
	return Child(len(lv.Nodes) - 1)
}

// PointInSubsector locates the subsector containing (x, y). Points on a
// partition line belong to its back side.
func (lv *Level) PointInSubsector(x, y float32) SubsectorID {
	c := lv.root()
	for !c.IsLeaf() {
		n := &lv.Nodes[c.Node()]
		c = n.Children[n.Div.PointOnSide(x, y)]
	}
	return c.Subsector()
}

// BoxSubsectors calls fn for every subsector whose polygon interior
// intersects the interior of box. It returns false if fn stopped the walk.
func (lv *Level) BoxSubsectors(box BBox, fn func(SubsectorID) bool) bool {
	return lv.boxWalk(lv.root(), box, fn)
}

func (lv *Level) boxWalk(c Child, box BBox, fn func(SubsectorID) bool) bool {
	if c.IsLeaf() {
		s := c.Subsector()
		if !lv.boxInSubsector(s, box) {
			return true
		}
		return fn(s)
	}
	n := &lv.Nodes[c.Node()]
	front, back := n.Div.BoxSide(box)
	if front && n.Box[0].Overlaps(box) {
		if !lv.boxWalk(n.Children[0], box, fn) {
			return false
		}
	}
	if back && n.Box[1].Overlaps(box) {
		return lv.boxWalk(n.Children[1], box, fn)
	}
	return true
}

// boxInSubsector is a separating axis test between box and the convex
// subsector polygon: the box axes via the subsector box, the polygon edges
// via the segs.
func (lv *Level) boxInSubsector(s SubsectorID, box BBox) bool {
	ss := &lv.Subsectors[s]
	if !ss.Box.Overlaps(box) {
		return false
	}
	for i := range ss.Segs {
		if front, _ := ss.Segs[i].Div().BoxSide(box); !front {
			return false
		}
	}
	return true
}
