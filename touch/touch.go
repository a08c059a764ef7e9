// SPDX-License-Identifier: GPL-2.0-or-later

// Package touch keeps the many to many relation between things and the
// sectors they overlap. Nodes live in one arena and are linked into a per
// thing and a per sector list by index.
package touch

import (
	"goedge/blockmap"
	"goedge/bsp"
)

type NodeID int32

const NoNode NodeID = -1

type node struct {
	thing  blockmap.ThingID
	sector bsp.SectorID

	// list of the sector
	snext, sprev NodeID
	// list of the thing, also the free list
	tnext, tprev NodeID

	stale bool
}

type Set struct {
	nodes   []node
	free    NodeID
	nfree   int
	things  []NodeID
	sectors []NodeID
}

func New(numSectors int) *Set {
	s := &Set{
		free:    NoNode,
		sectors: make([]NodeID, numSectors),
	}
	for i := range s.sectors {
		s.sectors[i] = NoNode
	}
	return s
}

func (s *Set) head(t blockmap.ThingID) NodeID {
	if int(t) >= len(s.things) {
		return NoNode
	}
	return s.things[t]
}

// Begin starts an update of the sectors of t. Every node of t is stale
// until Touch confirms it.
func (s *Set) Begin(t blockmap.ThingID) {
	for n := s.head(t); n != NoNode; n = s.nodes[n].tnext {
		s.nodes[n].stale = true
	}
}

// Touch records that t overlaps sec. An existing node for the pair is
// reused.
func (s *Set) Touch(t blockmap.ThingID, sec bsp.SectorID) {
	for n := s.head(t); n != NoNode; n = s.nodes[n].tnext {
		nd := &s.nodes[n]
		if nd.sector == sec {
			if nd.stale {
				nd.stale = false
				instrumentReuse()
			}
			return
		}
	}
	for int(t) >= len(s.things) {
		s.things = append(s.things, NoNode)
	}
	n := s.alloc()
	nd := &s.nodes[n]
	*nd = node{
		thing:  t,
		sector: sec,
		tnext:  s.things[t],
		tprev:  NoNode,
		snext:  s.sectors[sec],
		sprev:  NoNode,
	}
	if nd.tnext != NoNode {
		s.nodes[nd.tnext].tprev = n
	}
	s.things[t] = n
	if nd.snext != NoNode {
		s.nodes[nd.snext].sprev = n
	}
	s.sectors[sec] = n
}

func (s *Set) alloc() NodeID {
	if s.free != NoNode {
		n := s.free
		s.free = s.nodes[n].tnext
		s.nfree--
		instrumentAllocate(false)
		return n
	}
	s.nodes = append(s.nodes, node{})
	instrumentAllocate(true)
	return NodeID(len(s.nodes) - 1)
}

// End drops the nodes of t that were not touched since Begin.
func (s *Set) End(t blockmap.ThingID) {
	for n := s.head(t); n != NoNode; {
		next := s.nodes[n].tnext
		if s.nodes[n].stale {
			s.remove(n)
		}
		n = next
	}
}

// Release drops every node of t.
func (s *Set) Release(t blockmap.ThingID) {
	s.Begin(t)
	s.End(t)
}

func (s *Set) remove(n NodeID) {
	nd := &s.nodes[n]
	if nd.tprev != NoNode {
		s.nodes[nd.tprev].tnext = nd.tnext
	} else {
		s.things[nd.thing] = nd.tnext
	}
	if nd.tnext != NoNode {
		s.nodes[nd.tnext].tprev = nd.tprev
	}
	if nd.sprev != NoNode {
		s.nodes[nd.sprev].snext = nd.snext
	} else {
		s.sectors[nd.sector] = nd.snext
	}
	if nd.snext != NoNode {
		s.nodes[nd.snext].sprev = nd.sprev
	}
	*nd = node{
		thing:  blockmap.NoThing,
		sector: bsp.NoSector,
		snext:  NoNode,
		sprev:  NoNode,
		tnext:  s.free,
		tprev:  NoNode,
	}
	s.free = n
	s.nfree++
	instrumentFree()
}

// ForEachSector visits the sectors t overlaps, newest first.
func (s *Set) ForEachSector(t blockmap.ThingID, fn func(bsp.SectorID) bool) bool {
	for n := s.head(t); n != NoNode; n = s.nodes[n].tnext {
		if !fn(s.nodes[n].sector) {
			return false
		}
	}
	return true
}

// ForEachThing visits the things overlapping sec.
func (s *Set) ForEachThing(sec bsp.SectorID, fn func(blockmap.ThingID) bool) bool {
	if sec < 0 || int(sec) >= len(s.sectors) {
		return true
	}
	for n := s.sectors[sec]; n != NoNode; n = s.nodes[n].snext {
		if !fn(s.nodes[n].thing) {
			return false
		}
	}
	return true
}

func (s *Set) Count(t blockmap.ThingID) int {
	c := 0
	for n := s.head(t); n != NoNode; n = s.nodes[n].tnext {
		c++
	}
	return c
}

type Stats struct {
	Nodes int
	Free  int
	InUse int
}

func (s *Set) Stats() Stats {
	return Stats{
		Nodes: len(s.nodes),
		Free:  s.nfree,
		InUse: len(s.nodes) - s.nfree,
	}
}
