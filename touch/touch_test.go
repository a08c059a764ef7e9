// SPDX-License-Identifier: GPL-2.0-or-later

package touch

import (
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"goedge/blockmap"
	"goedge/bsp"
)

func sectorsOf(s *Set, t blockmap.ThingID) []bsp.SectorID {
	var got []bsp.SectorID
	s.ForEachSector(t, func(sec bsp.SectorID) bool {
		got = append(got, sec)
		return true
	})
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	return got
}

func thingsOf(s *Set, sec bsp.SectorID) []blockmap.ThingID {
	var got []blockmap.ThingID
	s.ForEachThing(sec, func(t blockmap.ThingID) bool {
		got = append(got, t)
		return true
	})
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	return got
}

func update(s *Set, t blockmap.ThingID, secs ...bsp.SectorID) {
	s.Begin(t)
	for _, sec := range secs {
		s.Touch(t, sec)
	}
	s.End(t)
}

func equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUpdate(t *testing.T) {
	s := New(8)
	update(s, 0, 1, 2, 2, 3)
	update(s, 1, 2)
	if got := sectorsOf(s, 0); !equal(got, []bsp.SectorID{1, 2, 3}) {
		t.Errorf("sectors of 0 = %v", got)
	}
	if got := thingsOf(s, 2); !equal(got, []blockmap.ThingID{0, 1}) {
		t.Errorf("things in 2 = %v", got)
	}
	update(s, 0, 3, 4)
	if got := sectorsOf(s, 0); !equal(got, []bsp.SectorID{3, 4}) {
		t.Errorf("sectors of 0 after move = %v", got)
	}
	if got := thingsOf(s, 2); !equal(got, []blockmap.ThingID{1}) {
		t.Errorf("things in 2 after move = %v", got)
	}
	if got := thingsOf(s, 1); len(got) != 0 {
		t.Errorf("things in 1 after move = %v", got)
	}
	if c := s.Count(0); c != 2 {
		t.Errorf("Count(0) = %d, want 2", c)
	}
	if st := s.Stats(); st.Nodes != 5 || st.Free != 2 || st.InUse != 3 {
		t.Errorf("Stats() = %+v", st)
	}
	s.Release(0)
	s.Release(0)
	if c := s.Count(0); c != 0 {
		t.Errorf("Count(0) after Release = %d", c)
	}
	if c := s.Count(99); c != 0 {
		t.Errorf("Count of unknown thing = %d", c)
	}
}

func TestSteadyStateAllocations(t *testing.T) {
	s := New(4)
	update(s, 5, 0, 1)
	alloc := testutil.ToFloat64(nodesAllocated)
	reused := testutil.ToFloat64(nodesReused)
	for i := 0; i < 100; i++ {
		update(s, 5, 1, 0)
	}
	if d := testutil.ToFloat64(nodesAllocated) - alloc; d != 0 {
		t.Errorf("standing still allocated %v nodes", d)
	}
	if d := testutil.ToFloat64(nodesReused) - reused; d != 200 {
		t.Errorf("reused %v nodes, want 200", d)
	}

	// moving back and forth only recycles once the arena is warm
	update(s, 5, 2, 3)
	update(s, 5, 0, 1)
	grown := testutil.ToFloat64(nodesGrown)
	freed := testutil.ToFloat64(nodesFreed)
	for i := 0; i < 50; i++ {
		update(s, 5, 2, 3)
		update(s, 5, 0, 1)
	}
	if d := testutil.ToFloat64(nodesGrown) - grown; d != 0 {
		t.Errorf("arena grew by %v nodes", d)
	}
	if d := testutil.ToFloat64(nodesFreed) - freed; d != 200 {
		t.Errorf("freed %v nodes, want 200", d)
	}
	if st := s.Stats(); st.Nodes != 4 {
		t.Errorf("Stats() = %+v, want 4 nodes", st)
	}
}

func TestEarlyStop(t *testing.T) {
	s := New(4)
	update(s, 0, 0, 1, 2)
	update(s, 1, 0)
	n := 0
	if s.ForEachSector(0, func(bsp.SectorID) bool {
		n++
		return false
	}) || n != 1 {
		t.Errorf("ForEachSector did not stop")
	}
	n = 0
	if s.ForEachThing(0, func(blockmap.ThingID) bool {
		n++
		return false
	}) || n != 1 {
		t.Errorf("ForEachThing did not stop")
	}
	if !s.ForEachThing(bsp.NoSector, func(blockmap.ThingID) bool { return false }) {
		t.Errorf("ForEachThing(NoSector) = false")
	}
}
