// SPDX-License-Identifier: GPL-2.0-or-later

// Package world ties the static level, the blockmap, the touch nodes and
// the tracer together and owns the link state of every thing.
package world

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"goedge/blockmap"
	"goedge/bsp"
	"goedge/conlog"
	"goedge/math/vec"
	"goedge/touch"
	"goedge/trace"
)

type ThingID = blockmap.ThingID

const NoThing = blockmap.NoThing

type ThingFlags uint8

const (
	// not in the blockmap, invisible to thing queries and traces
	NoBlockmap ThingFlags = 1 << iota
	// not in subsector lists and without touch nodes
	NoSector
)

var (
	ErrAlreadyLinked  = blockmap.ErrAlreadyLinked
	ErrNotLinked      = blockmap.ErrNotLinked
	ErrReentrantQuery = errors.New("spatial state changed from inside a query")
	ErrNoThing        = errors.New("no such thing")
)

type Thing struct {
	Pos    vec.Vec3
	Radius float32
	Height float32
	Flags  ThingFlags
	// valid while linked
	Subsector bsp.SubsectorID

	linked bool
	inUse  bool
	// flags the thing was linked with, unlink undoes exactly these
	linkFlags ThingFlags
	// subsector thing list
	snext, sprev ThingID
}

func (t *Thing) Linked() bool {
	return t.linked
}

// Box is the square footprint of the thing.
func (t *Thing) Box() bsp.BBox {
	return bsp.BoxAround(t.Pos.X, t.Pos.Y, t.Radius)
}

type Options struct {
	// 0 uses bm_cellsize
	CellSize float32
}

type World struct {
	id     uuid.UUID
	level  *bsp.Level
	bm     *blockmap.Blockmap
	touch  *touch.Set
	tracer *trace.Tracer

	things     []Thing
	freeThings []ThingID
	// heads of the subsector thing lists
	subsectorThings []ThingID

	// running queries, spatial state must not change while > 0
	querying int

	numThings prometheus.Gauge
}

// New builds the blockmap for a finalized level.
func New(lv *bsp.Level, opts Options) (*World, error) {
	bm, err := blockmap.Build(lv.Lines, blockmap.Options{CellSize: opts.CellSize})
	if err != nil {
		return nil, errors.Wrap(err, "world")
	}
	w := &World{
		id:              uuid.Must(uuid.NewV7()),
		level:           lv,
		bm:              bm,
		touch:           touch.New(len(lv.Sectors)),
		tracer:          trace.New(bm, lv.Lines),
		subsectorThings: make([]ThingID, len(lv.Subsectors)),
	}
	w.numThings = thingCount.With(prometheus.Labels{worldLabel: w.id.String()})
	for i := range w.subsectorThings {
		w.subsectorThings[i] = NoThing
	}
	cols, rows := bm.Dims()
	conlog.DPrintf("world %v: %d lines, %d sectors, blockmap %dx%d\n",
		w.id, len(lv.Lines), len(lv.Sectors), cols, rows)
	return w, nil
}

// Close drops the metrics of the world. The world must not be used
// afterwards.
func (w *World) Close() {
	thingCount.Delete(prometheus.Labels{worldLabel: w.id.String()})
}

func (w *World) ID() uuid.UUID {
	return w.id
}

func (w *World) Level() *bsp.Level {
	return w.level
}

func (w *World) Blockmap() *blockmap.Blockmap {
	return w.bm
}

func (w *World) TouchStats() touch.Stats {
	return w.touch.Stats()
}

// AddThing creates an unlinked thing.
func (w *World) AddThing(x, y, z, radius, height float32, flags ThingFlags) ThingID {
	t := Thing{
		Pos:       vec.Vec3{X: x, Y: y, Z: z},
		Radius:    radius,
		Height:    height,
		Flags:     flags,
		Subsector: -1,
		inUse:     true,
		snext:     NoThing,
		sprev:     NoThing,
	}
	w.numThings.Inc()
	if n := len(w.freeThings); n > 0 {
		id := w.freeThings[n-1]
		w.freeThings = w.freeThings[:n-1]
		w.things[id] = t
		return id
	}
	w.things = append(w.things, t)
	return ThingID(len(w.things) - 1)
}

// RemoveThing unlinks the thing if needed and frees its id.
func (w *World) RemoveThing(id ThingID) error {
	t, err := w.thing(id)
	if err != nil {
		return err
	}
	if t.linked {
		if err := w.Unlink(id); err != nil {
			return err
		}
	}
	t.inUse = false
	w.freeThings = append(w.freeThings, id)
	w.numThings.Dec()
	return nil
}

func (w *World) thing(id ThingID) (*Thing, error) {
	if id < 0 || int(id) >= len(w.things) || !w.things[id].inUse {
		return nil, errors.Wrapf(ErrNoThing, "thing %d", id)
	}
	return &w.things[id], nil
}

// Thing returns a copy of the thing state.
func (w *World) Thing(id ThingID) (Thing, bool) {
	t, err := w.thing(id)
	if err != nil {
		return Thing{}, false
	}
	return *t, true
}

// ForEachThing visits copies of all things in id order.
func (w *World) ForEachThing(fn func(ThingID, Thing) bool) bool {
	for i := range w.things {
		if !w.things[i].inUse {
			continue
		}
		if !fn(ThingID(i), w.things[i]) {
			return false
		}
	}
	return true
}
