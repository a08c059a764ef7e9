// SPDX-License-Identifier: GPL-2.0-or-later

package touch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodesAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goedge_touch_nodes_allocated_total",
		Help: "Touch nodes taken from the free list or the arena.",
	})
	nodesGrown = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goedge_touch_nodes_grown_total",
		Help: "Touch nodes appended to the arena because the free list was empty.",
	})
	nodesReused = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goedge_touch_nodes_reused_total",
		Help: "Touch nodes kept across a position update.",
	})
	nodesFreed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goedge_touch_nodes_freed_total",
		Help: "Touch nodes returned to the free list.",
	})
)

func instrumentAllocate(grown bool) {
	nodesAllocated.Inc()
	if grown {
		nodesGrown.Inc()
	}
}

func instrumentReuse() {
	nodesReused.Inc()
}

func instrumentFree() {
	nodesFreed.Inc()
}
