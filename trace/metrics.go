// SPDX-License-Identifier: GPL-2.0-or-later

package trace

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const kindLabel = "kind"

var (
	tracesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goedge_traces_total",
		Help: "Traces that reached the grid.",
	})
	earlyOutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goedge_trace_early_outs_total",
		Help: "Traces stopped by a one sided line while collecting.",
	})
	interceptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goedge_trace_intercepts_total",
		Help: "Intercepts collected by traces.",
	}, []string{kindLabel})
)

func instrumentTrace() {
	tracesTotal.Inc()
}

func instrumentEarlyOut() {
	earlyOutsTotal.Inc()
}

func instrumentIntercepts(lines, things int) {
	interceptsTotal.
		With(prometheus.Labels{kindLabel: "line"}).
		Add(float64(lines))
	interceptsTotal.
		With(prometheus.Labels{kindLabel: "thing"}).
		Add(float64(things))
}
