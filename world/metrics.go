// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opLabel    = "op"
	worldLabel = "world"
)

var (
	linkOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goedge_world_link_ops_total",
		Help: "Link, unlink and move operations on things.",
	}, []string{opLabel})

	contractViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goedge_world_contract_violations_total",
		Help: "Calls rejected with ErrAlreadyLinked, ErrNotLinked or ErrReentrantQuery.",
	}, []string{opLabel})

	thingCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "goedge_world_things",
		Help: "Things added and not removed, per world.",
	}, []string{worldLabel})
)

func instrumentLinkOp(op string) {
	linkOpsTotal.
		With(prometheus.Labels{opLabel: op}).
		Inc()
}

func instrumentViolation(op string) {
	contractViolationsTotal.
		With(prometheus.Labels{opLabel: op}).
		Inc()
}
