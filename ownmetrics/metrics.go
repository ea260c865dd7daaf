// Package ownmetrics exports ownership events from package own as Prometheus
// metrics and answers leak queries at shutdown.
//
//	c, err := ownmetrics.Install(prometheus.DefaultRegisterer)
//	if err != nil { ... }
//	defer ownmetrics.Uninstall()
package ownmetrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/gogpu/own"
)

const (
	namespace = "own"

	labelKind = "kind"
	labelType = "type"
)

// Collector implements own.Observer on top of Prometheus vectors.
type Collector struct {
	created      *prometheus.CounterVec
	destroyed    *prometheus.CounterVec
	released     *prometheus.CounterVec
	joins        *prometheus.CounterVec
	leaves       *prometheus.CounterVec
	lockFailures *prometheus.CounterVec
	live         *prometheus.GaugeVec

	reg prometheus.Registerer
}

// NewCollector creates an unregistered collector.
func NewCollector() *Collector {
	return &Collector{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handles_created_total",
			Help:      "Objects taken over by a Unique or a new Shared family.",
		}, []string{labelKind, labelType}),
		destroyed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handles_destroyed_total",
			Help:      "Objects whose destructor ran.",
		}, []string{labelKind, labelType}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unique_released_total",
			Help:      "Objects handed back to the caller by Unique.Release.",
		}, []string{labelType}),
		joins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shared_joins_total",
			Help:      "Owners added to existing Shared families.",
		}, []string{labelType}),
		leaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shared_leaves_total",
			Help:      "Owners that left a Shared family.",
		}, []string{labelType}),
		lockFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weak_lock_failures_total",
			Help:      "Weak.Lock calls on expired families.",
		}, []string{labelType}),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_objects",
			Help:      "Objects currently owned.",
		}, []string{labelKind, labelType}),
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.created, c.destroyed, c.released, c.joins, c.leaves, c.lockFailures, c.live,
	}
}

// Register registers every vector with reg. On failure nothing stays
// registered.
func (c *Collector) Register(reg prometheus.Registerer) error {
	var done []prometheus.Collector
	for _, col := range c.collectors() {
		if err := reg.Register(col); err != nil {
			for _, d := range done {
				reg.Unregister(d)
			}
			return fmt.Errorf("ownmetrics: register: %w", err)
		}
		done = append(done, col)
	}
	c.reg = reg
	return nil
}

// Destroy unregisters the collector. It lets an own.Slot tear it down.
func (c *Collector) Destroy() {
	if c.reg == nil {
		return
	}
	for _, col := range c.collectors() {
		c.reg.Unregister(col)
	}
	c.reg = nil
}

// Created implements own.Observer.
func (c *Collector) Created(kind own.Kind, typ string) {
	c.created.WithLabelValues(kind.String(), typ).Inc()
	c.live.WithLabelValues(kind.String(), typ).Inc()
}

// Destroyed implements own.Observer.
func (c *Collector) Destroyed(kind own.Kind, typ string) {
	c.destroyed.WithLabelValues(kind.String(), typ).Inc()
	c.live.WithLabelValues(kind.String(), typ).Dec()
}

// Released implements own.Observer.
func (c *Collector) Released(typ string) {
	c.released.WithLabelValues(typ).Inc()
	c.live.WithLabelValues(own.KindUnique.String(), typ).Dec()
}

// Joined implements own.Observer.
func (c *Collector) Joined(typ string) { c.joins.WithLabelValues(typ).Inc() }

// Left implements own.Observer.
func (c *Collector) Left(typ string) { c.leaves.WithLabelValues(typ).Inc() }

// LockFailed implements own.Observer.
func (c *Collector) LockFailed(typ string) { c.lockFailures.WithLabelValues(typ).Inc() }

// Live returns the number of objects of typ currently owned by kind handles.
// Reading a pair that was never seen returns 0 and creates no series.
func (c *Collector) Live(kind own.Kind, typ string) int {
	return c.liveSnapshot()[kind.String()+"/"+typ]
}

// Leaks returns every kind/type pair with live objects, keyed "kind/type".
func (c *Collector) Leaks() map[string]int {
	leaks := c.liveSnapshot()
	for k, v := range leaks {
		if v == 0 {
			delete(leaks, k)
		}
	}
	return leaks
}

// liveSnapshot collects the existing live series keyed "kind/type".
func (c *Collector) liveSnapshot() map[string]int {
	ch := make(chan prometheus.Metric)
	go func() {
		c.live.Collect(ch)
		close(ch)
	}()

	out := map[string]int{}
	for metric := range ch {
		m := &dto.Metric{}
		if err := metric.Write(m); err != nil {
			continue
		}
		var kind, typ string
		for _, lp := range m.GetLabel() {
			switch lp.GetName() {
			case labelKind:
				kind = lp.GetValue()
			case labelType:
				typ = lp.GetValue()
			}
		}
		out[kind+"/"+typ] = int(m.GetGauge().GetValue())
	}
	return out
}

// WriteText writes every metric gathered by g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("ownmetrics: gather: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("ownmetrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
