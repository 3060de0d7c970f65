// Package prometheus exports machine activity as Prometheus metrics.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Collector holds the metric families for one machine and implements
// prometheus.Collector, so it registers like any other collector:
//
//	c := promadapter.NewCollector(promadapter.WithNames(states, msgs))
//	prometheus.MustRegister(c)
//	m, _ := ratchet.New(rules, ratchet.WithObserver(c.Observer()))
//
// Transitions are counted through the Observer bridge; pass counts and the
// status census are host-fed, since only the host knows when a pass ran.
type Collector struct {
	transitions *prometheus.CounterVec
	passes      prometheus.Counter
	automatons  *prometheus.GaugeVec

	stateNames []string
	msgNames   []string
}

// Option configures a Collector.
type Option func(*Collector)

// WithNames sets the state and message name tables used for labels. Ids
// without a name fall back to s<N> and m<N>, like the graph exporter.
func WithNames(stateNames, msgNames []string) Option {
	return func(c *Collector) {
		c.stateNames = stateNames
		c.msgNames = msgNames
	}
}

// NewCollector creates a collector with the ratchet metric families.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ratchet",
				Name:      "transitions_total",
				Help:      "Total transitions dispatched, by edge.",
			},
			[]string{"from", "msg", "to"},
		),
		passes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ratchet",
				Name:      "passes_total",
				Help:      "Total engine passes executed.",
			},
		),
		automatons: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ratchet",
				Name:      "automatons",
				Help:      "Automatons currently held, by status.",
			},
			[]string{"status"},
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observer returns a transition observer that increments the edge counter.
// Wire it with ratchet.WithObserver; compose with domain.CombineObservers
// if the machine has other observers.
func (c *Collector) Observer() domain.Observer {
	return func(from domain.StateID, msg domain.MsgType, to domain.StateID) {
		toLabel := "_"
		if to != domain.Terminal {
			toLabel = c.stateLabel(to)
		}
		c.transitions.WithLabelValues(c.stateLabel(from), c.msgLabel(msg), toLabel).Inc()
	}
}

// ObservePass counts one engine pass. Call it after each Run.
func (c *Collector) ObservePass() {
	c.passes.Inc()
}

// SetStats publishes the machine's status census.
func (c *Collector) SetStats(s domain.Stats) {
	c.automatons.WithLabelValues("new").Set(float64(s.New))
	c.automatons.WithLabelValues("active").Set(float64(s.Active))
	c.automatons.WithLabelValues("inactive").Set(float64(s.Inactive))
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.transitions.Describe(ch)
	c.passes.Describe(ch)
	c.automatons.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.transitions.Collect(ch)
	c.passes.Collect(ch)
	c.automatons.Collect(ch)
}

func (c *Collector) stateLabel(id domain.StateID) string {
	if id >= 0 && int(id) < len(c.stateNames) && c.stateNames[id] != "" {
		return c.stateNames[id]
	}
	return fmt.Sprintf("s%d", id)
}

func (c *Collector) msgLabel(msg domain.MsgType) string {
	if msg >= 0 && int(msg) < len(c.msgNames) && c.msgNames[msg] != "" {
		return c.msgNames[msg]
	}
	return fmt.Sprintf("m%d", msg)
}
