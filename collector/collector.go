package collector

import (
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leoluk/replay_counters/replay"
)

// ...
const (
	Namespace = "rdc"
)

// Collector is the interface a collector has to implement.
type Collector interface {
	// Get new metrics and expose them via prometheus registry.
	Collect(ch chan<- prometheus.Metric) (err error)
}

// ReportCollector exposes the fetched counter results of every drawcall as
// one gauge per counter, labelled with the event id.
type ReportCollector struct {
	logger   log.Logger
	draws    *DrawIndex
	counters *CounterSet
	results  []replay.CounterResult

	descs    map[replay.CounterID]*prometheus.Desc
	distinct map[replay.CounterID]bool
}

func NewReportCollector(logger log.Logger, draws *DrawIndex, counters *CounterSet, results []replay.CounterResult) *ReportCollector {
	c := &ReportCollector{
		logger:   logger,
		draws:    draws,
		counters: counters,
		results:  results,
		descs:    make(map[replay.CounterID]*prometheus.Desc),
		distinct: make(map[replay.CounterID]bool),
	}

	duplicates := RequiresDuplicateDistinction(counters)

	for _, d := range counters.Descriptors() {
		distinct := duplicates[MakePrometheusName(d)]
		if distinct {
			level.Debug(logger).Log("msg", "counter name collides after mangling", "counter", d.Counter, "name", d.Name)
		}
		c.distinct[d.Counter] = distinct
		c.descs[d.Counter] = descFromCounter(d, distinct)
	}

	return c
}

// Describe sends one descriptor per selected counter.
func (c *ReportCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, id := range c.counters.SortedIDs() {
		ch <- c.descs[id]
	}
}

func (c *ReportCollector) Collect(ch chan<- prometheus.Metric) (err error) {
	type key struct {
		event   uint32
		counter replay.CounterID
	}
	seen := make(map[key]bool, len(c.results))

	for _, r := range c.results {
		draw, ok := c.draws.Get(r.EventID)

		if !ok {
			level.Debug(c.logger).Log("msg", "result for unknown event", "event", r.EventID, "counter", r.Counter)
			continue
		}

		if !draw.Flags.Has(replay.Drawcall) {
			continue
		}

		desc, ok := c.descs[r.Counter]

		if !ok {
			level.Debug(c.logger).Log("msg", "missing metric description for counter", "event", r.EventID, "counter", r.Counter)
			continue
		}

		if seen[key{r.EventID, r.Counter}] {
			level.Debug(c.logger).Log("msg", "duplicate result", "event", r.EventID, "counter", r.Counter)
			continue
		}
		seen[key{r.EventID, r.Counter}] = true

		labels := []string{strconv.FormatUint(uint64(r.EventID), 10)}

		if c.distinct[r.Counter] {
			labels = append(labels, DuplicateDistinctionLabelValue(uint32(r.Counter))...)
		}

		ch <- prometheus.MustNewConstMetric(
			desc,
			prometheus.GaugeValue,
			replay.AsFloat(r.Value),
			labels...,
		)
	}

	return nil
}
