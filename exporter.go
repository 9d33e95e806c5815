package main

import (
	"sort"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"

	"github.com/leoluk/replay_counters/collector"
)

const programName = "replay_counters"

// CounterExporter implements the prometheus.Collector interface.
type CounterExporter struct {
	collectors map[string]collector.Collector
	logger     log.Logger
}

var (
	scrapeDurationDesc = prometheus.NewDesc(
		prometheus.BuildFQName(collector.Namespace, "exporter", "collector_duration_seconds"),
		"replay_counters: Duration of a collection.",
		[]string{"collector"},
		nil,
	)
	scrapeSuccessDesc = prometheus.NewDesc(
		prometheus.BuildFQName(collector.Namespace, "exporter", "collector_success"),
		"replay_counters: Whether the collector was successful.",
		[]string{"collector"},
		nil,
	)
)

// Describe sends all the descriptors of the collectors included to
// the provided channel.
func (coll CounterExporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- scrapeDurationDesc
	ch <- scrapeSuccessDesc

	for _, name := range keys(coll.collectors) {
		if d, ok := coll.collectors[name].(interface {
			Describe(ch chan<- *prometheus.Desc)
		}); ok {
			d.Describe(ch)
		}
	}
}

// Collect sends the collected metrics from each of the collectors to
// prometheus, one collector after the other.
func (coll CounterExporter) Collect(ch chan<- prometheus.Metric) {
	for _, name := range keys(coll.collectors) {
		execute(coll.logger, name, coll.collectors[name], ch)
	}
}

func execute(logger log.Logger, name string, c collector.Collector, ch chan<- prometheus.Metric) {
	begin := time.Now()
	err := c.Collect(ch)
	duration := time.Since(begin)
	var success float64

	if err != nil {
		level.Error(logger).Log("msg", "collector failed", "name", name, "duration", duration, "err", err)
		success = 0
	} else {
		level.Debug(logger).Log("msg", "collector succeed", "name", name, "duration", duration)
		success = 1
	}
	ch <- prometheus.MustNewConstMetric(
		scrapeDurationDesc,
		prometheus.GaugeValue,
		duration.Seconds(),
		name,
	)
	ch <- prometheus.MustNewConstMetric(
		scrapeSuccessDesc,
		prometheus.GaugeValue,
		success,
		name,
	)
}

func keys(m map[string]collector.Collector) []string {
	ret := make([]string, 0, len(m))
	for key := range m {
		ret = append(ret, key)
	}
	sort.Strings(ret)
	return ret
}

// writeMetricsTextfile writes the exporter's metrics to path in the text
// format read by node_exporter's textfile collector.
func writeMetricsTextfile(path string, exporter CounterExporter) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(versioncollector.NewCollector(programName))
	if err := registry.Register(exporter); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, registry)
}
