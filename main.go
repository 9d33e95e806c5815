package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/common/version"

	"github.com/leoluk/replay_counters/collector"
	"github.com/leoluk/replay_counters/replay"
	"github.com/leoluk/replay_counters/report"
)

type options struct {
	capture         string
	output          string
	filter          string
	metricsTextfile string
}

func main() {
	var (
		capture = kingpin.Flag(
			"rdc", "Capture file to extract performance counters from.").Required().String()
		output = kingpin.Flag(
			"output", "Output CSV file.").Required().String()
		filter = kingpin.Flag(
			"filter", "Only fetch counters whose name contains this substring (case sensitive).").
			Default(collector.DefaultCounterFilter).Envar("REPLAY_COUNTERS_FILTER").String()
		metricsTextfile = kingpin.Flag(
			"metrics.textfile", "Also write the fetched counters to this file in Prometheus text format.").String()
		logLevel = kingpin.Flag(
			"log.level", "Only log messages with the given severity or above.").
			Default("info").Enum("debug", "info", "warn", "error")
		logFormat = kingpin.Flag(
			"log.format", "Output format of log messages.").Default("logfmt").Enum("logfmt", "json")
	)

	kingpin.Version(version.Print(programName))
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	logger := newLogger(os.Stderr, *logFormat, *logLevel)

	err := run(logger, replay.OfflineEngine{}, options{
		capture:         *capture,
		output:          *output,
		filter:          *filter,
		metricsTextfile: *metricsTextfile,
	}, os.Stdout)

	if err != nil {
		level.Error(logger).Log("msg", "fetching counters failed", "err", err)
		os.Exit(1)
	}
}

// run loads the capture, fetches the selected counters for every event and
// writes the CSV report. Counter descriptions are printed to stdout. The
// replay session is shut down on every return path.
func run(logger log.Logger, engine replay.Engine, opts options, stdout io.Writer) error {
	session, err := collector.LoadCapture(engine, opts.capture)
	if err != nil {
		return err
	}
	defer session.Close()

	level.Info(logger).Log("msg", "capture loaded", "capture", opts.capture, "driver", session.Capture.DriverName())

	draws := collector.IndexDraws(session.Controller)
	level.Debug(logger).Log("msg", "draw tree indexed", "events", draws.Len())

	counters := collector.SelectCounters(session.Controller, opts.filter, stdout)
	if counters.Len() == 0 {
		level.Warn(logger).Log("msg", "no counter matches the filter", "filter", opts.filter)
	}

	begin := time.Now()
	results := collector.FetchCounters(session.Controller, counters)
	level.Info(logger).Log("msg", "counters fetched", "counters", counters.Len(), "results", len(results), "duration", time.Since(begin))

	if err := writeReport(opts.output, draws, counters, results); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "report written", "output", opts.output)

	if opts.metricsTextfile != "" {
		exporter := CounterExporter{
			collectors: map[string]collector.Collector{
				"report": collector.NewReportCollector(logger, draws, counters, results),
			},
			logger: logger,
		}
		if err := writeMetricsTextfile(opts.metricsTextfile, exporter); err != nil {
			return fmt.Errorf("failed to write metrics to %s: %w", opts.metricsTextfile, err)
		}
		level.Info(logger).Log("msg", "metrics written", "textfile", opts.metricsTextfile)
	}

	return nil
}

func writeReport(path string, draws *collector.DrawIndex, counters *collector.CounterSet, results []replay.CounterResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}

	if err := report.WriteCSV(f, draws, counters, results); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return f.Close()
}
