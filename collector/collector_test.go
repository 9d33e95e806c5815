package collector

import (
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/leoluk/replay_counters/replay"
)

// promCollector adapts a ReportCollector to prometheus.Collector.
type promCollector struct{ c *ReportCollector }

func (p promCollector) Describe(ch chan<- *prometheus.Desc) { p.c.Describe(ch) }

func (p promCollector) Collect(ch chan<- prometheus.Metric) {
	if err := p.c.Collect(ch); err != nil {
		panic(err)
	}
}

func TestReportCollector(t *testing.T) {
	draws := IndexDrawTree([]*replay.DrawEvent{
		draw(10, replay.Drawcall),
		draw(11, replay.Clear),
	})
	counters := NewCounterSet(replay.CounterDescriptor{
		Counter:         1,
		Name:            "SamplesPassed",
		Description:     "Samples that passed.",
		Unit:            "count",
		ResultType:      replay.UInt,
		ResultByteWidth: 4,
	})
	results := []replay.CounterResult{
		{EventID: 10, Counter: 1, Value: replay.U32Value(7)},
		{EventID: 11, Counter: 1, Value: replay.U32Value(3)},
		{EventID: 12, Counter: 1, Value: replay.U32Value(4)},
		{EventID: 10, Counter: 5, Value: replay.U32Value(5)},
		{EventID: 10, Counter: 1, Value: replay.U32Value(8)},
	}

	c := NewReportCollector(log.NewNopLogger(), draws, counters, results)

	expected := `
# HELP rdc_counter_samples_passed replay counter: SamplesPassed (count) [1]: Samples that passed.
# TYPE rdc_counter_samples_passed gauge
rdc_counter_samples_passed{event_id="10"} 7
`
	require.NoError(t, testutil.CollectAndCompare(promCollector{c}, strings.NewReader(expected)))
}

func TestReportCollectorDuplicateNames(t *testing.T) {
	draws := IndexDrawTree([]*replay.DrawEvent{draw(10, replay.Drawcall)})
	counters := NewCounterSet(
		replay.CounterDescriptor{Counter: 2, Name: "Samples Passed", Unit: replay.Absolute, ResultType: replay.UInt, ResultByteWidth: 8},
		replay.CounterDescriptor{Counter: 1, Name: "SamplesPassed", Unit: replay.Absolute, ResultType: replay.UInt, ResultByteWidth: 4},
		replay.CounterDescriptor{Counter: 3, Name: "GPU Duration", Unit: replay.Seconds, ResultType: replay.Float, ResultByteWidth: 8},
	)
	results := []replay.CounterResult{
		{EventID: 10, Counter: 2, Value: replay.U64Value(9)},
		{EventID: 10, Counter: 1, Value: replay.U32Value(7)},
		{EventID: 10, Counter: 3, Value: replay.FloatValue(0.25)},
	}

	c := NewReportCollector(log.NewNopLogger(), draws, counters, results)

	expected := `
# HELP rdc_counter_gpu_duration_seconds replay counter: GPU Duration (Seconds) [3]
# TYPE rdc_counter_gpu_duration_seconds gauge
rdc_counter_gpu_duration_seconds{event_id="10"} 0.25
# HELP rdc_counter_samples_passed replay counters mangled to samples_passed (see counter_id)
# TYPE rdc_counter_samples_passed gauge
rdc_counter_samples_passed{counter_id="1",event_id="10"} 7
rdc_counter_samples_passed{counter_id="2",event_id="10"} 9
`
	require.NoError(t, testutil.CollectAndCompare(promCollector{c}, strings.NewReader(expected)))
}
