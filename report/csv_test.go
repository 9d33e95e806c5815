package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoluk/replay_counters/collector"
	"github.com/leoluk/replay_counters/replay"
)

func draw(id uint32, flags replay.DrawFlags, children ...*replay.DrawEvent) *replay.DrawEvent {
	return &replay.DrawEvent{EventID: id, Flags: flags, Children: children}
}

func TestWriteCSV(t *testing.T) {
	draws := collector.IndexDrawTree([]*replay.DrawEvent{
		draw(10, replay.Drawcall),
		draw(11, replay.Clear),
	})
	counters := collector.NewCounterSet(replay.CounterDescriptor{
		Counter:         1,
		Name:            "SamplesPassed",
		Unit:            "count",
		ResultType:      replay.UInt,
		ResultByteWidth: 4,
	})
	results := []replay.CounterResult{
		{EventID: 10, Counter: 1, Value: replay.U32Value(7)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, draws, counters, results))

	assert.Equal(t, "EventId, SamplesPassed (count)\n10, 7\n", buf.String())
}

func TestHeaderSortedByCounterID(t *testing.T) {
	counters := collector.NewCounterSet(
		replay.CounterDescriptor{Counter: 5, Name: "A", Unit: "unit_of_5"},
		replay.CounterDescriptor{Counter: 2, Name: "B", Unit: "unit_of_2"},
	)

	assert.Equal(t, []string{"EventId", "B (unit_of_2)", "A (unit_of_5)"}, Header(counters))
	assert.Equal(t, []string{"EventId"}, Header(collector.NewCounterSet()))
}

func TestRows(t *testing.T) {
	draws := collector.IndexDrawTree([]*replay.DrawEvent{
		draw(1, replay.PushMarker,
			draw(2, replay.Clear),
			draw(4, replay.Drawcall|replay.Indexed),
			draw(3, replay.Drawcall),
		),
		draw(5, replay.Drawcall),
		draw(6, replay.Present),
	})
	counters := collector.NewCounterSet(
		replay.CounterDescriptor{Counter: 9, Name: "Duration", ResultType: replay.Float, ResultByteWidth: 8},
		replay.CounterDescriptor{Counter: 2, Name: "Samples", ResultType: replay.UInt, ResultByteWidth: 8},
		replay.CounterDescriptor{Counter: 4, Name: "Depth", ResultType: replay.Depth, ResultByteWidth: 4},
	)
	results := []replay.CounterResult{
		{EventID: 4, Counter: 9, Value: replay.FloatValue(0.5)},
		{EventID: 4, Counter: 2, Value: replay.U64Value(9000000000)},
		{EventID: 3, Counter: 4, Value: replay.U32Value(1)},
		{EventID: 3, Counter: 2, Value: replay.U64Value(12)},
		{EventID: 2, Counter: 2, Value: replay.U64Value(100)},
		{EventID: 4, Counter: 7, Value: replay.U64Value(1)},
		{EventID: 99, Counter: 2, Value: replay.U64Value(1)},
	}

	assert.Equal(t, [][]string{
		{"4", "9000000000", "0.500000"},
		{"3", "12"},
		{"5"},
	}, Rows(draws, counters, results))
}

func TestRowsKeepDuplicateResults(t *testing.T) {
	draws := collector.IndexDrawTree([]*replay.DrawEvent{draw(1, replay.Drawcall)})
	counters := collector.NewCounterSet(
		replay.CounterDescriptor{Counter: 1, Name: "A", ResultType: replay.UInt, ResultByteWidth: 4},
		replay.CounterDescriptor{Counter: 2, Name: "B", ResultType: replay.UInt, ResultByteWidth: 4},
	)
	results := []replay.CounterResult{
		{EventID: 1, Counter: 2, Value: replay.U32Value(20)},
		{EventID: 1, Counter: 1, Value: replay.U32Value(10)},
		{EventID: 1, Counter: 2, Value: replay.U32Value(21)},
	}

	assert.Equal(t, [][]string{{"1", "10", "20", "21"}}, Rows(draws, counters, results))
}

func TestWriteCSVNoCounters(t *testing.T) {
	draws := collector.IndexDrawTree([]*replay.DrawEvent{
		draw(10, replay.Drawcall),
		draw(11, replay.SetMarker),
		draw(12, replay.Drawcall),
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, draws, collector.NewCounterSet(), nil))

	assert.Equal(t, "EventId\n10\n12\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteCSVError(t *testing.T) {
	draws := collector.IndexDrawTree([]*replay.DrawEvent{draw(10, replay.Drawcall)})

	err := WriteCSV(failingWriter{}, draws, collector.NewCounterSet(), nil)
	assert.EqualError(t, err, "disk full")
}
