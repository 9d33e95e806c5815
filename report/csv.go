package report

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/leoluk/replay_counters/collector"
	"github.com/leoluk/replay_counters/replay"
)

const fieldSeparator = ", "

// Header returns the CSV header: the event id column followed by one column
// per counter in ascending counter id order.
func Header(counters *collector.CounterSet) []string {
	header := []string{"EventId"}
	for _, id := range counters.SortedIDs() {
		desc, _ := counters.Get(id)
		header = append(header, ColumnName(desc))
	}
	return header
}

// Rows returns one row per drawcall of draws, in index order. Clears,
// markers and other non-draw events get no row. Each row holds the event id
// and then the event's results ordered by counter id. Results of unknown
// counters or with unprintable types are left out, so rows can be shorter
// than the header.
func Rows(draws *collector.DrawIndex, counters *collector.CounterSet, results []replay.CounterResult) [][]string {
	byEvent := make(map[uint32][]replay.CounterResult)
	for _, r := range results {
		byEvent[r.EventID] = append(byEvent[r.EventID], r)
	}

	var rows [][]string

	draws.Each(func(d *replay.DrawEvent) {
		if !d.Flags.Has(replay.Drawcall) {
			return
		}

		drawResults := byEvent[d.EventID]
		sort.SliceStable(drawResults, func(i, j int) bool {
			return drawResults[i].Counter < drawResults[j].Counter
		})

		row := []string{strconv.FormatUint(uint64(d.EventID), 10)}
		for _, r := range drawResults {
			desc, ok := counters.Get(r.Counter)
			if !ok {
				continue
			}
			if s, ok := FormatValue(desc, r.Value); ok {
				row = append(row, s)
			}
		}

		rows = append(rows, row)
	})

	return rows
}

// WriteCSV writes the header and all rows to w, fields separated by ", ".
func WriteCSV(w io.Writer, draws *collector.DrawIndex, counters *collector.CounterSet, results []replay.CounterResult) error {
	bw := bufio.NewWriter(w)

	if err := writeLine(bw, Header(counters)); err != nil {
		return err
	}

	for _, row := range Rows(draws, counters, results) {
		if err := writeLine(bw, row); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeLine(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, fieldSeparator)); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
