// Package report renders fetched counter results.
package report

import (
	"strconv"

	"github.com/leoluk/replay_counters/replay"
)

// FormatValue renders v the way desc says it is encoded: floats with six
// fractional digits, integer kinds as unsigned decimals read at the result's
// byte width. ok is false for result types that have no textual form.
func FormatValue(desc replay.CounterDescriptor, v replay.CounterValue) (s string, ok bool) {
	switch {
	case desc.ResultType == replay.Float:
		return strconv.FormatFloat(replay.AsFloat(v), 'f', 6, 64), true
	case desc.ResultType.IsInteger():
		if desc.ResultByteWidth == 4 {
			return strconv.FormatUint(uint64(replay.AsUint32(v)), 10), true
		}
		return strconv.FormatUint(replay.AsUint64(v), 10), true
	}
	return "", false
}

// ColumnName is the header label of a counter column.
func ColumnName(desc replay.CounterDescriptor) string {
	return desc.Name + " (" + desc.Unit.String() + ")"
}
