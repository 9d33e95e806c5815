package collector

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leoluk/replay_counters/replay"
)

// splitCamel inserts a space at lower-to-upper case transitions, so that
// vendor names like "SamplesPassed" mangle the same as "Samples Passed".
func splitCamel(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func mangleCounterName(s string) string {
	s = splitCamel(s)
	s = strings.ToLower(s)
	s = strings.Replace(s, "%", " percent ", -1)
	s = strings.Replace(s, "/", " per ", -1)
	s = strings.Replace(s, "&", " and ", -1)
	s = strings.Replace(s, "#", " ", -1)
	s = strings.Replace(s, "(", "", -1)
	s = strings.Replace(s, ")", "", -1)
	s = strings.Replace(s, ".", "", -1)
	s = strings.Replace(s, "+", "", -1)
	s = strings.Replace(s, ":", "", -1)
	s = strings.Replace(s, "-", " ", -1)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return ' '
	}, s)

	s = strings.Join(strings.Fields(s), "_")

	for strings.Contains(s, "__") {
		s = strings.Replace(s, "__", "_", -1)
	}

	return strings.Trim(s, "_")
}

func unitSuffix(u replay.CounterUnit) string {
	switch u {
	case replay.Seconds:
		return "seconds"
	case replay.Bytes:
		return "bytes"
	case replay.Percentage:
		return "percent"
	case replay.Ratio:
		return "ratio"
	case replay.Cycles:
		return "cycles"
	case replay.Hertz:
		return "hertz"
	case replay.Volt:
		return "volts"
	case replay.Celsius:
		return "celsius"
	}
	return ""
}

// MakePrometheusName returns the metric name suffix for a counter.
func MakePrometheusName(desc replay.CounterDescriptor) (s string) {
	s = mangleCounterName(desc.Name)
	if s == "" {
		s = fmt.Sprintf("counter_%d", desc.Counter)
	}

	if suffix := unitSuffix(desc.Unit); suffix != "" && !strings.Contains(s, suffix) {
		s += "_" + suffix
	}

	return
}

func descFromCounter(desc replay.CounterDescriptor, distinct bool) *prometheus.Desc {
	name := MakePrometheusName(desc)
	labels := []string{"event_id"}

	help := fmt.Sprintf("replay counter: %s (%s) [%d]", desc.Name, desc.Unit, desc.Counter)
	if desc.Description != "" {
		help = fmt.Sprintf("%s: %s", help, desc.Description)
	}

	// Colliding counters share one metric family, so help has to match.
	if distinct {
		labels = append(labels, DuplicateDistinctionLabel()...)
		help = fmt.Sprintf("replay counters mangled to %s (see counter_id)", name)
	}

	return prometheus.NewDesc(
		prometheus.BuildFQName(Namespace, "counter", name),
		help,
		labels,
		nil,
	)
}
