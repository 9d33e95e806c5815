package collector

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/leoluk/replay_counters/replay"
)

// DefaultCounterFilter selects the occlusion style counters
// (SamplesPassed, SamplesWritten, ...).
const DefaultCounterFilter = "Samples"

// CounterSet is a set of described counters in the order the controller
// enumerated them.
type CounterSet struct {
	order []replay.CounterID
	descs map[replay.CounterID]replay.CounterDescriptor
}

func NewCounterSet(descs ...replay.CounterDescriptor) *CounterSet {
	s := &CounterSet{descs: make(map[replay.CounterID]replay.CounterDescriptor, len(descs))}
	for _, d := range descs {
		s.Add(d)
	}
	return s
}

// Add inserts or replaces d.
func (s *CounterSet) Add(d replay.CounterDescriptor) {
	if _, ok := s.descs[d.Counter]; !ok {
		s.order = append(s.order, d.Counter)
	}
	s.descs[d.Counter] = d
}

func (s *CounterSet) Get(id replay.CounterID) (replay.CounterDescriptor, bool) {
	d, ok := s.descs[id]
	return d, ok
}

func (s *CounterSet) Len() int {
	return len(s.order)
}

// IDs returns the counter ids in enumeration order.
func (s *CounterSet) IDs() []replay.CounterID {
	return append([]replay.CounterID(nil), s.order...)
}

// SortedIDs returns the counter ids in ascending order.
func (s *CounterSet) SortedIDs() []replay.CounterID {
	ids := s.IDs()
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// Descriptors returns the descriptors in enumeration order.
func (s *CounterSet) Descriptors() []replay.CounterDescriptor {
	out := make([]replay.CounterDescriptor, len(s.order))
	for i, id := range s.order {
		out[i] = s.descs[id]
	}
	return out
}

// DescribeCounters describes every counter the controller supports.
func DescribeCounters(ctrl replay.Controller) *CounterSet {
	s := NewCounterSet()
	for _, id := range ctrl.EnumerateCounters() {
		s.Add(ctrl.DescribeCounter(id))
	}
	return s
}

// Filter returns the counters whose name contains substr. The match is case
// sensitive; an empty substr keeps everything.
func (s *CounterSet) Filter(substr string) *CounterSet {
	out := NewCounterSet()
	for _, id := range s.order {
		if d := s.descs[id]; strings.Contains(d.Name, substr) {
			out.Add(d)
		}
	}
	return out
}

// SelectCounters describes the controller's counters, keeps those whose name
// contains filter and writes one description line per kept counter to w.
func SelectCounters(ctrl replay.Controller, filter string, w io.Writer) *CounterSet {
	selected := DescribeCounters(ctrl).Filter(filter)

	if w != nil {
		for _, d := range selected.Descriptors() {
			fmt.Fprintf(w, "Counter %d (%s): %s\n", d.Counter, d.Name, d.Description)
		}
	}

	return selected
}

// FetchCounters fetches every counter of set in a single request.
func FetchCounters(ctrl replay.Controller, set *CounterSet) []replay.CounterResult {
	return ctrl.FetchCounters(set.IDs())
}
