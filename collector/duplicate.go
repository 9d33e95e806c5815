package collector

import "strconv"

// RequiresDuplicateDistinction returns the names shared by more than one
// counter of the set once mangled.
func RequiresDuplicateDistinction(set *CounterSet) map[string]bool {
	seen := make(map[string]int)
	for _, d := range set.Descriptors() {
		seen[MakePrometheusName(d)]++
	}

	duplicates := make(map[string]bool)
	for name, n := range seen {
		if n > 1 {
			duplicates[name] = true
		}
	}
	return duplicates
}

// DuplicateDistinctionLabel returns the labels to allow duplicate distinction.
func DuplicateDistinctionLabel() []string {
	return []string{"counter_id"}
}

// DuplicateDistinctionLabelValue returns the label values to allow duplicate distinction.
func DuplicateDistinctionLabelValue(counter uint32) []string {
	return []string{strconv.FormatUint(uint64(counter), 10)}
}
