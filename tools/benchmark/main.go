package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/leoluk/replay_counters/collector"
	"github.com/leoluk/replay_counters/replay"
)

type counterTimings struct {
	id      replay.CounterID
	name    string
	results int
	value   time.Duration
}

func main() {
	var (
		capture = kingpin.Arg("capture", "Capture to benchmark").Required().String()
		filter  = kingpin.Flag("filter", "Only time counters whose name contains this substring").Short('f').String()
	)
	kingpin.Parse()

	session, err := collector.LoadCapture(replay.OfflineEngine{}, *capture)

	if err != nil {
		panic(err)
	}

	defer session.Close()

	counters := collector.DescribeCounters(session.Controller).Filter(*filter)
	timings := make([]counterTimings, 0, counters.Len())

	for _, d := range counters.Descriptors() {
		tStart := time.Now()
		results := session.Controller.FetchCounters([]replay.CounterID{d.Counter})
		tEnd := time.Now()

		timings = append(timings, counterTimings{
			id:      d.Counter,
			name:    d.Name,
			results: len(results),
			value:   tEnd.Sub(tStart),
		})
	}

	tStart := time.Now()
	batched := collector.FetchCounters(session.Controller, counters)
	batchTime := time.Since(tStart)

	sort.Slice(timings, func(i, j int) bool {
		return timings[i].value > timings[j].value
	})

	for _, v := range timings {
		bar := strings.Repeat("█", int(v.value/100000/2))
		fmt.Printf("%s %d %s [%d results] %s\n", bar, v.id, v.name, v.results, v.value)
	}

	fmt.Printf("\nBatched fetch of %d counters: %d results in %s\n", counters.Len(), len(batched), batchTime)
}
