package main

import (
	"fmt"
	"log"
	"os"

	"github.com/leoluk/replay_counters/collector"
	"github.com/leoluk/replay_counters/replay"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalln("Usage: ./count capture.yaml")
	}

	session, err := collector.LoadCapture(replay.OfflineEngine{}, os.Args[1])

	if err != nil {
		panic(err)
	}

	defer session.Close()

	numDrawcalls := 0

	draws := collector.IndexDraws(session.Controller)
	draws.Each(func(d *replay.DrawEvent) {
		if d.Flags.Has(replay.Drawcall) {
			numDrawcalls += 1
		}
	})

	fmt.Printf("\nNumber of events: %d\n", draws.Len())
	fmt.Printf("Number of drawcalls: %d\n", numDrawcalls)
	fmt.Printf("Number of counters: %d\n", len(session.Controller.EnumerateCounters()))
}
