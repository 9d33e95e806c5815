package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/davecgh/go-spew/spew"

	"github.com/leoluk/replay_counters/collector"
	"github.com/leoluk/replay_counters/replay"
	"github.com/leoluk/replay_counters/report"
)

func printDraw(d *replay.DrawEvent, indent string) {
	fmt.Printf("%s`-- [%d] %s (%s)\n", indent, d.EventID, d.Name, d.Flags)

	for _, c := range d.Children {
		printDraw(c, indent+"    ")
	}
}

func main() {
	var (
		capture = kingpin.Arg("capture",
			"Capture to dump").Required().String()
		showValues = kingpin.Flag("values",
			"Dump counter descriptors and fetched values").Short('v').Bool()
		defsOnly = kingpin.Flag("defs-only",
			"Show counter definitions only (no draw tree) and include Prometheus names").Short('o').Bool()
		filter = kingpin.Flag("filter",
			"Only show counters whose name contains this substring").Short('f').String()
		htmlPath = kingpin.Flag("html",
			"Write the counter catalog page to this file").String()
	)

	kingpin.Parse()

	session, err := collector.LoadCapture(replay.OfflineEngine{}, *capture)

	if err != nil {
		panic(err)
	}

	defer session.Close()

	draws := collector.IndexDraws(session.Controller)
	counters := collector.DescribeCounters(session.Controller).Filter(*filter)

	if !*defsOnly {
		for _, d := range session.Controller.GetDrawcalls() {
			printDraw(d, "")
		}
		fmt.Println()
	}

	for _, d := range counters.Descriptors() {
		fmt.Printf("%d %s [%s, %s x%d bytes]\n",
			d.Counter, d.Name, d.Unit, d.ResultType, d.ResultByteWidth)

		if *defsOnly {
			fmt.Printf("    `-- %s\n", collector.MakePrometheusName(d))
			if d.Description != "" {
				fmt.Printf("        %s\n", strings.TrimSpace(d.Description))
			}
		}
	}

	if *showValues {
		spew.Dump(counters.Descriptors())
		spew.Dump(collector.FetchCounters(session.Controller, counters))
	}

	if *htmlPath != "" {
		f, err := os.Create(*htmlPath)
		if err != nil {
			panic(err)
		}

		catalog := report.NewCatalog(*capture, session.Capture.DriverName(), draws, counters)
		if err := report.WriteHTML(f, catalog); err != nil {
			f.Close()
			panic(err)
		}

		if err := f.Close(); err != nil {
			panic(err)
		}
	}

	fmt.Printf("\nNumber of events: %d\n", draws.Len())
	fmt.Printf("\nNumber of counters: %d\n", counters.Len())
}
