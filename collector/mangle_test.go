package collector

import (
	"fmt"
	"sort"

	"github.com/leoluk/replay_counters/replay"
)

func ExampleMakePrometheusName() {
	counters := []replay.CounterDescriptor{
		{Counter: 1, Name: "GPU Duration", Unit: replay.Seconds},
		{Counter: 2, Name: "Input Vertices Read", Unit: replay.Absolute},
		{Counter: 8, Name: "Samples Passed", Unit: replay.Absolute},
		{Counter: 3, Name: "PS Invocations", Unit: replay.Absolute},
		{Counter: 1000000, Name: "GPUDuration", Unit: replay.Seconds},
		{Counter: 1000001, Name: "SamplesPassed", Unit: "count"},
		{Counter: 2000000, Name: "L2 Cache Hit Rate (%)", Unit: replay.Percentage},
		{Counter: 2000001, Name: "Texture Memory Read & Write", Unit: replay.Bytes},
		{Counter: 2000002, Name: "% Shader Busy", Unit: replay.Percentage},
		{Counter: 2000003, Name: "Bytes Read/Frame", Unit: replay.Bytes},
		{Counter: 3000000, Name: "", Unit: replay.Absolute},
	}

	sort.Slice(counters, func(i, j int) bool {
		return counters[i].Counter < counters[j].Counter
	})

	for _, c := range counters {
		fmt.Printf("%d %s\n", c.Counter, MakePrometheusName(c))
	}

	// Output:
	// 1 gpu_duration_seconds
	// 2 input_vertices_read
	// 3 ps_invocations
	// 8 samples_passed
	// 1000000 gpu_duration_seconds
	// 1000001 samples_passed
	// 2000000 l2_cache_hit_rate_percent
	// 2000001 texture_memory_read_and_write_bytes
	// 2000002 percent_shader_busy
	// 2000003 bytes_read_per_frame
	// 3000000 counter_3000000
}

func ExampleRequiresDuplicateDistinction() {
	set := NewCounterSet(
		replay.CounterDescriptor{Counter: 8, Name: "Samples Passed"},
		replay.CounterDescriptor{Counter: 1000001, Name: "SamplesPassed"},
		replay.CounterDescriptor{Counter: 9, Name: "Samples Written"},
	)

	fmt.Println(RequiresDuplicateDistinction(set))
	fmt.Println(DuplicateDistinctionLabel(), DuplicateDistinctionLabelValue(1000001))

	// Output:
	// map[samples_passed:true]
	// [counter_id] [1000001]
}
