package replay

import (
	"strconv"
	"strings"
)

// CounterID identifies a GPU or software counter known to the replay engine.
type CounterID uint32

// DrawFlags describes what kind of event a DrawEvent is.
type DrawFlags uint32

const (
	NoFlags DrawFlags = 0

	Clear        DrawFlags = 1 << 0
	Drawcall     DrawFlags = 1 << 1
	Dispatch     DrawFlags = 1 << 2
	CmdList      DrawFlags = 1 << 3
	SetMarker    DrawFlags = 1 << 4
	PushMarker   DrawFlags = 1 << 5
	PopMarker    DrawFlags = 1 << 6
	Present      DrawFlags = 1 << 7
	MultiDraw    DrawFlags = 1 << 8
	Copy         DrawFlags = 1 << 9
	Resolve      DrawFlags = 1 << 10
	GenMips      DrawFlags = 1 << 11
	PassBoundary DrawFlags = 1 << 12

	Indexed           DrawFlags = 1 << 16
	Instanced         DrawFlags = 1 << 17
	Auto              DrawFlags = 1 << 18
	Indirect          DrawFlags = 1 << 19
	ClearColor        DrawFlags = 1 << 20
	ClearDepthStencil DrawFlags = 1 << 21
	BeginPass         DrawFlags = 1 << 22
	EndPass           DrawFlags = 1 << 23
	APICalls          DrawFlags = 1 << 24
)

var drawFlagNames = []struct {
	flag DrawFlags
	name string
}{
	{Clear, "Clear"},
	{Drawcall, "Drawcall"},
	{Dispatch, "Dispatch"},
	{CmdList, "CmdList"},
	{SetMarker, "SetMarker"},
	{PushMarker, "PushMarker"},
	{PopMarker, "PopMarker"},
	{Present, "Present"},
	{MultiDraw, "MultiDraw"},
	{Copy, "Copy"},
	{Resolve, "Resolve"},
	{GenMips, "GenMips"},
	{PassBoundary, "PassBoundary"},
	{Indexed, "Indexed"},
	{Instanced, "Instanced"},
	{Auto, "Auto"},
	{Indirect, "Indirect"},
	{ClearColor, "ClearColor"},
	{ClearDepthStencil, "ClearDepthStencil"},
	{BeginPass, "BeginPass"},
	{EndPass, "EndPass"},
	{APICalls, "APICalls"},
}

// Has reports whether every bit of f is set.
func (d DrawFlags) Has(f DrawFlags) bool {
	return d&f == f
}

func (d DrawFlags) String() string {
	if d == NoFlags {
		return "NoFlags"
	}

	var names []string
	for _, n := range drawFlagNames {
		if d&n.flag != 0 {
			names = append(names, n.name)
		}
	}

	return strings.Join(names, "|")
}

// ParseDrawFlag returns the flag with the given name.
func ParseDrawFlag(name string) (DrawFlags, bool) {
	for _, n := range drawFlagNames {
		if n.name == name {
			return n.flag, true
		}
	}
	return NoFlags, false
}

// DrawEvent is a node of the capture's draw tree. Children are in replay order.
type DrawEvent struct {
	EventID  uint32
	Name     string
	Flags    DrawFlags
	Children []*DrawEvent
}

// CompType is the numeric interpretation of a counter result.
type CompType uint8

const (
	Typeless CompType = iota
	Float
	UNorm
	SNorm
	UInt
	SInt
	UScaled
	SScaled
	Depth
	Double
)

var compTypeNames = map[CompType]string{
	Typeless: "Typeless",
	Float:    "Float",
	UNorm:    "UNorm",
	SNorm:    "SNorm",
	UInt:     "UInt",
	SInt:     "SInt",
	UScaled:  "UScaled",
	SScaled:  "SScaled",
	Depth:    "Depth",
	Double:   "Double",
}

func (c CompType) String() string {
	if s, ok := compTypeNames[c]; ok {
		return s
	}
	return "CompType(" + strconv.Itoa(int(c)) + ")"
}

// IsInteger reports whether results of this type are read as unsigned integers.
func (c CompType) IsInteger() bool {
	switch c {
	case UInt, SInt, UNorm, UScaled, SNorm, SScaled:
		return true
	}
	return false
}

// ParseCompType returns the CompType with the given name.
func ParseCompType(name string) (CompType, bool) {
	for c, s := range compTypeNames {
		if s == name {
			return c, true
		}
	}
	return Typeless, false
}

// CounterUnit is the unit a counter reports in. Engines may report units
// outside the predefined set; they are kept verbatim.
type CounterUnit string

const (
	Absolute   CounterUnit = "Absolute"
	Seconds    CounterUnit = "Seconds"
	Percentage CounterUnit = "Percentage"
	Ratio      CounterUnit = "Ratio"
	Bytes      CounterUnit = "Bytes"
	Cycles     CounterUnit = "Cycles"
	Hertz      CounterUnit = "Hertz"
	Volt       CounterUnit = "Volt"
	Celsius    CounterUnit = "Celsius"
)

func (u CounterUnit) String() string { return string(u) }

// CounterDescriptor describes a counter and how its results are encoded.
type CounterDescriptor struct {
	Counter         CounterID
	Name            string
	Category        string
	Description     string
	Unit            CounterUnit
	ResultType      CompType
	ResultByteWidth uint32
}

// CounterResult is the value of one counter for one event.
type CounterResult struct {
	EventID uint32
	Counter CounterID
	Value   CounterValue
}
