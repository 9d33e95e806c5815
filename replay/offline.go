package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the only counter snapshot layout OfflineEngine reads.
const SnapshotVersion = 1

// Snapshot is a counter snapshot: the draw tree, counter catalog and counter
// results of one capture, exported from a replay session.
type Snapshot struct {
	Version     int    `yaml:"version"`
	Driver      string `yaml:"driver"`
	LocalReplay *bool  `yaml:"local_replay"`
	// ReplayStatus, when set to anything but Succeeded, is returned from
	// OpenCapture instead of a controller.
	ReplayStatus string `yaml:"replay_status"`

	Draws    []SnapshotDraw    `yaml:"draws"`
	Counters []SnapshotCounter `yaml:"counters"`
	Results  []SnapshotResult  `yaml:"results"`
}

type SnapshotDraw struct {
	EventID  uint32         `yaml:"event_id"`
	Name     string         `yaml:"name"`
	Flags    []string       `yaml:"flags"`
	Children []SnapshotDraw `yaml:"children"`
}

type SnapshotCounter struct {
	ID          uint32 `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Unit        string `yaml:"unit"`
	ResultType  string `yaml:"result_type"`
	ByteWidth   uint32 `yaml:"byte_width"`
}

type SnapshotResult struct {
	EventID uint32   `yaml:"event_id"`
	Counter uint32   `yaml:"counter"`
	Value   RawValue `yaml:"value"`
}

// UnmarshalYAML accepts integer and floating point scalars.
func (r *RawValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: counter value must be a scalar", node.Line)
	}

	if u, err := strconv.ParseUint(node.Value, 0, 64); err == nil {
		*r = RawValue{Bits: u}
		return nil
	}
	if i, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
		*r = RawValue{Bits: uint64(i)}
		return nil
	}
	f, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid counter value %q", node.Line, node.Value)
	}
	*r = RawValue{Float: f, IsFloat: true}
	return nil
}

// ReadSnapshot decodes a snapshot. Files ending in .gz or .zst are
// decompressed first.
func ReadSnapshot(path string, r io.Reader) (*Snapshot, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	snap := &Snapshot{}
	if err := dec.Decode(snap); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return snap, nil
}

// OfflineEngine replays counter snapshots instead of GPU captures.
type OfflineEngine struct{}

func (OfflineEngine) OpenCaptureFile() CaptureFile {
	return &snapshotCapture{}
}

type snapshotCapture struct {
	snap   *Snapshot
	err    error
	closed bool
}

func (c *snapshotCapture) fail(status ReplayStatus, err error) ReplayStatus {
	c.err = err
	return status
}

func (c *snapshotCapture) OpenFile(path, driver string, progress ProgressFunc) ReplayStatus {
	if c.closed {
		return c.fail(InternalError, errors.New("capture file is shut down"))
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c.fail(FileNotFound, err)
	}
	if err != nil {
		return c.fail(FileIOFailed, err)
	}
	defer f.Close()

	snap, err := ReadSnapshot(path, f)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return c.fail(FileIOFailed, err)
		}
		return c.fail(FileCorrupted, err)
	}
	if snap.Version != 0 && snap.Version != SnapshotVersion {
		return c.fail(FileIncompatibleVersion,
			fmt.Errorf("snapshot version %d, want %d", snap.Version, SnapshotVersion))
	}
	if driver != "" && snap.Driver != driver {
		return c.fail(APIUnsupported,
			fmt.Errorf("snapshot was recorded with %q, not %q", snap.Driver, driver))
	}

	if progress != nil {
		progress(1)
	}

	c.snap = snap
	c.err = nil
	return Succeeded
}

func (c *snapshotCapture) LocalReplaySupport() bool {
	if c.snap == nil {
		return false
	}
	return c.snap.LocalReplay == nil || *c.snap.LocalReplay
}

func (c *snapshotCapture) DriverName() string {
	if c.snap == nil {
		return ""
	}
	return c.snap.Driver
}

func (c *snapshotCapture) ErrorString() string {
	if c.err == nil {
		return ""
	}
	return c.err.Error()
}

func (c *snapshotCapture) OpenCapture(opts ReplayOptions, progress ProgressFunc) (ReplayStatus, Controller) {
	if c.snap == nil || c.closed {
		return c.fail(InternalError, errors.New("no capture file is open")), nil
	}

	if c.snap.ReplayStatus != "" {
		status, ok := ParseReplayStatus(c.snap.ReplayStatus)
		if !ok {
			return c.fail(FileCorrupted, fmt.Errorf("unknown replay status %q", c.snap.ReplayStatus)), nil
		}
		if status != Succeeded {
			return c.fail(status, fmt.Errorf("replay recorded as %s", status)), nil
		}
	}

	ctrl, err := newSnapshotController(c.snap)
	if err != nil {
		return c.fail(FileCorrupted, err), nil
	}

	if progress != nil {
		progress(1)
	}
	return Succeeded, ctrl
}

func (c *snapshotCapture) Shutdown() {
	c.snap = nil
	c.closed = true
}

type snapshotController struct {
	draws    []*DrawEvent
	order    []CounterID
	counters map[CounterID]CounterDescriptor
	results  []SnapshotResult
	closed   bool
}

func newSnapshotController(snap *Snapshot) (*snapshotController, error) {
	ctrl := &snapshotController{
		counters: make(map[CounterID]CounterDescriptor, len(snap.Counters)),
		results:  snap.Results,
	}

	for _, d := range snap.Draws {
		draw, err := convertDraw(d)
		if err != nil {
			return nil, err
		}
		ctrl.draws = append(ctrl.draws, draw)
	}

	for _, c := range snap.Counters {
		desc, err := convertCounter(c)
		if err != nil {
			return nil, err
		}
		if _, ok := ctrl.counters[desc.Counter]; ok {
			return nil, fmt.Errorf("counter %d is defined twice", desc.Counter)
		}
		ctrl.order = append(ctrl.order, desc.Counter)
		ctrl.counters[desc.Counter] = desc
	}

	return ctrl, nil
}

func convertDraw(d SnapshotDraw) (*DrawEvent, error) {
	draw := &DrawEvent{EventID: d.EventID, Name: d.Name}

	for _, name := range d.Flags {
		f, ok := ParseDrawFlag(name)
		if !ok {
			return nil, fmt.Errorf("event %d: unknown draw flag %q", d.EventID, name)
		}
		draw.Flags |= f
	}

	for _, child := range d.Children {
		c, err := convertDraw(child)
		if err != nil {
			return nil, err
		}
		draw.Children = append(draw.Children, c)
	}

	return draw, nil
}

func convertCounter(c SnapshotCounter) (CounterDescriptor, error) {
	desc := CounterDescriptor{
		Counter:         CounterID(c.ID),
		Name:            c.Name,
		Category:        c.Category,
		Description:     c.Description,
		Unit:            CounterUnit(c.Unit),
		ResultByteWidth: c.ByteWidth,
	}

	if desc.Unit == "" {
		desc.Unit = Absolute
	}

	if c.ResultType != "" {
		t, ok := ParseCompType(c.ResultType)
		if !ok {
			return desc, fmt.Errorf("counter %d: unknown result type %q", c.ID, c.ResultType)
		}
		desc.ResultType = t
	}

	switch desc.ResultByteWidth {
	case 0:
		desc.ResultByteWidth = 8
	case 4, 8:
	default:
		return desc, fmt.Errorf("counter %d: result byte width %d, want 4 or 8", c.ID, c.ByteWidth)
	}

	return desc, nil
}

func (c *snapshotController) GetDrawcalls() []*DrawEvent {
	if c.closed {
		return nil
	}
	return c.draws
}

func (c *snapshotController) EnumerateCounters() []CounterID {
	if c.closed {
		return nil
	}
	return append([]CounterID(nil), c.order...)
}

func (c *snapshotController) DescribeCounter(id CounterID) CounterDescriptor {
	if desc, ok := c.counters[id]; ok && !c.closed {
		return desc
	}
	return CounterDescriptor{Counter: id}
}

func (c *snapshotController) FetchCounters(ids []CounterID) []CounterResult {
	if c.closed || len(ids) == 0 {
		return nil
	}

	wanted := make(map[CounterID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var results []CounterResult
	for _, r := range c.results {
		id := CounterID(r.Counter)
		if !wanted[id] {
			continue
		}
		desc, ok := c.counters[id]
		if !ok {
			continue
		}
		results = append(results, CounterResult{
			EventID: r.EventID,
			Counter: id,
			Value:   DecodeValue(desc, r.Value),
		})
	}

	return results
}

func (c *snapshotController) Shutdown() {
	c.closed = true
	c.draws = nil
	c.results = nil
}
