package collector

import (
	"github.com/leoluk/replay_counters/replay"
)

// fakeEngine records the calls made through the replay interfaces.
type fakeEngine struct {
	openStatus   replay.ReplayStatus
	noLocal      bool
	replayStatus replay.ReplayStatus
	nilCtrl      bool

	draws    []*replay.DrawEvent
	counters []replay.CounterDescriptor
	results  []replay.CounterResult

	calls   []string
	fetches [][]replay.CounterID
}

func (e *fakeEngine) OpenCaptureFile() replay.CaptureFile {
	e.calls = append(e.calls, "OpenCaptureFile")
	return &fakeCapture{e: e}
}

type fakeCapture struct{ e *fakeEngine }

func (c *fakeCapture) OpenFile(path, driver string, progress replay.ProgressFunc) replay.ReplayStatus {
	c.e.calls = append(c.e.calls, "OpenFile "+path)
	return c.e.openStatus
}

func (c *fakeCapture) LocalReplaySupport() bool { return !c.e.noLocal }
func (c *fakeCapture) DriverName() string       { return "Fake" }
func (c *fakeCapture) ErrorString() string      { return "" }

func (c *fakeCapture) OpenCapture(opts replay.ReplayOptions, progress replay.ProgressFunc) (replay.ReplayStatus, replay.Controller) {
	c.e.calls = append(c.e.calls, "OpenCapture")
	if c.e.replayStatus != replay.Succeeded || c.e.nilCtrl {
		return c.e.replayStatus, nil
	}
	return replay.Succeeded, &fakeController{e: c.e}
}

func (c *fakeCapture) Shutdown() {
	c.e.calls = append(c.e.calls, "capture.Shutdown")
}

type fakeController struct{ e *fakeEngine }

func (c *fakeController) GetDrawcalls() []*replay.DrawEvent { return c.e.draws }

func (c *fakeController) EnumerateCounters() []replay.CounterID {
	ids := make([]replay.CounterID, len(c.e.counters))
	for i, d := range c.e.counters {
		ids[i] = d.Counter
	}
	return ids
}

func (c *fakeController) DescribeCounter(id replay.CounterID) replay.CounterDescriptor {
	for _, d := range c.e.counters {
		if d.Counter == id {
			return d
		}
	}
	return replay.CounterDescriptor{Counter: id}
}

func (c *fakeController) FetchCounters(ids []replay.CounterID) []replay.CounterResult {
	c.e.fetches = append(c.e.fetches, ids)
	return c.e.results
}

func (c *fakeController) Shutdown() {
	c.e.calls = append(c.e.calls, "controller.Shutdown")
}

func draw(id uint32, flags replay.DrawFlags, children ...*replay.DrawEvent) *replay.DrawEvent {
	return &replay.DrawEvent{EventID: id, Flags: flags, Children: children}
}
