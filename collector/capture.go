package collector

import (
	"fmt"

	"github.com/leoluk/replay_counters/replay"
)

// CaptureOpenError is returned when the engine cannot open a capture file.
type CaptureOpenError struct {
	Path   string
	Status replay.ReplayStatus
	Detail string
}

func (e *CaptureOpenError) Error() string {
	msg := fmt.Sprintf("couldn't open file %s: %s", e.Path, e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ReplayUnsupportedError is returned for valid captures that cannot be
// replayed on this machine.
type ReplayUnsupportedError struct {
	Path   string
	Driver string
}

func (e *ReplayUnsupportedError) Error() string {
	if e.Driver != "" {
		return fmt.Sprintf("capture %s cannot be replayed (driver %s)", e.Path, e.Driver)
	}
	return fmt.Sprintf("capture %s cannot be replayed", e.Path)
}

// ReplayInitError is returned when the replay session fails to start.
type ReplayInitError struct {
	Path   string
	Status replay.ReplayStatus
	Detail string
}

func (e *ReplayInitError) Error() string {
	msg := fmt.Sprintf("couldn't initialise replay of %s: %s", e.Path, e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Session owns an open capture and its replay controller.
type Session struct {
	Capture    replay.CaptureFile
	Controller replay.Controller
	closed     bool
}

// LoadCapture opens path through engine and starts a replay session on it.
// The caller must Close the returned Session.
func LoadCapture(engine replay.Engine, path string) (*Session, error) {
	capture := engine.OpenCaptureFile()

	status := capture.OpenFile(path, "", nil)
	if status != replay.Succeeded {
		err := &CaptureOpenError{Path: path, Status: status, Detail: capture.ErrorString()}
		capture.Shutdown()
		return nil, err
	}

	if !capture.LocalReplaySupport() {
		err := &ReplayUnsupportedError{Path: path, Driver: capture.DriverName()}
		capture.Shutdown()
		return nil, err
	}

	status, controller := capture.OpenCapture(replay.DefaultReplayOptions(), nil)
	if status != replay.Succeeded || controller == nil {
		if controller != nil {
			controller.Shutdown()
		} else if status == replay.Succeeded {
			status = replay.InternalError
		}
		err := &ReplayInitError{Path: path, Status: status, Detail: capture.ErrorString()}
		capture.Shutdown()
		return nil, err
	}

	return &Session{Capture: capture, Controller: controller}, nil
}

// Close shuts down the controller, then the capture. Further calls do nothing.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true

	s.Controller.Shutdown()
	s.Capture.Shutdown()
}
