// Package replay describes the replay engine this tool drives: capture files,
// replay controllers and the counter data they hand out.
package replay

import "strconv"

// ReplayStatus is the outcome of opening a capture or a replay session.
type ReplayStatus uint32

const (
	Succeeded ReplayStatus = iota
	UnknownError
	InternalError
	FileNotFound
	InjectionFailed
	IncompatibleProcess
	NetworkIOFailed
	NetworkRemoteBusy
	NetworkVersionMismatch
	FileIOFailed
	FileIncompatibleVersion
	FileCorrupted
	ImageUnsupported
	APIUnsupported
	APIInitFailed
	APIIncompatibleVersion
	APIHardwareUnsupported
	APIDataCorrupted
	APIReplayFailed
	JDWPFailure
	AndroidGrantPermissionsFailed
	AndroidABINotFound
	AndroidAPKFolderNotFound
	AndroidAPKInstallFailed
	AndroidAPKVerifyFailed
	RemoteServerConnectionLost
)

var replayStatusNames = [...]string{
	"Succeeded",
	"UnknownError",
	"InternalError",
	"FileNotFound",
	"InjectionFailed",
	"IncompatibleProcess",
	"NetworkIOFailed",
	"NetworkRemoteBusy",
	"NetworkVersionMismatch",
	"FileIOFailed",
	"FileIncompatibleVersion",
	"FileCorrupted",
	"ImageUnsupported",
	"APIUnsupported",
	"APIInitFailed",
	"APIIncompatibleVersion",
	"APIHardwareUnsupported",
	"APIDataCorrupted",
	"APIReplayFailed",
	"JDWPFailure",
	"AndroidGrantPermissionsFailed",
	"AndroidABINotFound",
	"AndroidAPKFolderNotFound",
	"AndroidAPKInstallFailed",
	"AndroidAPKVerifyFailed",
	"RemoteServerConnectionLost",
}

func (s ReplayStatus) String() string {
	if int(s) < len(replayStatusNames) {
		return replayStatusNames[s]
	}
	return "ReplayStatus(" + strconv.FormatUint(uint64(s), 10) + ")"
}

// ParseReplayStatus returns the status with the given name.
func ParseReplayStatus(name string) (ReplayStatus, bool) {
	for i, n := range replayStatusNames {
		if n == name {
			return ReplayStatus(i), true
		}
	}
	return UnknownError, false
}

// ProgressFunc receives progress in [0, 1] during long running engine calls.
// A nil ProgressFunc is valid everywhere one is accepted.
type ProgressFunc func(progress float32)

// ReplayOptions tunes a replay session.
type ReplayOptions struct {
	// ForceGPUVendor/ForceGPUDevice select a specific GPU when non-zero.
	ForceGPUVendor uint32
	ForceGPUDevice uint32
	APIValidation  bool
	// OptimisationLevel is 0 (none) to 3 (aggressive).
	OptimisationLevel int
}

// DefaultReplayOptions returns the options the engine uses when the caller
// has no preference.
func DefaultReplayOptions() ReplayOptions {
	return ReplayOptions{OptimisationLevel: 2}
}

// Engine hands out capture files.
type Engine interface {
	OpenCaptureFile() CaptureFile
}

// CaptureFile is a handle on one capture. It must be shut down exactly once,
// after any Controller obtained from it.
type CaptureFile interface {
	// OpenFile opens the capture at path. driver forces a driver name and is
	// normally empty.
	OpenFile(path, driver string, progress ProgressFunc) ReplayStatus
	LocalReplaySupport() bool
	DriverName() string
	// ErrorString describes the last failure, if the engine knows more than
	// the status code.
	ErrorString() string
	// OpenCapture starts a replay session on the opened file.
	OpenCapture(opts ReplayOptions, progress ProgressFunc) (ReplayStatus, Controller)
	Shutdown()
}

// Controller is a replay session.
type Controller interface {
	// GetDrawcalls returns the roots of the draw tree.
	GetDrawcalls() []*DrawEvent
	EnumerateCounters() []CounterID
	DescribeCounter(id CounterID) CounterDescriptor
	// FetchCounters gathers the given counters for every event in one go.
	// Results come back in no particular order.
	FetchCounters(ids []CounterID) []CounterResult
	Shutdown()
}
