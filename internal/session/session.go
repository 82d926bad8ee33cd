// Package session holds the mutable per-run configuration of the prompt
// runner: where the inference binary and model live, which backend to
// request and which library path to export for GPU runs.
package session

import (
	"errors"
	"fmt"
	"strings"
)

// Backend selects the execution mode requested from the inference binary.
type Backend string

const (
	BackendCPU Backend = "cpu"
	BackendGPU Backend = "gpu"
)

// Default locations on the device.
const (
	DefaultDeviceFolder   = "/data/local/tmp"
	DefaultExecutablePath = DefaultDeviceFolder + "/litert_lm_main"
	DefaultModelPath      = DefaultDeviceFolder + "/model.litertlm"
	DefaultLibraryPath    = DefaultDeviceFolder
	DefaultBackend        = BackendGPU
)

var (
	// ErrInvalidBackend is returned when a backend value is neither cpu nor gpu.
	ErrInvalidBackend = errors.New("backend must be cpu or gpu")

	// ErrEmptyValue is returned when a path setter receives a blank value.
	ErrEmptyValue = errors.New("value must not be empty")
)

// ParseBackend normalizes a case-insensitive backend name.
func ParseBackend(value string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(value))); b {
	case BackendCPU, BackendGPU:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBackend, value)
	}
}

// State is the session configuration shared across loop turns.
// Fields are always non-empty and Backend is always valid; mutate it
// through the setters only.
type State struct {
	executablePath string
	modelPath      string
	backend        Backend
	libraryPath    string
}

// New returns a State initialized to the device defaults.
func New() *State {
	return &State{
		executablePath: DefaultExecutablePath,
		modelPath:      DefaultModelPath,
		backend:        DefaultBackend,
		libraryPath:    DefaultLibraryPath,
	}
}

// ExecutablePath returns the path of the inference binary.
func (s *State) ExecutablePath() string {
	return s.executablePath
}

// ModelPath returns the path of the .litertlm model.
func (s *State) ModelPath() string {
	return s.modelPath
}

// Backend returns the normalized backend.
func (s *State) Backend() Backend {
	return s.backend
}

// LibraryPath returns the LD_LIBRARY_PATH exported for gpu runs.
func (s *State) LibraryPath() string {
	return s.libraryPath
}

// SetBackend stores the lowercase form of value. Anything other than
// cpu/gpu leaves the state untouched and returns ErrInvalidBackend.
func (s *State) SetBackend(value string) error {
	b, err := ParseBackend(value)
	if err != nil {
		return err
	}
	s.backend = b
	return nil
}

// SetExecutablePath sets the inference binary path. No existence check is made.
func (s *State) SetExecutablePath(value string) error {
	return setPath(&s.executablePath, value)
}

// SetModelPath sets the model artifact path. No existence check is made.
func (s *State) SetModelPath(value string) error {
	return setPath(&s.modelPath, value)
}

// SetLibraryPath sets the LD_LIBRARY_PATH used for gpu runs.
func (s *State) SetLibraryPath(value string) error {
	return setPath(&s.libraryPath, value)
}

func setPath(field *string, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return ErrEmptyValue
	}
	*field = v
	return nil
}

// Snapshot is an immutable copy of State taken for a single invocation.
type Snapshot struct {
	ExecutablePath string
	ModelPath      string
	Backend        Backend
	LibraryPath    string
}

// Snapshot copies the current values.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		ExecutablePath: s.executablePath,
		ModelPath:      s.modelPath,
		Backend:        s.backend,
		LibraryPath:    s.libraryPath,
	}
}
