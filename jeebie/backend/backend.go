package backend

import (
	"github.com/valerio/jeebie/jeebie/input/action"
	"github.com/valerio/jeebie/jeebie/input/event"
	"github.com/valerio/jeebie/jeebie/video"
)

// InputEvent represents an input event from a backend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Backend represents a complete emulator platform (rendering + input).
// Backends are responsible for:
//   - Rendering frames to their specific output (terminal, SDL window, etc.)
//   - Capturing platform-specific input events and returning them as InputEvents
type Backend interface {
	// Init configures the backend with the provided configuration. This is
	// a required step before calling Update.
	Init(config BackendConfig) error

	// Update polls for platform events, translates them to InputEvents,
	// renders the given frame, and returns the InputEvents collected.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup releases backend resources on shutdown.
	Cleanup() error
}

// BackendConfig holds configuration shared by every backend.
type BackendConfig struct {
	Title      string
	Scale      int
	VSync      bool
	Fullscreen bool
}
