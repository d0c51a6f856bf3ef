//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/valerio/jeebie/jeebie/backend"
	"github.com/valerio/jeebie/jeebie/video"
)

// Backend stubs out the SDL2 backend for default builds; build with
// -tags sdl2 (and SDL2 dev libraries installed) to enable the real one.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.BackendConfig) error {
	return fmt.Errorf("sdl2 backend not available - build with -tags sdl2 to enable")
}

func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	return nil, fmt.Errorf("sdl2 backend not available")
}

func (s *Backend) Cleanup() error {
	return nil
}
