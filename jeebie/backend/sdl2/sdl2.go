//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/jeebie/jeebie/backend"
	"github.com/valerio/jeebie/jeebie/input/action"
	"github.com/valerio/jeebie/jeebie/input/event"
	"github.com/valerio/jeebie/jeebie/video"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	pixelScale    = 4
	windowWidth   = video.FramebufferWidth * pixelScale
	windowHeight  = video.FramebufferHeight * pixelScale
	bytesPerPixel = 4
)

// Backend implements the Backend interface using SDL2 bindings.
// Building it requires SDL2 development libraries and the "sdl2" build tag;
// default builds use the stub in stub.go instead.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool
	config   backend.BackendConfig

	pixelBuffer []byte
	eventBuffer []backend.InputEvent
}

func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	scale := int32(config.Scale)
	if scale <= 0 {
		scale = pixelScale
	}
	flags := uint32(sdl.WINDOW_SHOWN)
	if config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		video.FramebufferWidth*scale,
		video.FramebufferHeight*scale,
		flags,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	s.window.Show()
	s.pixelBuffer = make([]byte, video.FramebufferWidth*video.FramebufferHeight*bytesPerPixel)
	s.eventBuffer = make([]backend.InputEvent, 0, 10)
	s.running = true

	slog.Info("sdl2 backend initialized")
	return nil
}

func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	s.eventBuffer = s.eventBuffer[:0]

	for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
		if inputEvents := s.handleEvent(evt); inputEvents != nil {
			s.eventBuffer = append(s.eventBuffer, inputEvents...)
		}
	}

	if !s.running {
		return s.eventBuffer, nil
	}

	s.renderFrame(frame)
	return s.eventBuffer, nil
}

func (s *Backend) Cleanup() error {
	slog.Info("cleaning up sdl2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

func (s *Backend) handleEvent(evt sdl.Event) []backend.InputEvent {
	switch e := evt.(type) {
	case *sdl.QuitEvent:
		s.running = false
		return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return s.handleKeyDown(e.Keysym.Sym, e.Repeat)
		} else if e.Type == sdl.KEYUP {
			return s.handleKeyUp(e.Keysym.Sym)
		}
	}

	return nil
}

// keyMapping maps SDL2 keys to actions, matching the shared default keymap.
var keyMapping = map[sdl.Keycode]action.Action{
	sdl.K_w:      action.GBDPadUp,
	sdl.K_s:      action.GBDPadDown,
	sdl.K_a:      action.GBDPadLeft,
	sdl.K_d:      action.GBDPadRight,
	sdl.K_k:      action.GBButtonA,
	sdl.K_j:      action.GBButtonB,
	sdl.K_l:      action.GBButtonSelect,
	sdl.K_SEMICOLON: action.GBButtonStart,
	sdl.K_SPACE:  action.EmulatorBoost,
	sdl.K_ESCAPE: action.EmulatorDumpRegisters,
	sdl.K_q:      action.EmulatorQuit,
}

func (s *Backend) handleKeyDown(key sdl.Keycode, repeat uint8) []backend.InputEvent {
	act, exists := keyMapping[key]
	if !exists {
		return nil
	}
	if repeat == 0 {
		return []backend.InputEvent{{Action: act, Type: event.Press}}
	}
	return []backend.InputEvent{{Action: act, Type: event.Hold}}
}

func (s *Backend) handleKeyUp(key sdl.Keycode) []backend.InputEvent {
	act, exists := keyMapping[key]
	if !exists {
		return nil
	}
	switch act {
	case action.GBButtonA, action.GBButtonB, action.GBButtonStart, action.GBButtonSelect,
		action.GBDPadUp, action.GBDPadDown, action.GBDPadLeft, action.GBDPadRight:
		return []backend.InputEvent{{Action: act, Type: event.Release}}
	}
	return nil
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) {
	frameData := frame.ToSlice()

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			srcIdx := y*video.FramebufferWidth + x
			dstIdx := srcIdx * bytesPerPixel

			r, g, b, a := gbColorToRGBA(frameData[srcIdx])

			s.pixelBuffer[dstIdx] = byte(a)
			s.pixelBuffer[dstIdx+1] = byte(b)
			s.pixelBuffer[dstIdx+2] = byte(g)
			s.pixelBuffer[dstIdx+3] = byte(r)
		}
	}

	s.texture.Update(nil, unsafe.Pointer(&s.pixelBuffer[0]), video.FramebufferWidth*bytesPerPixel)

	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}

func gbColorToRGBA(gbColor uint32) (r, g, b, a uint8) {
	switch gbColor {
	case uint32(video.WhiteColor):
		return 0xFF, 0xFF, 0xFF, 0xFF
	case uint32(video.LightGreyColor):
		return 0xBF, 0xBF, 0xBF, 0xFF
	case uint32(video.DarkGreyColor):
		return 0x40, 0x40, 0x40, 0xFF
	case uint32(video.BlackColor):
		return 0x00, 0x00, 0x00, 0xFF
	}

	red := uint8(gbColor >> 16)
	return red, red, red, 0xFF
}
