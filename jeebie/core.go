package jeebie

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/jeebie/jeebie/cpu"
	"github.com/valerio/jeebie/jeebie/memory"
	"github.com/valerio/jeebie/jeebie/video"
)

// cyclesPerFrame is the number of T-cycles in one 59.7Hz Game Boy frame:
// 154 scanlines of 456 cycles each.
const cyclesPerFrame = 70224

// Emulator is the root struct and entry point for running the emulation: it
// wires together the CPU, PPU and MMU and drives them one frame at a time.
type Emulator struct {
	cpu *cpu.CPU
	gpu *video.GPU
	mem *memory.MMU

	frameCount uint64
}

func newEmulator(mem *memory.MMU) *Emulator {
	return &Emulator{
		cpu: cpu.New(mem),
		gpu: video.NewGpu(mem),
		mem: mem,
	}
}

// New creates a new emulator instance with no cartridge inserted.
func New() *Emulator {
	return newEmulator(memory.New())
}

// NewWithFile creates a new emulator instance and loads the ROM file at
// path into it.
func NewWithFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded ROM data", "size", len(data))

	cart := memory.NewCartridge(data)
	return newEmulator(memory.NewWithCartridge(cart)), nil
}

// RunUntilFrame steps the CPU and PPU until a full frame (70224 cycles) has
// elapsed.
func (e *Emulator) RunUntilFrame() {
	total := 0
	for total < cyclesPerFrame {
		cycles := e.cpu.Tick()
		e.mem.Tick(cycles)
		e.gpu.Tick(cycles)
		total += cycles
	}

	e.frameCount++
	if e.frameCount%60 == 0 {
		slog.Debug("frame completed", "frame", e.frameCount, "pc", fmt.Sprintf("0x%04X", e.cpu.GetPC()))
	}
}

// GetCurrentFrame returns the framebuffer for the most recently rendered frame.
func (e *Emulator) GetCurrentFrame() *video.FrameBuffer {
	return e.gpu.GetFrameBuffer()
}

func (e *Emulator) HandleKeyPress(key memory.JoypadKey) {
	e.mem.HandleKeyPress(key)
}

func (e *Emulator) HandleKeyRelease(key memory.JoypadKey) {
	e.mem.HandleKeyRelease(key)
}

func (e *Emulator) GetCPU() *cpu.CPU {
	return e.cpu
}

func (e *Emulator) GetMMU() *memory.MMU {
	return e.mem
}

func (e *Emulator) GetFrameCount() uint64 {
	return e.frameCount
}
