package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/jeebie/jeebie"
	"github.com/valerio/jeebie/jeebie/backend"
	"github.com/valerio/jeebie/jeebie/backend/headless"
	"github.com/valerio/jeebie/jeebie/backend/sdl2"
	"github.com/valerio/jeebie/jeebie/backend/terminal"
	"github.com/valerio/jeebie/jeebie/input"
	"github.com/valerio/jeebie/jeebie/input/action"
	"github.com/valerio/jeebie/jeebie/input/event"
	"github.com/valerio/jeebie/jeebie/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "Jeebie"
	app.Description = "A Game Boy emulator"
	app.Usage = "jeebie [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Rendering backend to use: terminal, sdl2, headless",
			Value: "terminal",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run before quitting (headless mode requires this)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save PNG frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Pixel scale factor for graphical backends",
			Value: 4,
		},
		cli.BoolFlag{
			Name:  "fullscreen",
			Usage: "Run in fullscreen (sdl2 backend only)",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	emu, err := jeebie.NewWithFile(romPath)
	if err != nil {
		return err
	}

	backendName := c.String("backend")

	var be backend.Backend
	var limiter timing.Limiter

	switch backendName {
	case "terminal":
		be = terminal.New()
		limiter = timing.NewAdaptiveLimiter()
	case "sdl2":
		be = sdl2.New()
		limiter = timing.NewAdaptiveLimiter()
	case "headless":
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless backend requires --frames with a positive value")
		}
		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return err
		}
		be = headless.New(frames, snapshotConfig)
		limiter = timing.NewNoOpLimiter()
	default:
		return fmt.Errorf("unknown backend %q (want terminal, sdl2, or headless)", backendName)
	}

	config := backend.BackendConfig{
		Title:      "Jeebie",
		Scale:      c.Int("scale"),
		Fullscreen: c.Bool("fullscreen"),
	}

	if err := be.Init(config); err != nil {
		return err
	}
	defer be.Cleanup()

	manager := input.NewManager(emu.GetMMU())
	manager.On(action.EmulatorDumpRegisters, event.Press, func() {
		slog.Info("register dump", "registers", emu.GetCPU().DumpRegisters())
	})

	boosting := false
	manager.On(action.EmulatorBoost, event.Press, func() { boosting = true })
	manager.On(action.EmulatorBoost, event.Release, func() { boosting = false })

	quit := false
	manager.On(action.EmulatorQuit, event.Press, func() { quit = true })

	for !quit {
		framesThisTick := 1
		if boosting {
			framesThisTick = 10
		}

		for i := 0; i < framesThisTick && !quit; i++ {
			emu.RunUntilFrame()
		}

		events, err := be.Update(emu.GetCurrentFrame())
		if err != nil {
			return err
		}

		for _, evt := range events {
			manager.Trigger(evt.Action, evt.Type)
		}

		limiter.WaitForNextFrame()
	}

	return nil
}
