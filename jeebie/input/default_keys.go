package input

import "github.com/valerio/jeebie/jeebie/input/action"

// DefaultKeyMap provides the default keyboard mapping, shared by every
// backend: W/S/A/D for the d-pad, K/J for A/B, L/; for Select/Start, Space
// (held) for 10x speed, Esc to dump CPU registers, Q (or window-close, which
// each backend wires separately) to quit.
var DefaultKeyMap = map[string]action.Action{
	"w": action.GBDPadUp,
	"s": action.GBDPadDown,
	"a": action.GBDPadLeft,
	"d": action.GBDPadRight,

	"k": action.GBButtonA,
	"j": action.GBButtonB,

	"l": action.GBButtonSelect,
	";": action.GBButtonStart,

	"Space":  action.EmulatorBoost,
	"Escape": action.EmulatorDumpRegisters,
	"q":      action.EmulatorQuit,
}

// GetDefaultMapping returns the default action for a key, if one exists.
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
