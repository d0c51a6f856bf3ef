package action

// Action represents an input action recognized by the emulator, decoupled
// from any particular keyboard or backend.
type Action int

const (
	GBButtonA Action = iota
	GBButtonB
	GBButtonStart
	GBButtonSelect
	GBDPadUp
	GBDPadDown
	GBDPadLeft
	GBDPadRight

	EmulatorBoost // held: run at 10x speed
	EmulatorDumpRegisters
	EmulatorQuit
)

// Category groups actions for routing to the right subsystem.
type Category int

const (
	CategoryGameInput Category = iota
	CategoryEmulator
)

// Info carries metadata about an action: whether it should debounce (fire
// once per press rather than every frame it's held) and a human description
// used for logging.
type Info struct {
	Action      Action
	Category    Category
	Debounce    bool
	Description string
}

var infoMap = map[Action]Info{
	GBButtonA:      {Action: GBButtonA, Category: CategoryGameInput, Description: "A button"},
	GBButtonB:      {Action: GBButtonB, Category: CategoryGameInput, Description: "B button"},
	GBButtonStart:  {Action: GBButtonStart, Category: CategoryGameInput, Description: "Start button"},
	GBButtonSelect: {Action: GBButtonSelect, Category: CategoryGameInput, Description: "Select button"},
	GBDPadUp:       {Action: GBDPadUp, Category: CategoryGameInput, Description: "D-Pad Up"},
	GBDPadDown:     {Action: GBDPadDown, Category: CategoryGameInput, Description: "D-Pad Down"},
	GBDPadLeft:     {Action: GBDPadLeft, Category: CategoryGameInput, Description: "D-Pad Left"},
	GBDPadRight:    {Action: GBDPadRight, Category: CategoryGameInput, Description: "D-Pad Right"},

	EmulatorBoost:         {Action: EmulatorBoost, Category: CategoryEmulator, Description: "10x speed while held"},
	EmulatorDumpRegisters: {Action: EmulatorDumpRegisters, Category: CategoryEmulator, Debounce: true, Description: "Dump CPU registers to stderr"},
	EmulatorQuit:          {Action: EmulatorQuit, Category: CategoryEmulator, Debounce: true, Description: "Quit"},
}

// GetInfo returns metadata for an action, or a generic default for an
// unregistered one.
func GetInfo(a Action) Info {
	if info, ok := infoMap[a]; ok {
		return info
	}
	return Info{Action: a, Category: CategoryEmulator, Description: "Unknown action"}
}
