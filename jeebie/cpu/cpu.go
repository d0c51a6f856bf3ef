package cpu

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/jeebie/jeebie/addr"
)

// Bus is the minimal memory interface the CPU needs: a single read and
// write entry point, per spec.md §4.2.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// CPU emulates the Sharp LR35902 core: registers, the 256+256 opcode
// dispatch, flags, interrupt dispatch, and HALT.
type CPU struct {
	a, b, c, d, e, h, l, f uint8
	sp, pc                 uint16

	bus Bus

	interruptsEnabled bool
	eiPending         bool
	halted            bool
	haltBug           bool

	currentOpcode uint16
	cycles        uint64
}

// New creates a CPU wired to the given bus, with registers at their
// post-boot-ROM values (spec.md §3).
func New(bus Bus) *CPU {
	cpu := &CPU{bus: bus}
	cpu.a = 0x01
	cpu.f = 0xB0
	cpu.setBC(0x0013)
	cpu.setDE(0x00D8)
	cpu.setHL(0x014D)
	cpu.sp = 0xFFFE
	cpu.pc = 0x0100
	return cpu
}

// Tick executes exactly one instruction (or services one interrupt, or
// idles one NOP-equivalent step while halted) and returns the number of
// T-cycles it took.
func (c *CPU) Tick() int {
	pending, serviced := c.handleInterrupts()
	if pending && c.halted {
		c.halted = false
	}
	if serviced {
		return 20
	}

	if c.halted {
		if c.eiPending {
			c.eiPending = false
			c.interruptsEnabled = true
		}
		return 4
	}

	opcode := Decode(c)
	cycles := opcode(c)

	if c.eiPending {
		c.eiPending = false
		c.interruptsEnabled = true
	}

	return cycles
}

// handleInterrupts checks IF & IE in priority order (bit 0 = VBlank highest).
// pending reports whether any masked interrupt source is pending regardless
// of IME (used to wake HALT even with interrupts disabled). serviced reports
// whether one was actually dispatched this tick (IME was set): PC pushed,
// jumped to the vector, IME and the serviced IF bit cleared. A pending,
// unserviced interrupt (IME=0) must never block normal instruction
// execution outside of HALT.
func (c *CPU) handleInterrupts() (pending, serviced bool) {
	ifReg := c.bus.Read(addr.IF)
	ieReg := c.bus.Read(addr.IE)
	mask := ifReg & ieReg & 0x1F

	if mask == 0 {
		return false, false
	}

	if !c.interruptsEnabled {
		return true, false
	}

	for bitIndex := uint8(0); bitIndex < 5; bitIndex++ {
		if mask&(1<<bitIndex) == 0 {
			continue
		}

		c.interruptsEnabled = false
		c.bus.Write(addr.IF, ifReg&^(1<<bitIndex))
		c.pushStack(c.pc)
		c.pc = addr.InterruptVector(bitIndex)
		c.cycles += 20
		return true, true
	}

	return true, false
}

// GetPC returns the current program counter, for diagnostics and tooling.
func (c *CPU) GetPC() uint16 {
	return c.pc
}

// DumpRegisters formats the full register file for diagnostics, triggered by
// the EmulatorDumpRegisters action.
func (c *CPU) DumpRegisters() string {
	return fmt.Sprintf(
		"AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X IME=%v halted=%v",
		c.getAF(), c.getBC(), c.getDE(), c.getHL(), c.sp, c.pc, c.interruptsEnabled, c.halted,
	)
}

// reportIllegalOpcode logs a diagnostic and terminates, per spec.md §7: no
// panic escapes to the caller of Tick.
func (c *CPU) reportIllegalOpcode() int {
	slog.Error("illegal opcode encountered", "opcode", fmt.Sprintf("0x%02X", c.currentOpcode), "pc", fmt.Sprintf("0x%04X", c.pc))
	os.Exit(1)
	return 0
}
