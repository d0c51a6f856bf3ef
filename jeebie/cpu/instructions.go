package cpu

import "github.com/valerio/jeebie/jeebie/bit"

// pushStack writes value onto the stack: high byte then low byte, each at
// a pre-decremented SP.
func (c *CPU) pushStack(value uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(value))
	c.sp--
	c.bus.Write(c.sp, bit.Low(value))
}

// popStack reads a value off the stack: low byte then high byte, each at a
// post-incremented SP.
func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}

func (c *CPU) inc(reg *uint8) {
	old := *reg
	*reg = old + 1
	c.clearFlag(subFlag)
	c.setFlagTo(zeroFlag, *reg == 0)
	c.setFlagTo(halfCarryFlag, old&0x0F == 0x0F)
}

func (c *CPU) dec(reg *uint8) {
	old := *reg
	*reg = old - 1
	c.setFlag(subFlag)
	c.setFlagTo(zeroFlag, *reg == 0)
	c.setFlagTo(halfCarryFlag, old&0x0F == 0)
}

// rlc rotates reg left circularly: bit 7 goes to both carry and bit 0.
// On register A (the RLCA opcode) the zero flag is always cleared; the
// CB-prefixed form on any other register sets it normally.
func (c *CPU) rlc(reg *uint8) {
	old := *reg
	carryOut := old&0x80 != 0
	result := old << 1
	if carryOut {
		result |= 1
	}
	*reg = result
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, carryOut)
	c.setFlagTo(zeroFlag, reg != &c.a && result == 0)
}

// rl rotates reg left through the carry flag. Same A-suppression rule as rlc.
func (c *CPU) rl(reg *uint8) {
	old := *reg
	carryIn := c.flagSet(carryFlag)
	carryOut := old&0x80 != 0
	result := old << 1
	if carryIn {
		result |= 1
	}
	*reg = result
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, carryOut)
	c.setFlagTo(zeroFlag, reg != &c.a && result == 0)
}

// rrc rotates reg right circularly: bit 0 goes to both carry and bit 7.
func (c *CPU) rrc(reg *uint8) {
	old := *reg
	carryOut := old&0x01 != 0
	result := old >> 1
	if carryOut {
		result |= 0x80
	}
	*reg = result
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, carryOut)
	c.setFlagTo(zeroFlag, reg != &c.a && result == 0)
}

// rr rotates reg right through the carry flag.
func (c *CPU) rr(reg *uint8) {
	old := *reg
	carryIn := c.flagSet(carryFlag)
	carryOut := old&0x01 != 0
	result := old >> 1
	if carryIn {
		result |= 0x80
	}
	*reg = result
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, carryOut)
	c.setFlagTo(zeroFlag, reg != &c.a && result == 0)
}

func (c *CPU) sla(reg *uint8) {
	old := *reg
	carryOut := old&0x80 != 0
	result := old << 1
	*reg = result
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, carryOut)
	c.setFlagTo(zeroFlag, result == 0)
}

// sra shifts reg right, keeping bit 7 (arithmetic shift).
func (c *CPU) sra(reg *uint8) {
	old := *reg
	carryOut := old&0x01 != 0
	result := (old >> 1) | (old & 0x80)
	*reg = result
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, carryOut)
	c.setFlagTo(zeroFlag, result == 0)
}

func (c *CPU) srl(reg *uint8) {
	old := *reg
	carryOut := old&0x01 != 0
	result := old >> 1
	*reg = result
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, carryOut)
	c.setFlagTo(zeroFlag, result == 0)
}

func (c *CPU) swap(reg *uint8) {
	old := *reg
	result := (old << 4) | (old >> 4)
	*reg = result
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.clearFlag(carryFlag)
	c.setFlagTo(zeroFlag, result == 0)
}

func (c *CPU) addToA(arg uint8) {
	a := c.a
	sum := uint16(a) + uint16(arg)
	result := uint8(sum)
	c.a = result
	c.clearFlag(subFlag)
	c.setFlagTo(zeroFlag, result == 0)
	c.setFlagTo(halfCarryFlag, (a&0x0F)+(arg&0x0F) > 0x0F)
	c.setFlagTo(carryFlag, sum > 0xFF)
}

func (c *CPU) adc(arg uint8) {
	a := c.a
	var carryIn uint8
	if c.flagSet(carryFlag) {
		carryIn = 1
	}
	sum := uint16(a) + uint16(arg) + uint16(carryIn)
	result := uint8(sum)
	c.a = result
	c.clearFlag(subFlag)
	c.setFlagTo(zeroFlag, result == 0)
	c.setFlagTo(halfCarryFlag, (a&0x0F)+(arg&0x0F)+carryIn > 0x0F)
	c.setFlagTo(carryFlag, sum > 0xFF)
}

func (c *CPU) addToHL(arg uint16) {
	hl := c.getHL()
	sum := uint32(hl) + uint32(arg)
	c.setHL(uint16(sum))
	c.clearFlag(subFlag)
	c.setFlagTo(halfCarryFlag, (hl&0x0FFF)+(arg&0x0FFF) > 0x0FFF)
	c.setFlagTo(carryFlag, sum > 0xFFFF)
}

// addToSP implements the ADD SP,e8 / LD HL,SP+e8 flag rule: Z and N always
// cleared, H/C computed on the low byte as if it were an 8-bit add.
func (c *CPU) addToSP(e int8) uint16 {
	sp := c.sp
	offset := uint16(int32(e))
	result := sp + offset
	c.clearFlag(zeroFlag)
	c.clearFlag(subFlag)
	c.setFlagTo(halfCarryFlag, (sp&0x0F)+(offset&0x0F) > 0x0F)
	c.setFlagTo(carryFlag, (sp&0xFF)+(offset&0xFF) > 0xFF)
	return result
}

func (c *CPU) sub(arg uint8) {
	a := c.a
	result := a - arg
	c.a = result
	c.setFlag(subFlag)
	c.setFlagTo(zeroFlag, result == 0)
	c.setFlagTo(halfCarryFlag, (a&0x0F) < (arg&0x0F))
	c.setFlagTo(carryFlag, a < arg)
}

func (c *CPU) sbc(arg uint8) {
	a := c.a
	var carryIn uint8
	if c.flagSet(carryFlag) {
		carryIn = 1
	}
	result := a - arg - carryIn
	c.a = result
	c.setFlag(subFlag)
	c.setFlagTo(zeroFlag, result == 0)
	c.setFlagTo(halfCarryFlag, (a&0x0F) < (arg&0x0F)+carryIn)
	c.setFlagTo(carryFlag, uint16(a) < uint16(arg)+uint16(carryIn))
}

func (c *CPU) and(arg uint8) {
	c.a &= arg
	c.clearFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.clearFlag(carryFlag)
	c.setFlagTo(zeroFlag, c.a == 0)
}

func (c *CPU) or(arg uint8) {
	c.a |= arg
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.clearFlag(carryFlag)
	c.setFlagTo(zeroFlag, c.a == 0)
}

func (c *CPU) xor(arg uint8) {
	c.a ^= arg
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.clearFlag(carryFlag)
	c.setFlagTo(zeroFlag, c.a == 0)
}

func (c *CPU) cp(arg uint8) {
	a := c.a
	result := a - arg
	c.setFlag(subFlag)
	c.setFlagTo(zeroFlag, result == 0)
	c.setFlagTo(halfCarryFlag, (a&0x0F) < (arg&0x0F))
	c.setFlagTo(carryFlag, a < arg)
}

// daa adjusts A into packed BCD after an add/sub, per spec.md §4.4.
func (c *CPU) daa() {
	a := c.a
	var correction uint8
	var carryOut bool

	if !c.flagSet(subFlag) {
		if c.flagSet(halfCarryFlag) || a&0x0F > 9 {
			correction |= 0x06
		}
		if c.flagSet(carryFlag) || a > 0x99 {
			correction |= 0x60
			carryOut = true
		}
		a += correction
	} else {
		if c.flagSet(halfCarryFlag) {
			correction |= 0x06
		}
		if c.flagSet(carryFlag) {
			correction |= 0x60
		}
		a -= correction
		carryOut = c.flagSet(carryFlag)
	}

	c.a = a
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(zeroFlag, a == 0)
	c.setFlagTo(carryFlag, carryOut)
}

func (c *CPU) cpl() {
	c.a = ^c.a
	c.setFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

func (c *CPU) scf() {
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlag(carryFlag)
}

func (c *CPU) ccf() {
	c.clearFlag(subFlag)
	c.clearFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, !c.flagSet(carryFlag))
}

func (c *CPU) bit(idx uint8, arg uint8) {
	c.setFlagTo(zeroFlag, arg&(1<<idx) == 0)
	c.clearFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

func (c *CPU) set(idx uint8, reg *uint8) {
	*reg |= 1 << idx
}

func (c *CPU) res(idx uint8, reg *uint8) {
	*reg &^= 1 << idx
}

// jr reads the signed displacement at PC, consumes it, and jumps relative
// to the instruction following it.
func (c *CPU) jr() {
	offset := int8(c.bus.Read(c.pc))
	c.pc = uint16(int32(c.pc) + 1 + int32(offset))
}
