package cpu

import "github.com/valerio/jeebie/jeebie/bit"

// getAF, getBC, getDE, getHL combine the 8-bit register pairs into their
// 16-bit view. F's low nibble is always zero.
func (c *CPU) getAF() uint16 { return bit.Combine(c.a, c.f) }
func (c *CPU) getBC() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) getDE() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) getHL() uint16 { return bit.Combine(c.h, c.l) }

func (c *CPU) setAF(v uint16) {
	c.a = bit.High(v)
	c.f = bit.Low(v) & 0xF0
}

func (c *CPU) setBC(v uint16) {
	c.b = bit.High(v)
	c.c = bit.Low(v)
}

func (c *CPU) setDE(v uint16) {
	c.d = bit.High(v)
	c.e = bit.Low(v)
}

func (c *CPU) setHL(v uint16) {
	c.h = bit.High(v)
	c.l = bit.Low(v)
}

// getR8/setR8 implement the 3-bit r8 selector: B, C, D, E, H, L, (HL), A.
// Index 6 reads/writes through the bus at HL rather than a register.
func (c *CPU) getR8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case 6:
		return c.bus.Read(c.getHL())
	case 7:
		return c.a
	}
	panic("invalid r8 index")
}

func (c *CPU) setR8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.b = v
	case 1:
		c.c = v
	case 2:
		c.d = v
	case 3:
		c.e = v
	case 4:
		c.h = v
	case 5:
		c.l = v
	case 6:
		c.bus.Write(c.getHL(), v)
	case 7:
		c.a = v
	default:
		panic("invalid r8 index")
	}
}

// getR16/setR16 implement the 2-bit r16 selector: BC, DE, HL, SP.
func (c *CPU) getR16(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		return c.getHL()
	case 3:
		return c.sp
	}
	panic("invalid r16 index")
}

func (c *CPU) setR16(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	case 3:
		c.sp = v
	default:
		panic("invalid r16 index")
	}
}

// getR16stk/setR16stk implement the 2-bit r16stk selector used by PUSH/POP:
// BC, DE, HL, AF.
func (c *CPU) getR16stk(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		return c.getHL()
	case 3:
		return c.getAF()
	}
	panic("invalid r16stk index")
}

func (c *CPU) setR16stk(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	case 3:
		c.setAF(v)
	default:
		panic("invalid r16stk index")
	}
}

// r16memAddr implements the 2-bit r16mem selector used by LD (r16mem),A /
// LD A,(r16mem): BC, DE, HL+ (post-increment), HL- (post-decrement). The
// increment/decrement happens as a side effect of computing the address.
func (c *CPU) r16memAddr(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		addr := c.getHL()
		c.setHL(addr + 1)
		return addr
	case 3:
		addr := c.getHL()
		c.setHL(addr - 1)
		return addr
	}
	panic("invalid r16mem index")
}

// condTrue implements the 2-bit cond selector: NZ, Z, NC, C.
func (c *CPU) condTrue(idx uint8) bool {
	switch idx {
	case 0:
		return !c.flagSet(zeroFlag)
	case 1:
		return c.flagSet(zeroFlag)
	case 2:
		return !c.flagSet(carryFlag)
	case 3:
		return c.flagSet(carryFlag)
	}
	panic("invalid cond index")
}
