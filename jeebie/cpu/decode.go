package cpu

import "github.com/valerio/jeebie/jeebie/bit"

// Opcode is a decoded, directly-executable instruction: running it performs
// its full effect (including consuming any immediate operands from the
// bus) and returns the number of T-cycles it took.
type Opcode func(*CPU) int

// Decode peeks the opcode byte at PC (and, for the 0xCB prefix, the byte
// that follows) without advancing PC, records it in currentOpcode, and
// returns the Opcode to run. Execution is responsible for advancing PC
// past the opcode byte(s) and any operands.
func Decode(c *CPU) Opcode {
	first := c.bus.Read(c.pc)

	if first == 0xCB {
		second := c.bus.Read(c.pc + 1)
		c.currentOpcode = 0xCB00 | uint16(second)
		return decodeCB(second)
	}

	c.currentOpcode = uint16(first)
	return decodeBase(first)
}

func isHLIndex(idx uint8) bool { return idx == 6 }

// fetch8 reads the immediate byte following the opcode and advances PC
// past the whole instruction (opcode + 1 operand byte).
func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.pc + 1)
	c.pc += 2
	return v
}

// fetch16 reads the immediate word following the opcode (little-endian)
// and advances PC past the whole instruction (opcode + 2 operand bytes).
func (c *CPU) fetch16() uint16 {
	low := c.bus.Read(c.pc + 1)
	high := c.bus.Read(c.pc + 2)
	c.pc += 3
	return bit.Combine(high, low)
}

func decodeBase(op uint8) Opcode {
	switch op {
	case 0x00:
		return opcode0x00
	case 0x08:
		return opLdAddrNNSp
	case 0x10:
		return opStop
	case 0x18:
		return opJr
	case 0x76:
		return opcode0x76
	case 0xC3:
		return opJpNN
	case 0xC9:
		return opRet
	case 0xCD:
		return opCallNN
	case 0xD9:
		return opcode0xD9
	case 0xE0:
		return opLdhNA
	case 0xE2:
		return opLdAddrCA
	case 0xE8:
		return opAddSpE8
	case 0xE9:
		return opJpHL
	case 0xEA:
		return opLdAddrNNA
	case 0xF0:
		return opLdhAN
	case 0xF2:
		return opLdAAddrC
	case 0xF3:
		return opcode0xF3
	case 0xF8:
		return opLdHLSpE8
	case 0xF9:
		return opLdSpHL
	case 0xFA:
		return opLdAAddrNN
	case 0xFB:
		return opcode0xFB
	case 0x07:
		return func(c *CPU) int { c.rlc(&c.a); return 4 }
	case 0x0F:
		return func(c *CPU) int { c.rrc(&c.a); return 4 }
	case 0x17:
		return func(c *CPU) int { c.rl(&c.a); return 4 }
	case 0x1F:
		return func(c *CPU) int { c.rr(&c.a); return 4 }
	case 0x27:
		return func(c *CPU) int { c.daa(); return 4 }
	case 0x2F:
		return func(c *CPU) int { c.cpl(); return 4 }
	case 0x37:
		return func(c *CPU) int { c.scf(); return 4 }
	case 0x3F:
		return func(c *CPU) int { c.ccf(); return 4 }
	case 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD:
		return (*CPU).reportIllegalOpcode
	}

	switch {
	// LD r16,n16: 0x01,0x11,0x21,0x31
	case op&0xCF == 0x01:
		rp := (op >> 4) & 0x03
		return func(c *CPU) int {
			c.setR16(rp, c.fetch16())
			return 12
		}
	// LD (r16mem),A: 0x02,0x12,0x22,0x32
	case op&0xCF == 0x02:
		rp := (op >> 4) & 0x03
		return func(c *CPU) int {
			c.bus.Write(c.r16memAddr(rp), c.a)
			c.pc++
			return 8
		}
	// LD A,(r16mem): 0x0A,0x1A,0x2A,0x3A
	case op&0xCF == 0x0A:
		rp := (op >> 4) & 0x03
		return func(c *CPU) int {
			c.a = c.bus.Read(c.r16memAddr(rp))
			c.pc++
			return 8
		}
	// INC r16: 0x03,0x13,0x23,0x33
	case op&0xCF == 0x03:
		rp := (op >> 4) & 0x03
		return func(c *CPU) int {
			c.setR16(rp, c.getR16(rp)+1)
			c.pc++
			return 8
		}
	// DEC r16: 0x0B,0x1B,0x2B,0x3B
	case op&0xCF == 0x0B:
		rp := (op >> 4) & 0x03
		return func(c *CPU) int {
			c.setR16(rp, c.getR16(rp)-1)
			c.pc++
			return 8
		}
	// ADD HL,r16: 0x09,0x19,0x29,0x39
	case op&0xCF == 0x09:
		rp := (op >> 4) & 0x03
		return func(c *CPU) int {
			c.addToHL(c.getR16(rp))
			c.pc++
			return 8
		}
	// JR cond,e8: 0x20,0x28,0x30,0x38
	case op&0xE7 == 0x20:
		cc := (op >> 3) & 0x03
		return func(c *CPU) int {
			if c.condTrue(cc) {
				c.pc++
				c.jr()
				return 12
			}
			c.pc += 2
			return 8
		}
	// INC r8: 0x04 | r<<3
	case op&0xC7 == 0x04:
		r := (op >> 3) & 0x07
		return func(c *CPU) int {
			v := c.getR8(r)
			c.inc(&v)
			c.setR8(r, v)
			c.pc++
			if isHLIndex(r) {
				return 12
			}
			return 4
		}
	// DEC r8: 0x05 | r<<3
	case op&0xC7 == 0x05:
		r := (op >> 3) & 0x07
		return func(c *CPU) int {
			v := c.getR8(r)
			c.dec(&v)
			c.setR8(r, v)
			c.pc++
			if isHLIndex(r) {
				return 12
			}
			return 4
		}
	// LD r8,n8: 0x06 | r<<3
	case op&0xC7 == 0x06:
		r := (op >> 3) & 0x07
		return func(c *CPU) int {
			c.setR8(r, c.fetch8())
			if isHLIndex(r) {
				return 12
			}
			return 8
		}
	// PUSH r16stk: 0xC5,D5,E5,F5
	case op&0xCF == 0xC5:
		rp := (op >> 4) & 0x03
		return func(c *CPU) int {
			c.pushStack(c.getR16stk(rp))
			c.pc++
			return 16
		}
	// POP r16stk: 0xC1,D1,E1,F1
	case op&0xCF == 0xC1:
		rp := (op >> 4) & 0x03
		return func(c *CPU) int {
			c.setR16stk(rp, c.popStack())
			c.pc++
			return 12
		}
	// JP cond,nn: 0xC2,CA,D2,DA
	case op&0xE7 == 0xC2:
		cc := (op >> 3) & 0x03
		return func(c *CPU) int {
			target := c.fetch16()
			if c.condTrue(cc) {
				c.pc = target
				return 16
			}
			return 12
		}
	// CALL cond,nn: 0xC4,CC,D4,DC
	case op&0xE7 == 0xC4:
		cc := (op >> 3) & 0x03
		return func(c *CPU) int {
			target := c.fetch16()
			if c.condTrue(cc) {
				c.pushStack(c.pc)
				c.pc = target
				return 24
			}
			return 12
		}
	// RET cond: 0xC0,C8,D0,D8
	case op&0xE7 == 0xC0:
		cc := (op >> 3) & 0x03
		return func(c *CPU) int {
			c.pc++
			if c.condTrue(cc) {
				c.pc = c.popStack()
				return 20
			}
			return 8
		}
	// RST n: 0xC7 | n<<3
	case op&0xC7 == 0xC7:
		n := (op >> 3) & 0x07
		return func(c *CPU) int {
			c.pushStack(c.pc + 1)
			c.pc = uint16(n) * 8
			return 16
		}
	// ALU A,n8: 0xC6 | op<<3
	case op&0xC7 == 0xC6:
		aluOp := (op >> 3) & 0x07
		return func(c *CPU) int {
			c.execALU(aluOp, c.fetch8())
			return 8
		}
	// ALU A,r8: 0x80-0xBF
	case op >= 0x80 && op <= 0xBF:
		aluOp := (op >> 3) & 0x07
		r := op & 0x07
		return func(c *CPU) int {
			c.execALU(aluOp, c.getR8(r))
			c.pc++
			if isHLIndex(r) {
				return 8
			}
			return 4
		}
	// LD r8,r8' (including HALT, handled above as a special case): 0x40-0x7F
	case op >= 0x40 && op <= 0x7F:
		dst := (op >> 3) & 0x07
		src := op & 0x07
		return func(c *CPU) int {
			c.setR8(dst, c.getR8(src))
			c.pc++
			if isHLIndex(dst) || isHLIndex(src) {
				return 8
			}
			return 4
		}
	}

	return (*CPU).reportIllegalOpcode
}

// execALU dispatches the 3-bit ALU selector shared by the ALU A,r8 and
// ALU A,n8 families: ADD, ADC, SUB, SBC, AND, XOR, OR, CP.
func (c *CPU) execALU(selector uint8, arg uint8) {
	switch selector {
	case 0:
		c.addToA(arg)
	case 1:
		c.adc(arg)
	case 2:
		c.sub(arg)
	case 3:
		c.sbc(arg)
	case 4:
		c.and(arg)
	case 5:
		c.xor(arg)
	case 6:
		c.or(arg)
	case 7:
		c.cp(arg)
	}
}

func decodeCB(op uint8) Opcode {
	r := op & 0x07
	switch {
	case op < 0x40:
		family := (op >> 3) & 0x07
		return func(c *CPU) int {
			v := c.getR8(r)
			switch family {
			case 0:
				c.rlc(&v)
			case 1:
				c.rrc(&v)
			case 2:
				c.rl(&v)
			case 3:
				c.rr(&v)
			case 4:
				c.sla(&v)
			case 5:
				c.sra(&v)
			case 6:
				c.swap(&v)
			case 7:
				c.srl(&v)
			}
			c.setR8(r, v)
			c.pc += 2
			if isHLIndex(r) {
				return 16
			}
			return 8
		}
	case op < 0x80:
		b := (op >> 3) & 0x07
		return func(c *CPU) int {
			c.bit(b, c.getR8(r))
			c.pc += 2
			if isHLIndex(r) {
				return 12
			}
			return 8
		}
	case op < 0xC0:
		b := (op >> 3) & 0x07
		return func(c *CPU) int {
			v := c.getR8(r)
			c.res(b, &v)
			c.setR8(r, v)
			c.pc += 2
			if isHLIndex(r) {
				return 16
			}
			return 8
		}
	default:
		b := (op >> 3) & 0x07
		return func(c *CPU) int {
			v := c.getR8(r)
			c.set(b, &v)
			c.setR8(r, v)
			c.pc += 2
			if isHLIndex(r) {
				return 16
			}
			return 8
		}
	}
}

// --- Irregular opcodes that don't fit a bit-field family ---

func opcode0x00(c *CPU) int {
	c.pc++
	return 4
}

func opcode0x76(c *CPU) int {
	c.halted = true
	c.pc++
	return 4
}

// opStop is a no-op by decision (SPEC_FULL.md §10): stopping the CPU and
// LCD is out of scope, so STOP behaves like an extra-long NOP.
func opStop(c *CPU) int {
	c.pc += 2
	return 4
}

func opcode0xF3(c *CPU) int {
	c.interruptsEnabled = false
	c.eiPending = false
	c.pc++
	return 4
}

func opcode0xFB(c *CPU) int {
	c.eiPending = true
	c.pc++
	return 4
}

func opcode0xD9(c *CPU) int {
	c.pc = c.popStack()
	c.interruptsEnabled = true
	c.eiPending = false
	return 16
}

func opJr(c *CPU) int {
	c.pc++
	c.jr()
	return 12
}

func opJpNN(c *CPU) int {
	c.pc = c.fetch16()
	return 16
}

func opJpHL(c *CPU) int {
	c.pc = c.getHL()
	return 4
}

func opCallNN(c *CPU) int {
	target := c.fetch16()
	c.pushStack(c.pc)
	c.pc = target
	return 24
}

func opRet(c *CPU) int {
	c.pc = c.popStack()
	return 16
}

func opLdAddrNNSp(c *CPU) int {
	addr := c.fetch16()
	c.bus.Write(addr, bit.Low(c.sp))
	c.bus.Write(addr+1, bit.High(c.sp))
	return 20
}

func opLdhNA(c *CPU) int {
	addr := 0xFF00 + uint16(c.fetch8())
	c.bus.Write(addr, c.a)
	return 12
}

func opLdhAN(c *CPU) int {
	addr := 0xFF00 + uint16(c.fetch8())
	c.a = c.bus.Read(addr)
	return 12
}

func opLdAddrCA(c *CPU) int {
	c.bus.Write(0xFF00+uint16(c.c), c.a)
	c.pc++
	return 8
}

func opLdAAddrC(c *CPU) int {
	c.a = c.bus.Read(0xFF00 + uint16(c.c))
	c.pc++
	return 8
}

func opLdAddrNNA(c *CPU) int {
	addr := c.fetch16()
	c.bus.Write(addr, c.a)
	return 16
}

func opLdAAddrNN(c *CPU) int {
	addr := c.fetch16()
	c.a = c.bus.Read(addr)
	return 16
}

func opAddSpE8(c *CPU) int {
	e := int8(c.fetch8())
	c.sp = c.addToSP(e)
	return 16
}

func opLdHLSpE8(c *CPU) int {
	e := int8(c.fetch8())
	c.setHL(c.addToSP(e))
	return 12
}

func opLdSpHL(c *CPU) int {
	c.sp = c.getHL()
	c.pc++
	return 8
}
