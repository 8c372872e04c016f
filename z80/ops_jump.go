package z80

func init() {
	registerNOPHaltDIEI()
	registerAbsoluteJumps()
	registerRelativeJumps()
	registerCalls()
	registerReturns()
	registerRST()
}

func registerNOPHaltDIEI() {
	opcodeTable[0x00] = func(c *CPU, b Bus) {}
	opcodeTable[0x76] = func(c *CPU, b Bus) { c.halted = true }
	opcodeTable[0xF3] = func(c *CPU, b Bus) { c.di() }
	opcodeTable[0xFB] = func(c *CPU, b Bus) { c.ei() }
}

// condition evaluates one of the 8 three-bit condition codes used by
// JP cc/CALL cc/RET cc: NZ Z NC C PO PE P M.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return c.reg.F&FlagZ == 0
	case 1:
		return c.reg.F&FlagZ != 0
	case 2:
		return c.reg.F&FlagCY == 0
	case 3:
		return c.reg.F&FlagCY != 0
	case 4:
		return c.reg.F&FlagPV == 0
	case 5:
		return c.reg.F&FlagPV != 0
	case 6:
		return c.reg.F&FlagS == 0
	case 7:
		return c.reg.F&FlagS != 0
	}
	return false
}

func registerAbsoluteJumps() {
	opcodeTable[0xC3] = func(c *CPU, b Bus) {
		c.fetch16(func(c *CPU, b Bus, addr uint16) {
			c.reg.PC = addr
			c.reg.SetWZ(addr)
		})
	}
	opcodeTable[0xE9] = func(c *CPU, b Bus) { c.reg.PC = c.reg.HL() }
	for cc := uint8(0); cc < 8; cc++ {
		cc := cc
		opcodeTable[0xC2|cc<<3] = func(c *CPU, b Bus) {
			c.fetch16(func(c *CPU, b Bus, addr uint16) {
				c.reg.SetWZ(addr)
				if c.condition(cc) {
					c.reg.PC = addr
				}
			})
		}
	}
}

func registerRelativeJumps() {
	opcodeTable[0x18] = func(c *CPU, b Bus) {
		c.memRead(c.reg.PC, func(c *CPU, b Bus, e uint8) {
			c.reg.PC++
			c.internalCycles(5)
			c.reg.PC = uint16(int32(c.reg.PC) + int32(int8(e)))
			c.reg.SetWZ(c.reg.PC)
		})
	}
	condMap := []uint8{0, 1, 2, 3} // NZ Z NC C
	for i, cc := range condMap {
		cc := cc
		opcodeTable[0x20|uint8(i)<<3] = func(c *CPU, b Bus) {
			c.memRead(c.reg.PC, func(c *CPU, b Bus, e uint8) {
				c.reg.PC++
				if !c.condition(cc) {
					return
				}
				c.internalCycles(5)
				c.push(func(c *CPU, b Bus) {
					c.reg.PC = uint16(int32(c.reg.PC) + int32(int8(e)))
					c.reg.SetWZ(c.reg.PC)
				})
			})
		}
	}
	opcodeTable[0x10] = func(c *CPU, b Bus) { // DJNZ e
		c.internalCycles(1)
		c.memRead(c.reg.PC, func(c *CPU, b Bus, e uint8) {
			c.reg.PC++
			c.reg.B--
			if c.reg.B == 0 {
				return
			}
			c.internalCycles(5)
			c.push(func(c *CPU, b Bus) {
				c.reg.PC = uint16(int32(c.reg.PC) + int32(int8(e)))
				c.reg.SetWZ(c.reg.PC)
			})
		})
	}
}

func registerCalls() {
	opcodeTable[0xCD] = func(c *CPU, b Bus) {
		c.fetch16(func(c *CPU, b Bus, addr uint16) {
			c.reg.SetWZ(addr)
			c.internalCycles(1)
			ret := c.reg.PC
			c.memWrite(c.reg.SP-1, uint8(ret>>8))
			c.memWrite(c.reg.SP-2, uint8(ret))
			c.reg.SP -= 2
			c.reg.PC = addr
		})
	}
	for cc := uint8(0); cc < 8; cc++ {
		cc := cc
		opcodeTable[0xC4|cc<<3] = func(c *CPU, b Bus) {
			c.fetch16(func(c *CPU, b Bus, addr uint16) {
				c.reg.SetWZ(addr)
				if !c.condition(cc) {
					return
				}
				c.internalCycles(1)
				ret := c.reg.PC
				c.memWrite(c.reg.SP-1, uint8(ret>>8))
				c.memWrite(c.reg.SP-2, uint8(ret))
				c.reg.SP -= 2
				c.reg.PC = addr
			})
		}
	}
}

func registerReturns() {
	opcodeTable[0xC9] = func(c *CPU, b Bus) { c.doReturn(b) }
	for cc := uint8(0); cc < 8; cc++ {
		cc := cc
		opcodeTable[0xC0|cc<<3] = func(c *CPU, b Bus) {
			c.internalCycles(1)
			if c.condition(cc) {
				c.doReturn(b)
			}
		}
	}
}

func (c *CPU) doReturn(b Bus) {
	c.memRead(c.reg.SP, func(c *CPU, b Bus, lo uint8) {
		c.memRead(c.reg.SP+1, func(c *CPU, b Bus, hi uint8) {
			c.reg.SP += 2
			c.reg.PC = uint16(hi)<<8 | uint16(lo)
			c.reg.SetWZ(c.reg.PC)
		})
	})
}

func registerRST() {
	for n := uint16(0); n < 8; n++ {
		n := n
		opcodeTable[0xC7|n<<3] = func(c *CPU, b Bus) {
			c.internalCycles(1)
			ret := c.reg.PC
			c.memWrite(c.reg.SP-1, uint8(ret>>8))
			c.memWrite(c.reg.SP-2, uint8(ret))
			c.push(func(c *CPU, b Bus) {
				c.reg.SP -= 2
				c.reg.PC = n * 8
				c.reg.SetWZ(c.reg.PC)
			})
		}
	}
}
