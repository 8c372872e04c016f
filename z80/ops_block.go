package z80

func init() {
	registerBlockTransfer()
	registerBlockCompare()
	registerBlockIO()
}

// --- LDI/LDIR/LDD/LDDR ---

func registerBlockTransfer() {
	opcodeTableED[0xA0] = makeLD(1, false)
	opcodeTableED[0xB0] = makeLD(1, true)
	opcodeTableED[0xA8] = makeLD(-1, false)
	opcodeTableED[0xB8] = makeLD(-1, true)
}

func makeLD(step int, repeat bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.memRead(c.reg.HL(), func(c *CPU, b Bus, v uint8) {
			c.memWrite(c.reg.DE(), v)
			c.internalCycles(1) // the update step below is the second internal T-state
			c.push(func(c *CPU, b Bus) {
				c.reg.SetHL(uint16(int32(c.reg.HL()) + int32(step)))
				c.reg.SetDE(uint16(int32(c.reg.DE()) + int32(step)))
				c.reg.SetBC(c.reg.BC() - 1)

				n := c.reg.A + v
				f := c.reg.F & (FlagS | FlagZ | FlagCY)
				if n&0x02 != 0 {
					f |= FlagY
				}
				if n&0x08 != 0 {
					f |= FlagX
				}
				if c.reg.BC() != 0 {
					f |= FlagPV
				}
				c.reg.F = f

				if repeat && c.reg.BC() != 0 {
					c.internalCycles(5)
					c.reg.SetWZ(c.reg.PC - 1)
					c.push(func(c *CPU, b Bus) { c.reg.PC -= 2 })
				}
			})
		})
	}
}

// --- CPI/CPIR/CPD/CPDR ---

func registerBlockCompare() {
	opcodeTableED[0xA1] = makeCP(1, false)
	opcodeTableED[0xB1] = makeCP(1, true)
	opcodeTableED[0xA9] = makeCP(-1, false)
	opcodeTableED[0xB9] = makeCP(-1, true)
}

func makeCP(step int, repeat bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.memRead(c.reg.HL(), func(c *CPU, b Bus, v uint8) {
			c.internalCycles(5)
			c.push(func(c *CPU, b Bus) {
				_, f := SubFlags(c.reg.A, v, false)
				c.reg.SetHL(uint16(int32(c.reg.HL()) + int32(step)))
				c.reg.SetBC(c.reg.BC() - 1)

				n := c.reg.A - v
				if f&FlagH != 0 {
					n--
				}
				f = (f &^ (FlagX | FlagY)) & (FlagS | FlagZ | FlagH | FlagN | FlagCY)
				if n&0x02 != 0 {
					f |= FlagY
				}
				if n&0x08 != 0 {
					f |= FlagX
				}
				if c.reg.BC() != 0 {
					f |= FlagPV
				}
				c.reg.F = f
				c.reg.SetWZ(uint16(int32(c.reg.WZ()) + int32(step)))

				if repeat && c.reg.BC() != 0 && f&FlagZ == 0 {
					c.internalCycles(5)
					c.push(func(c *CPU, b Bus) { c.reg.PC -= 2 })
				}
			})
		})
	}
}

// --- INI/INIR/IND/INDR, OUTI/OTIR/OUTD/OTDR ---
//
// The exact H/N/PV/C edge cases for these four are notoriously
// under-documented even on real silicon (they depend on an internal
// addition of the post-decrement B to the transferred byte); this
// models the commonly agreed S/Z/X/Y/N behaviour and approximates
// H/C/PV as the community-standard "k = value + ((C+1)&0xFF)" (INI),
// "k = value + ((C-1)&0xFF)" (IND) or "k = value + L" (OUTI/OUTD)
// overflow tests.

func registerBlockIO() {
	opcodeTableED[0xA2] = makeIN(1, false)
	opcodeTableED[0xB2] = makeIN(1, true)
	opcodeTableED[0xAA] = makeIN(-1, false)
	opcodeTableED[0xBA] = makeIN(-1, true)
	opcodeTableED[0xA3] = makeOUT(1, false)
	opcodeTableED[0xB3] = makeOUT(1, true)
	opcodeTableED[0xAB] = makeOUT(-1, false)
	opcodeTableED[0xBB] = makeOUT(-1, true)
}

func makeIN(step int, repeat bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.internalCycles(1)
		port := c.reg.BC()
		c.ioRead(port, func(c *CPU, b Bus, v uint8) {
			c.memWrite(c.reg.HL(), v)
			c.reg.B--
			c.reg.SetHL(uint16(int32(c.reg.HL()) + int32(step)))

			k := uint16(v) + uint16((c.reg.C+uint8(step))&0xFF)
			f := sz53(c.reg.B) | FlagN&bit01(v&0x80 != 0, FlagN)
			if c.reg.B == 0 {
				f |= FlagZ
			}
			if k > 0xFF {
				f |= FlagH | FlagCY
			}
			if parityEven(uint8(k&7) ^ c.reg.B) {
				f |= FlagPV
			}
			c.reg.F = f

			if repeat && c.reg.B != 0 {
				c.internalCycles(5)
				c.push(func(c *CPU, b Bus) { c.reg.PC -= 2 })
			}
		})
	}
}

func makeOUT(step int, repeat bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.internalCycles(1)
		c.memRead(c.reg.HL(), func(c *CPU, b Bus, v uint8) {
			c.reg.B--
			port := c.reg.BC()
			c.ioWrite(port, v)
			c.reg.SetHL(uint16(int32(c.reg.HL()) + int32(step)))

			k := uint16(v) + uint16(c.reg.L)
			f := sz53(c.reg.B) | bit01(v&0x80 != 0, FlagN)
			if c.reg.B == 0 {
				f |= FlagZ
			}
			if k > 0xFF {
				f |= FlagH | FlagCY
			}
			if parityEven(uint8(k&7) ^ c.reg.B) {
				f |= FlagPV
			}
			c.reg.F = f

			if repeat && c.reg.B != 0 {
				c.internalCycles(5)
				c.push(func(c *CPU, b Bus) { c.reg.PC -= 2 })
			}
		})
	}
}
