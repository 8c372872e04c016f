package z80

func init() {
	registerNEG()
	registerIM()
	registerRETNRETI()
	registerLDSpecial()
	registerRRDRLD()
	registerAdcSbcHL()
	registerEDDirect16()
}

// NEG appears at 8 aliased ED encodings on real silicon; all behave
// identically.
func registerNEG() {
	for _, op := range []uint8{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		opcodeTableED[op] = func(c *CPU, b Bus) {
			c.reg.A, c.reg.F = SubFlags(0, c.reg.A, false)
		}
	}
}

func registerIM() {
	set := func(op uint8, mode uint8) { opcodeTableED[op] = func(c *CPU, b Bus) { c.SetIM(mode) } }
	set(0x46, 0)
	set(0x4E, 0)
	set(0x66, 0)
	set(0x6E, 0)
	set(0x56, 1)
	set(0x76, 1)
	set(0x5E, 2)
	set(0x7E, 2)
}

func registerRETNRETI() {
	retn := func(c *CPU, b Bus) {
		c.doReturn(b)
		c.iff1 = c.iff2
	}
	for _, op := range []uint8{0x45, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D} {
		opcodeTableED[op] = retn
	}
	opcodeTableED[0x4D] = func(c *CPU, b Bus) {
		c.doReturn(b)
		c.iff1 = c.iff2
	}
}

func registerLDSpecial() {
	opcodeTableED[0x47] = func(c *CPU, b Bus) { c.internalCycles(1); c.reg.I = c.reg.A }
	opcodeTableED[0x4F] = func(c *CPU, b Bus) { c.internalCycles(1); c.reg.R = c.reg.A }
	opcodeTableED[0x57] = func(c *CPU, b Bus) {
		c.internalCycles(1)
		c.reg.A = c.reg.I
		c.ldAIRFlags()
	}
	opcodeTableED[0x5F] = func(c *CPU, b Bus) {
		c.internalCycles(1)
		c.reg.A = c.reg.R
		c.ldAIRFlags()
	}
}

// ldAIRFlags sets S/Z/X/Y from A, H/N cleared, PV from IFF2, CY
// preserved, per LD A,I / LD A,R.
func (c *CPU) ldAIRFlags() {
	f := sz53(c.reg.A) & (FlagS | FlagZ | FlagX | FlagY)
	if c.iff2 {
		f |= FlagPV
	}
	f |= c.reg.F & FlagCY
	c.reg.F = f
}

func registerRRDRLD() {
	opcodeTableED[0x67] = func(c *CPU, b Bus) { // RRD
		c.memRead(c.reg.HL(), func(c *CPU, b Bus, m uint8) {
			newA := c.reg.A&0xF0 | m&0x0F
			newM := c.reg.A&0x0F<<4 | m>>4
			c.internalCycles(4)
			c.memWrite(c.reg.HL(), newM)
			c.push(func(c *CPU, b Bus) {
				c.reg.A = newA
				c.reg.F = (sz53(c.reg.A) | boolParity(c.reg.A)) | c.reg.F&FlagCY
				c.reg.SetWZ(c.reg.HL() + 1)
			})
		})
	}
	opcodeTableED[0x6F] = func(c *CPU, b Bus) { // RLD
		c.memRead(c.reg.HL(), func(c *CPU, b Bus, m uint8) {
			newA := c.reg.A&0xF0 | m>>4
			newM := m<<4 | c.reg.A&0x0F
			c.internalCycles(4)
			c.memWrite(c.reg.HL(), newM)
			c.push(func(c *CPU, b Bus) {
				c.reg.A = newA
				c.reg.F = (sz53(c.reg.A) | boolParity(c.reg.A)) | c.reg.F&FlagCY
				c.reg.SetWZ(c.reg.HL() + 1)
			})
		})
	}
}

func boolParity(v uint8) uint8 {
	if parityEven(v) {
		return FlagPV
	}
	return 0
}

func registerAdcSbcHL() {
	pairs := []func(*CPU) uint16{
		func(c *CPU) uint16 { return c.reg.BC() },
		func(c *CPU) uint16 { return c.reg.DE() },
		func(c *CPU) uint16 { return c.reg.HL() },
		func(c *CPU) uint16 { return c.reg.SP },
	}
	for i, get := range pairs {
		get := get
		opcodeTableED[0x4A|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.internalCycles(7)
			var result uint16
			result, c.reg.F = Adc16Flags(c.reg.HL(), get(c), c.reg.F&FlagCY != 0)
			c.reg.SetWZ(c.reg.HL() + 1)
			c.reg.SetHL(result)
		}
		opcodeTableED[0x42|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.internalCycles(7)
			var result uint16
			result, c.reg.F = Sbc16Flags(c.reg.HL(), get(c), c.reg.F&FlagCY != 0)
			c.reg.SetWZ(c.reg.HL() + 1)
			c.reg.SetHL(result)
		}
	}
}

// registerEDDirect16 wires LD (nn),dd and LD dd,(nn) for BC/DE/SP (the
// HL forms exist unprefixed as 0x22/0x2A and are not re-registered here).
func registerEDDirect16() {
	pairs := []struct {
		get func(*CPU) uint16
		set func(*CPU, uint16)
	}{
		{func(c *CPU) uint16 { return c.reg.BC() }, func(c *CPU, v uint16) { c.reg.SetBC(v) }},
		{func(c *CPU) uint16 { return c.reg.DE() }, func(c *CPU, v uint16) { c.reg.SetDE(v) }},
		{nil, nil}, // HL: already has a dedicated unprefixed encoding
		{func(c *CPU) uint16 { return c.reg.SP }, func(c *CPU, v uint16) { c.reg.SP = v }},
	}
	for i, p := range pairs {
		if p.get == nil {
			continue
		}
		p := p
		opcodeTableED[0x43|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.fetch16(func(c *CPU, b Bus, addr uint16) {
				v := p.get(c)
				c.memWrite(addr, uint8(v))
				c.memWrite(addr+1, uint8(v>>8))
				c.reg.SetWZ(addr + 1)
			})
		}
		opcodeTableED[0x4B|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.fetch16(func(c *CPU, b Bus, addr uint16) {
				c.memRead(addr, func(c *CPU, b Bus, lo uint8) {
					c.memRead(addr+1, func(c *CPU, b Bus, hi uint8) {
						p.set(c, uint16(hi)<<8|uint16(lo))
						c.reg.SetWZ(addr + 1)
					})
				})
			})
		}
	}
}
