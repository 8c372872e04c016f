package i8080

func init() {
	registerAddSub()
	registerAddSubImm()
	registerIncDecReg()
	registerIncDecPair()
	registerDAD()
	registerDAACMACMCSTC()
}

// --- ADD r/M, ADC r/M, SUB r/M, SBB r/M ---

func registerAddSub() {
	for src := uint8(0); src < 8; src++ {
		opcodeTable[0x80|src] = aluReg(src, func(c *CPU, v uint8) { c.reg.A, c.reg.F = AddFlags(c.reg.A, v, false) })
		opcodeTable[0x88|src] = aluReg(src, func(c *CPU, v uint8) { c.reg.A, c.reg.F = AddFlags(c.reg.A, v, c.reg.F&FlagCY != 0) })
		opcodeTable[0x90|src] = aluReg(src, func(c *CPU, v uint8) { c.reg.A, c.reg.F = SubFlags(c.reg.A, v, false) })
		opcodeTable[0x98|src] = aluReg(src, func(c *CPU, v uint8) { c.reg.A, c.reg.F = SubFlags(c.reg.A, v, c.reg.F&FlagCY != 0) })
	}
}

func aluReg(src uint8, apply func(*CPU, uint8)) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.reg8(b, src, func(v uint8) { apply(c, v) })
	}
}

// --- ADI, ACI, SUI, SBI ---

func registerAddSubImm() {
	aluImm(0xC6, func(c *CPU, v uint8) { c.reg.A, c.reg.F = AddFlags(c.reg.A, v, false) })
	aluImm(0xCE, func(c *CPU, v uint8) { c.reg.A, c.reg.F = AddFlags(c.reg.A, v, c.reg.F&FlagCY != 0) })
	aluImm(0xD6, func(c *CPU, v uint8) { c.reg.A, c.reg.F = SubFlags(c.reg.A, v, false) })
	aluImm(0xDE, func(c *CPU, v uint8) { c.reg.A, c.reg.F = SubFlags(c.reg.A, v, c.reg.F&FlagCY != 0) })
}

func aluImm(opcode uint8, apply func(*CPU, uint8)) {
	opcodeTable[opcode] = func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) {
			v := b.MemRead(c.reg.PC)
			c.reg.PC++
			apply(c, v)
		})
	}
}

// --- INR/DCR r,M ---

func registerIncDecReg() {
	for dst := uint8(0); dst < 8; dst++ {
		opcodeTable[0x04|dst<<3] = makeIncDec(dst, true)
		opcodeTable[0x05|dst<<3] = makeIncDec(dst, false)
	}
}

func makeIncDec(dst uint8, inc bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		apply := func(v uint8) uint8 {
			var r uint8
			if inc {
				r, c.reg.F = IncFlags(v, c.reg.F)
			} else {
				r, c.reg.F = DecFlags(v, c.reg.F)
			}
			return r
		}
		if dst == 6 {
			c.push(3, func(c *CPU, b Bus) {
				v := b.MemRead(c.reg.HL())
				c.push(3, func(c *CPU, b Bus) { b.MemWrite(c.reg.HL(), apply(v)) })
			})
			return
		}
		p := c.reg.regPointer(dst)
		*p = apply(*p)
	}
}

// --- INX/DCX rp ---

func registerIncDecPair() {
	pairs := []struct {
		get func(*CPU) uint16
		set func(*CPU, uint16)
	}{
		{func(c *CPU) uint16 { return c.reg.BC() }, func(c *CPU, v uint16) { c.reg.SetBC(v) }},
		{func(c *CPU) uint16 { return c.reg.DE() }, func(c *CPU, v uint16) { c.reg.SetDE(v) }},
		{func(c *CPU) uint16 { return c.reg.HL() }, func(c *CPU, v uint16) { c.reg.SetHL(v) }},
		{func(c *CPU) uint16 { return c.reg.SP }, func(c *CPU, v uint16) { c.reg.SP = v }},
	}
	for i, p := range pairs {
		p := p
		opcodeTable[0x03|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.push(1, func(c *CPU, b Bus) { p.set(c, p.get(c)+1) })
		}
		opcodeTable[0x0B|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.push(1, func(c *CPU, b Bus) { p.set(c, p.get(c)-1) })
		}
	}
}

// --- DAD rp ---

func registerDAD() {
	pairs := []func(*CPU) uint16{
		func(c *CPU) uint16 { return c.reg.BC() },
		func(c *CPU) uint16 { return c.reg.DE() },
		func(c *CPU) uint16 { return c.reg.HL() },
		func(c *CPU) uint16 { return c.reg.SP },
	}
	for i, get := range pairs {
		get := get
		opcodeTable[0x09|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.push(3, func(c *CPU, b Bus) {
				hl := uint32(c.reg.HL())
				sum := hl + uint32(get(c))
				c.reg.SetHL(uint16(sum))
				if sum > 0xFFFF {
					c.reg.F |= FlagCY
				} else {
					c.reg.F &^= FlagCY
				}
			})
		}
	}
}

// --- DAA, CMA, CMC, STC ---

func registerDAACMACMCSTC() {
	opcodeTable[0x27] = func(c *CPU, b Bus) { c.reg.A, c.reg.F = DAA(c.reg.A, c.reg.F) }
	opcodeTable[0x2F] = func(c *CPU, b Bus) { c.reg.A = ^c.reg.A }
	opcodeTable[0x3F] = func(c *CPU, b Bus) { c.reg.F ^= FlagCY }
	opcodeTable[0x37] = func(c *CPU, b Bus) { c.reg.F |= FlagCY }
}
