package z80

func init() {
	registerLDddnn()
	registerLDHLDirect()
	registerLDSPHL()
	registerPushPop16()
	registerExchanges()
}

func registerLDddnn() {
	opcodeTable[0x01] = func(c *CPU, b Bus) { c.fetch16(func(c *CPU, b Bus, v uint16) { c.reg.SetBC(v) }) }
	opcodeTable[0x11] = func(c *CPU, b Bus) { c.fetch16(func(c *CPU, b Bus, v uint16) { c.reg.SetDE(v) }) }
	opcodeTable[0x21] = func(c *CPU, b Bus) { c.fetch16(func(c *CPU, b Bus, v uint16) { c.reg.SetHL(v) }) }
	opcodeTable[0x31] = func(c *CPU, b Bus) { c.fetch16(func(c *CPU, b Bus, v uint16) { c.reg.SP = v }) }
}

func registerLDHLDirect() {
	opcodeTable[0x2A] = func(c *CPU, b Bus) {
		c.fetch16(func(c *CPU, b Bus, addr uint16) {
			c.memRead(addr, func(c *CPU, b Bus, lo uint8) {
				c.memRead(addr+1, func(c *CPU, b Bus, hi uint8) {
					c.reg.L = lo
					c.reg.H = hi
					c.reg.SetWZ(addr + 1)
				})
			})
		})
	}
	opcodeTable[0x22] = func(c *CPU, b Bus) {
		c.fetch16(func(c *CPU, b Bus, addr uint16) {
			c.memWrite(addr, c.reg.L)
			c.memWrite(addr+1, c.reg.H)
			c.reg.SetWZ(addr + 1)
		})
	}
}

func registerLDSPHL() {
	opcodeTable[0xF9] = func(c *CPU, b Bus) {
		c.internalCycles(2)
		c.reg.SP = c.reg.HL()
	}
}

func registerPushPop16() {
	push := func(opcode uint8, get func(*CPU) uint16) {
		opcodeTable[opcode] = func(c *CPU, b Bus) {
			c.internalCycles(1)
			v := get(c)
			c.memWrite(c.reg.SP-1, uint8(v>>8))
			c.memWrite(c.reg.SP-2, uint8(v))
			c.push(func(c *CPU, b Bus) { c.reg.SP -= 2 })
		}
	}
	pop := func(opcode uint8, set func(*CPU, uint16)) {
		opcodeTable[opcode] = func(c *CPU, b Bus) {
			c.memRead(c.reg.SP, func(c *CPU, b Bus, lo uint8) {
				c.memRead(c.reg.SP+1, func(c *CPU, b Bus, hi uint8) {
					set(c, uint16(hi)<<8|uint16(lo))
					c.reg.SP += 2
				})
			})
		}
	}

	push(0xC5, func(c *CPU) uint16 { return c.reg.BC() })
	push(0xD5, func(c *CPU) uint16 { return c.reg.DE() })
	push(0xE5, func(c *CPU) uint16 { return c.reg.HL() })
	push(0xF5, func(c *CPU) uint16 { return c.reg.AF() })

	pop(0xC1, func(c *CPU, v uint16) { c.reg.SetBC(v) })
	pop(0xD1, func(c *CPU, v uint16) { c.reg.SetDE(v) })
	pop(0xE1, func(c *CPU, v uint16) { c.reg.SetHL(v) })
	pop(0xF1, func(c *CPU, v uint16) { c.reg.SetAF(v) })
}

func registerExchanges() {
	opcodeTable[0xEB] = func(c *CPU, b Bus) {
		c.reg.D, c.reg.H = c.reg.H, c.reg.D
		c.reg.E, c.reg.L = c.reg.L, c.reg.E
	}
	opcodeTable[0x08] = func(c *CPU, b Bus) { c.reg.ExAFSwap() }
	opcodeTable[0xD9] = func(c *CPU, b Bus) { c.reg.ExxSwap() }
	opcodeTable[0xE3] = func(c *CPU, b Bus) {
		c.memRead(c.reg.SP, func(c *CPU, b Bus, lo uint8) {
			c.memRead(c.reg.SP+1, func(c *CPU, b Bus, hi uint8) {
				c.internalCycles(1)
				oldL, oldH := c.reg.L, c.reg.H
				c.memWrite(c.reg.SP, oldL)
				c.memWrite(c.reg.SP+1, oldH)
				c.push(func(c *CPU, b Bus) {
					c.reg.L = lo
					c.reg.H = hi
					c.reg.SetWZ(c.reg.HL())
				})
			})
		})
	}
}
