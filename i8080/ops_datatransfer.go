package i8080

func init() {
	registerMOV()
	registerMVI()
	registerLXI()
	registerLoadStoreDirect()
	registerLoadStoreIndirect()
	registerExchange()
	registerStackDataOps()
}

// --- MOV r,r / MOV r,M / MOV M,r ---

func registerMOV() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue // that encoding is HLT, registered separately
			}
			opcodeTable[0x40|dst<<3|src] = makeMOV(dst, src)
		}
	}
}

func makeMOV(dst, src uint8) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.reg8(b, src, func(v uint8) {
			c.writeReg8(dst, v)
		})
	}
}

// --- MVI r,data / MVI M,data ---

func registerMVI() {
	for dst := uint8(0); dst < 8; dst++ {
		opcodeTable[0x06|dst<<3] = makeMVI(dst)
	}
}

func makeMVI(dst uint8) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) {
			v := b.MemRead(c.reg.PC)
			c.reg.PC++
			c.writeReg8(dst, v)
		})
	}
}

// --- LXI rp,data16 ---

func registerLXI() {
	opcodeTable[0x01] = makeLXI(func(c *CPU) *uint16 { v := c.reg.BC(); return &v }, func(c *CPU, v uint16) { c.reg.SetBC(v) })
	opcodeTable[0x11] = makeLXI(nil, func(c *CPU, v uint16) { c.reg.SetDE(v) })
	opcodeTable[0x21] = makeLXI(nil, func(c *CPU, v uint16) { c.reg.SetHL(v) })
	opcodeTable[0x31] = makeLXI(nil, func(c *CPU, v uint16) { c.reg.SP = v })
}

func makeLXI(_ func(*CPU) *uint16, set func(*CPU, uint16)) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) {
			c.reg.Z = b.MemRead(c.reg.PC)
			c.reg.PC++
		})
		c.push(3, func(c *CPU, b Bus) {
			c.reg.W = b.MemRead(c.reg.PC)
			c.reg.PC++
			set(c, c.reg.WZ())
		})
	}
}

// --- LDA/STA addr, LHLD/SHLD addr ---

func registerLoadStoreDirect() {
	opcodeTable[0x3A] = opLDA
	opcodeTable[0x32] = opSTA
	opcodeTable[0x2A] = opLHLD
	opcodeTable[0x22] = opSHLD
}

func fetchAddrImm(c *CPU, b Bus, then func(*CPU, Bus)) {
	c.push(3, func(c *CPU, b Bus) {
		c.reg.Z = b.MemRead(c.reg.PC)
		c.reg.PC++
	})
	c.push(3, func(c *CPU, b Bus) {
		c.reg.W = b.MemRead(c.reg.PC)
		c.reg.PC++
	})
	c.push(3, then)
}

func opLDA(c *CPU, b Bus) {
	fetchAddrImm(c, b, func(c *CPU, b Bus) {
		c.reg.A = b.MemRead(c.reg.WZ())
	})
}

func opSTA(c *CPU, b Bus) {
	fetchAddrImm(c, b, func(c *CPU, b Bus) {
		b.MemWrite(c.reg.WZ(), c.reg.A)
	})
}

func opLHLD(c *CPU, b Bus) {
	fetchAddrImm(c, b, func(c *CPU, b Bus) {
		c.reg.L = b.MemRead(c.reg.WZ())
	})
	c.push(3, func(c *CPU, b Bus) {
		c.reg.H = b.MemRead(c.reg.WZ() + 1)
	})
}

func opSHLD(c *CPU, b Bus) {
	fetchAddrImm(c, b, func(c *CPU, b Bus) {
		b.MemWrite(c.reg.WZ(), c.reg.L)
	})
	c.push(3, func(c *CPU, b Bus) {
		b.MemWrite(c.reg.WZ()+1, c.reg.H)
	})
}

// --- LDAX/STAX rp (BC or DE only) ---

func registerLoadStoreIndirect() {
	opcodeTable[0x0A] = func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) { c.reg.A = b.MemRead(c.reg.BC()) })
	}
	opcodeTable[0x1A] = func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) { c.reg.A = b.MemRead(c.reg.DE()) })
	}
	opcodeTable[0x02] = func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) { b.MemWrite(c.reg.BC(), c.reg.A) })
	}
	opcodeTable[0x12] = func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) { b.MemWrite(c.reg.DE(), c.reg.A) })
	}
}

// --- XCHG, SPHL, XTHL ---

func registerExchange() {
	opcodeTable[0xEB] = func(c *CPU, b Bus) {
		c.reg.H, c.reg.D = c.reg.D, c.reg.H
		c.reg.L, c.reg.E = c.reg.E, c.reg.L
	}
	opcodeTable[0xF9] = func(c *CPU, b Bus) {
		c.push(1, func(c *CPU, b Bus) { c.reg.SP = c.reg.HL() })
	}
	opcodeTable[0xE3] = func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) { c.reg.Z = b.MemRead(c.reg.SP) })
		c.push(3, func(c *CPU, b Bus) { c.reg.W = b.MemRead(c.reg.SP + 1) })
		c.push(3, func(c *CPU, b Bus) { b.MemWrite(c.reg.SP, c.reg.L); c.reg.L = c.reg.Z })
		c.push(2, func(c *CPU, b Bus) { b.MemWrite(c.reg.SP+1, c.reg.H); c.reg.H = c.reg.W })
	}
}

// --- PUSH rp / POP rp (rp includes PSW as the 4th pairing) ---

func registerStackDataOps() {
	push := func(opcode uint8, get func(*CPU) uint16) {
		opcodeTable[opcode] = func(c *CPU, b Bus) {
			hi := uint8(get(c) >> 8)
			lo := uint8(get(c))
			c.push(3, func(c *CPU, b Bus) {
				c.reg.SP--
				b.MemWrite(c.reg.SP, hi)
			})
			c.push(3, func(c *CPU, b Bus) {
				c.reg.SP--
				b.MemWrite(c.reg.SP, lo)
			})
		}
	}
	pop := func(opcode uint8, set func(*CPU, uint16)) {
		opcodeTable[opcode] = func(c *CPU, b Bus) {
			c.push(3, func(c *CPU, b Bus) {
				c.reg.Z = b.MemRead(c.reg.SP)
				c.reg.SP++
			})
			c.push(3, func(c *CPU, b Bus) {
				c.reg.W = b.MemRead(c.reg.SP)
				c.reg.SP++
				set(c, c.reg.WZ())
			})
		}
	}

	push(0xC5, func(c *CPU) uint16 { return c.reg.BC() })
	push(0xD5, func(c *CPU) uint16 { return c.reg.DE() })
	push(0xE5, func(c *CPU) uint16 { return c.reg.HL() })
	push(0xF5, func(c *CPU) uint16 { return c.reg.PSW() })

	pop(0xC1, func(c *CPU, v uint16) { c.reg.SetBC(v) })
	pop(0xD1, func(c *CPU, v uint16) { c.reg.SetDE(v) })
	pop(0xE1, func(c *CPU, v uint16) { c.reg.SetHL(v) })
	pop(0xF1, func(c *CPU, v uint16) { c.reg.SetPSW(v) })
}
