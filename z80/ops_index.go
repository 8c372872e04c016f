package z80

// This file implements the DD/FD (IX/IY) index-register prefixes.
// Real silicon gives a genuine indexed form to only a documented
// subset of opcodes; everything else just runs the plain unprefixed
// instruction as if the prefix byte had never appeared (the
// commonly-documented "prefix is effectively a NOP" behaviour). Rather
// than duplicate the full 256-entry table twice, indexedTable holds
// only the opcodes that differ, keyed the same way as opcodeTable,
// with the IX/IY choice passed in as a parameter.
var indexedTable [256]func(*CPU, Bus, bool)

func init() {
	registerIndexedLoad16()
	registerIndexedIncDec16()
	registerIndexedAddIndex()
	registerIndexedLoadMem()
	registerIndexedIncDecMem()
	registerIndexedALU()
	registerIndexedStack()
}

// indexReg returns IX or IY depending on useIY.
func (c *CPU) indexReg(useIY bool) *uint16 {
	if useIY {
		return &c.reg.IY
	}
	return &c.reg.IX
}

// dispatchIndexed runs after the DD/FD prefix byte: it fetches the
// following opcode byte as its own M1 cycle, then routes to the
// indexed handler table, the DDCB/FDCB bit-operation form, a repeated
// prefix, or (for opcodes with no indexed form) the plain table.
func (c *CPU) dispatchIndexed(b Bus, useIY bool) {
	c.fetchOpcodeThen(b, func(c *CPU, b Bus, op2 uint8) {
		switch op2 {
		case 0xDD:
			c.dispatchIndexed(b, false)
		case 0xFD:
			c.dispatchIndexed(b, true)
		case 0xCB:
			c.dispatchIndexedCB(b, useIY)
		default:
			if h := indexedTable[op2]; h != nil {
				h(c, b, useIY)
				return
			}
			h := opcodeTable[op2]
			if h == nil {
				undefinedOpcode(c, b, op2, "main")
				return
			}
			h(c, b)
		}
	})
}

// dispatchIndexedCB handles the DDCB dd oo / FDCB dd oo encoding: the
// displacement byte always comes before the final opcode byte, and
// both are plain memory reads rather than M1 fetches.
func (c *CPU) dispatchIndexedCB(b Bus, useIY bool) {
	c.memRead(c.reg.PC, func(c *CPU, b Bus, d uint8) {
		c.reg.PC++
		addr := uint16(int32(*c.indexReg(useIY)) + int32(int8(d)))
		c.memRead(c.reg.PC, func(c *CPU, b Bus, op3 uint8) {
			c.reg.PC++
			c.reg.SetWZ(addr)
			sub := op3 >> 3 & 7
			reg := op3 & 7
			switch {
			case op3 < 0x40: // RLC/RRC/RL/RR/SLA/SRA/SLL/SRL (IX/IY+d)
				c.memRead(addr, func(c *CPU, b Bus, v uint8) {
					result, f := shiftOp(sub, v, c.reg.F&FlagCY != 0)
					c.reg.F = f
					c.push(func(c *CPU, b Bus) {})
					c.memWrite(addr, result)
					if reg != 6 {
						c.push(func(c *CPU, b Bus) { *c.regPointer(reg) = result })
					}
				})
			case op3 < 0x80: // BIT b,(IX/IY+d)
				bit := sub
				c.memRead(addr, func(c *CPU, b Bus, v uint8) {
					set := v&(1<<bit) != 0
					f := c.reg.F&FlagCY | FlagH
					if !set {
						f |= FlagZ | FlagPV
					}
					if bit == 7 && set {
						f |= FlagS
					}
					f |= c.reg.W & (FlagX | FlagY)
					c.reg.F = f
					c.push(func(c *CPU, b Bus) {})
				})
			default: // RES/SET b,(IX/IY+d)
				bit := sub
				set := op3 >= 0xC0
				c.memRead(addr, func(c *CPU, b Bus, v uint8) {
					var nv uint8
					if set {
						nv = v | 1<<bit
					} else {
						nv = v &^ (1 << bit)
					}
					c.push(func(c *CPU, b Bus) {})
					c.memWrite(addr, nv)
					if reg != 6 {
						c.push(func(c *CPU, b Bus) { *c.regPointer(reg) = nv })
					}
				})
			}
		})
	})
}

func registerIndexedLoad16() {
	indexedTable[0x21] = func(c *CPU, b Bus, useIY bool) {
		c.fetch16(func(c *CPU, b Bus, v uint16) { *c.indexReg(useIY) = v })
	}
	indexedTable[0x22] = func(c *CPU, b Bus, useIY bool) {
		c.fetch16(func(c *CPU, b Bus, addr uint16) {
			ix := *c.indexReg(useIY)
			c.memWrite(addr, uint8(ix))
			c.memWrite(addr+1, uint8(ix>>8))
			c.reg.SetWZ(addr + 1)
		})
	}
	indexedTable[0x2A] = func(c *CPU, b Bus, useIY bool) {
		c.fetch16(func(c *CPU, b Bus, addr uint16) {
			c.memRead(addr, func(c *CPU, b Bus, lo uint8) {
				c.memRead(addr+1, func(c *CPU, b Bus, hi uint8) {
					*c.indexReg(useIY) = uint16(hi)<<8 | uint16(lo)
					c.reg.SetWZ(addr + 1)
				})
			})
		})
	}
}

func registerIndexedIncDec16() {
	indexedTable[0x23] = func(c *CPU, b Bus, useIY bool) {
		c.internalCycles(2)
		*c.indexReg(useIY)++
	}
	indexedTable[0x2B] = func(c *CPU, b Bus, useIY bool) {
		c.internalCycles(2)
		*c.indexReg(useIY)--
	}
}

func registerIndexedAddIndex() {
	srcs := []func(*CPU, bool) uint16{
		func(c *CPU, useIY bool) uint16 { return c.reg.BC() },
		func(c *CPU, useIY bool) uint16 { return c.reg.DE() },
		func(c *CPU, useIY bool) uint16 { return *c.indexReg(useIY) },
		func(c *CPU, useIY bool) uint16 { return c.reg.SP },
	}
	for i, get := range srcs {
		get := get
		indexedTable[0x09|uint8(i)<<4] = func(c *CPU, b Bus, useIY bool) {
			c.internalCycles(7)
			ix := c.indexReg(useIY)
			var result uint16
			result, c.reg.F = Add16Flags(*ix, get(c, useIY), c.reg.F)
			c.reg.SetWZ(*ix + 1)
			*ix = result
		}
	}
}

func registerIndexedLoadMem() {
	dsts := []uint8{0, 1, 2, 3, 4, 5, 7} // B C D E H L A
	for _, dst := range dsts {
		dst := dst
		indexedTable[0x46|dst<<3] = func(c *CPU, b Bus, useIY bool) {
			c.fetchDisplacedAddr(useIY, func(c *CPU, b Bus, addr uint16) {
				c.memRead(addr, func(c *CPU, b Bus, v uint8) { c.writeReg8(dst, v) })
			})
		}
	}
	srcs := []uint8{0, 1, 2, 3, 4, 5, 7}
	for _, src := range srcs {
		src := src
		indexedTable[0x70|src] = func(c *CPU, b Bus, useIY bool) {
			c.fetchDisplacedAddr(useIY, func(c *CPU, b Bus, addr uint16) {
				c.reg8(b, src, func(v uint8) { c.memWrite(addr, v) })
			})
		}
	}
	indexedTable[0x36] = func(c *CPU, b Bus, useIY bool) {
		c.fetchDisplacedAddr(useIY, func(c *CPU, b Bus, addr uint16) {
			c.memRead(c.reg.PC, func(c *CPU, b Bus, n uint8) {
				c.reg.PC++
				c.push(func(c *CPU, b Bus) {})
				c.memWrite(addr, n)
			})
		})
	}
}

func registerIndexedIncDecMem() {
	indexedTable[0x34] = func(c *CPU, b Bus, useIY bool) {
		c.fetchDisplacedAddr(useIY, func(c *CPU, b Bus, addr uint16) {
			c.memRead(addr, func(c *CPU, b Bus, v uint8) {
				nv, f := IncFlags(v, c.reg.F)
				c.reg.F = f
				c.push(func(c *CPU, b Bus) {})
				c.memWrite(addr, nv)
			})
		})
	}
	indexedTable[0x35] = func(c *CPU, b Bus, useIY bool) {
		c.fetchDisplacedAddr(useIY, func(c *CPU, b Bus, addr uint16) {
			c.memRead(addr, func(c *CPU, b Bus, v uint8) {
				nv, f := DecFlags(v, c.reg.F)
				c.reg.F = f
				c.push(func(c *CPU, b Bus) {})
				c.memWrite(addr, nv)
			})
		})
	}
}

func registerIndexedALU() {
	ops := []struct {
		opcode uint8
		apply  func(*CPU, uint8)
	}{
		{0x86, func(c *CPU, v uint8) { c.reg.A, c.reg.F = AddFlags(c.reg.A, v, false) }},
		{0x8E, func(c *CPU, v uint8) { c.reg.A, c.reg.F = AddFlags(c.reg.A, v, c.reg.F&FlagCY != 0) }},
		{0x96, func(c *CPU, v uint8) { c.reg.A, c.reg.F = SubFlags(c.reg.A, v, false) }},
		{0x9E, func(c *CPU, v uint8) { c.reg.A, c.reg.F = SubFlags(c.reg.A, v, c.reg.F&FlagCY != 0) }},
		{0xA6, func(c *CPU, v uint8) { c.reg.A, c.reg.F = AndFlags(c.reg.A, v) }},
		{0xAE, func(c *CPU, v uint8) { c.reg.A, c.reg.F = XorFlags(c.reg.A, v) }},
		{0xB6, func(c *CPU, v uint8) { c.reg.A, c.reg.F = OrFlags(c.reg.A, v) }},
		{0xBE, func(c *CPU, v uint8) { c.reg.F = CmpFlags(c.reg.A, v) }},
	}
	for _, op := range ops {
		op := op
		indexedTable[op.opcode] = func(c *CPU, b Bus, useIY bool) {
			c.fetchDisplacedAddr(useIY, func(c *CPU, b Bus, addr uint16) {
				c.memRead(addr, func(c *CPU, b Bus, v uint8) { op.apply(c, v) })
			})
		}
	}
}

func registerIndexedStack() {
	indexedTable[0xE5] = func(c *CPU, b Bus, useIY bool) {
		c.internalCycles(1)
		v := *c.indexReg(useIY)
		c.memWrite(c.reg.SP-1, uint8(v>>8))
		c.memWrite(c.reg.SP-2, uint8(v))
		c.push(func(c *CPU, b Bus) { c.reg.SP -= 2 })
	}
	indexedTable[0xE1] = func(c *CPU, b Bus, useIY bool) {
		c.memRead(c.reg.SP, func(c *CPU, b Bus, lo uint8) {
			c.memRead(c.reg.SP+1, func(c *CPU, b Bus, hi uint8) {
				*c.indexReg(useIY) = uint16(hi)<<8 | uint16(lo)
				c.reg.SP += 2
			})
		})
	}
	indexedTable[0xE3] = func(c *CPU, b Bus, useIY bool) {
		c.memRead(c.reg.SP, func(c *CPU, b Bus, lo uint8) {
			c.memRead(c.reg.SP+1, func(c *CPU, b Bus, hi uint8) {
				c.internalCycles(1)
				ix := c.indexReg(useIY)
				old := *ix
				c.memWrite(c.reg.SP, uint8(old))
				c.memWrite(c.reg.SP+1, uint8(old>>8))
				c.push(func(c *CPU, b Bus) {
					*ix = uint16(hi)<<8 | uint16(lo)
					c.reg.SetWZ(*ix)
				})
			})
		})
	}
	indexedTable[0xE9] = func(c *CPU, b Bus, useIY bool) {
		c.reg.PC = *c.indexReg(useIY)
	}
	indexedTable[0xF9] = func(c *CPU, b Bus, useIY bool) {
		c.internalCycles(2)
		c.reg.SP = *c.indexReg(useIY)
	}
}

// fetchDisplacedAddr reads the signed displacement byte following a
// DD/FD-prefixed opcode, charges the 5 T-state address-calculation
// delay the real chip takes, updates WZ, and delivers the computed
// address.
func (c *CPU) fetchDisplacedAddr(useIY bool, then func(*CPU, Bus, uint16)) {
	c.memRead(c.reg.PC, func(c *CPU, b Bus, d uint8) {
		c.reg.PC++
		addr := uint16(int32(*c.indexReg(useIY)) + int32(int8(d)))
		c.internalCycles(5)
		c.reg.SetWZ(addr)
		then(c, b, addr)
	})
}
