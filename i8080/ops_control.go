package i8080

func init() {
	registerNOPHLT()
	registerDIEI()
	registerJumps()
	registerCalls()
	registerReturns()
	registerRST()
	registerPCHLSPHL()
}

func registerNOPHLT() {
	opcodeTable[0x00] = func(c *CPU, b Bus) {}
	// The seven other 00ss s000 byte patterns with ss!=000 are undocumented
	// NOP aliases on real silicon; give them the same handler.
	for i := uint16(0x08); i < 0x40; i += 8 {
		if opcodeTable[i] == nil {
			opcodeTable[i] = func(c *CPU, b Bus) {}
		}
	}
	// HLT's own execution costs 7 T-states total on 8080, 5 on 8085; the
	// M1 fetch already charged 4, so the handler pushes the remainder.
	opcodeTable[0x76] = func(c *CPU, b Bus) {
		c.halted = true
		extra := 3
		if c.Variant == Intel8085 {
			extra = 1
		}
		c.push(extra, func(c *CPU, b Bus) {})
	}
}

func registerDIEI() {
	opcodeTable[0xF3] = func(c *CPU, b Bus) { c.DI() }
	opcodeTable[0xFB] = func(c *CPU, b Bus) { c.EI() }
}

// condition evaluates one of the 8 three-bit condition codes used by
// Jcc/Ccc/Rcc: NZ Z NC C PO PE P M.
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
		return c.reg.F&FlagP == 0
	case 5:
		return c.reg.F&FlagP != 0
	case 6:
		return c.reg.F&FlagS == 0
	case 7:
		return c.reg.F&FlagS != 0
	}
	return false
}

// --- JMP / Jcc ---

func registerJumps() {
	opcodeTable[0xC3] = makeJump(nil)
	// the undocumented 0xCB alias of JMP
	opcodeTable[0xCB] = makeJump(nil)
	for cc := uint8(0); cc < 8; cc++ {
		cc := cc
		opcodeTable[0xC2|cc<<3] = makeJump(func(c *CPU) bool { return c.condition(cc) })
	}
}

// makeJump builds JMP (cond == nil) or a conditional Jcc. On 8080 both
// operand bytes are always fetched (10 T-states regardless of the
// branch decision). On 8085 the high byte is fetched only if the
// branch is taken; when not taken, PC is still advanced past it but
// no bus cycle is charged, giving 7 T-states instead of 10.
func makeJump(cond func(*CPU) bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		taken := cond == nil || cond(c)
		c.push(3, func(c *CPU, b Bus) {
			c.reg.Z = b.MemRead(c.reg.PC)
			c.reg.PC++
		})
		if c.Variant == Intel8085 && cond != nil && !taken {
			// No bus cycle for the high byte, but PC must still land
			// past it; queue this after the low-byte fetch so PC
			// advances in the right order.
			c.push(0, func(c *CPU, b Bus) { c.reg.PC++ })
			return
		}
		c.push(3, func(c *CPU, b Bus) {
			c.reg.W = b.MemRead(c.reg.PC)
			c.reg.PC++
			if taken {
				c.reg.PC = c.reg.WZ()
			}
		})
	}
}

// --- CALL / Ccc ---

func registerCalls() {
	opcodeTable[0xCD] = makeCall(nil)
	for _, alias := range []uint8{0xDD, 0xED, 0xFD} {
		opcodeTable[alias] = makeCall(nil)
	}
	for cc := uint8(0); cc < 8; cc++ {
		cc := cc
		opcodeTable[0xC4|cc<<3] = makeCall(func(c *CPU) bool { return c.condition(cc) })
	}
}

// makeCall builds CALL (cond == nil) or a conditional Ccc. On 8080
// both operand bytes are always fetched before checking the
// condition. On 8085 the high byte is fetched (and the return address
// pushed) only if the branch is taken; when not taken, PC is advanced
// past the high byte without a bus cycle. The 8080 stretches the M1
// fetch of CALL/Ccc to 5 T-states (17 taken, 11 not taken); the 8085
// keeps the 4 T-state fetch (16 taken, 7 not taken).
func makeCall(cond func(*CPU) bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		if c.Variant == Intel8080 {
			c.cycles++ // fifth M1 T-state
		}
		taken := cond == nil || cond(c)
		c.push(3, func(c *CPU, b Bus) {
			c.reg.Z = b.MemRead(c.reg.PC)
			c.reg.PC++
		})
		if c.Variant == Intel8085 && cond != nil && !taken {
			// No bus cycle for the high byte, but PC must still land
			// past it; queue this after the low-byte fetch so PC
			// advances in the right order.
			c.push(0, func(c *CPU, b Bus) { c.reg.PC++ })
			return
		}
		c.push(3, func(c *CPU, b Bus) {
			c.reg.W = b.MemRead(c.reg.PC)
			c.reg.PC++

			if !taken {
				return
			}
			ret := c.reg.PC
			c.push(3, func(c *CPU, b Bus) {
				c.reg.SP--
				b.MemWrite(c.reg.SP, uint8(ret>>8))
			})
			c.push(3, func(c *CPU, b Bus) {
				c.reg.SP--
				b.MemWrite(c.reg.SP, uint8(ret))
				c.reg.PC = c.reg.WZ()
			})
		})
	}
}

// --- RET / Rcc ---

func registerReturns() {
	opcodeTable[0xC9] = makeReturn(nil)
	opcodeTable[0xD9] = makeReturn(nil) // undocumented RET alias
	for cc := uint8(0); cc < 8; cc++ {
		cc := cc
		opcodeTable[0xC0|cc<<3] = makeReturnConditional(func(c *CPU) bool { return c.condition(cc) })
	}
}

func makeReturn(_ func(*CPU) bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		c.push(3, func(c *CPU, b Bus) {
			c.reg.Z = b.MemRead(c.reg.SP)
			c.reg.SP++
		})
		c.push(3, func(c *CPU, b Bus) {
			c.reg.W = b.MemRead(c.reg.SP)
			c.reg.SP++
			c.reg.PC = c.reg.WZ()
		})
	}
}

// makeReturnConditional builds Rcc. The condition test itself is an
// internal cycle costing 1 T-state on 8080 (5/11 T-states total,
// not-taken/taken) and 2 on 8085 (6/12 total).
func makeReturnConditional(cond func(*CPU) bool) func(*CPU, Bus) {
	return func(c *CPU, b Bus) {
		internal := 1
		if c.Variant == Intel8085 {
			internal = 2
		}
		c.push(internal, func(c *CPU, b Bus) {
			if !cond(c) {
				return
			}
			c.push(3, func(c *CPU, b Bus) {
				c.reg.Z = b.MemRead(c.reg.SP)
				c.reg.SP++
			})
			c.push(3, func(c *CPU, b Bus) {
				c.reg.W = b.MemRead(c.reg.SP)
				c.reg.SP++
				c.reg.PC = c.reg.WZ()
			})
		})
	}
}

// --- RST n ---

func registerRST() {
	for n := uint16(0); n < 8; n++ {
		n := n
		opcodeTable[0xC7|n<<3] = func(c *CPU, b Bus) {
			ret := c.reg.PC
			c.push(3, func(c *CPU, b Bus) {
				c.reg.SP--
				b.MemWrite(c.reg.SP, uint8(ret>>8))
			})
			c.push(3, func(c *CPU, b Bus) {
				c.reg.SP--
				b.MemWrite(c.reg.SP, uint8(ret))
				c.reg.PC = n * 8
			})
		}
	}
}

// --- PCHL / SPHL (SPHL is registered alongside XCHG in ops_datatransfer.go) ---

func registerPCHLSPHL() {
	opcodeTable[0xE9] = func(c *CPU, b Bus) { c.reg.PC = c.reg.HL() }
}
