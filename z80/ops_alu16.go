package z80

func init() {
	registerAddHL()
	registerIncDec16()
}

func registerAddHL() {
	pairs := []func(*CPU) uint16{
		func(c *CPU) uint16 { return c.reg.BC() },
		func(c *CPU) uint16 { return c.reg.DE() },
		func(c *CPU) uint16 { return c.reg.HL() },
		func(c *CPU) uint16 { return c.reg.SP },
	}
	for i, get := range pairs {
		get := get
		opcodeTable[0x09|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.internalCycles(7)
			var result uint16
			result, c.reg.F = Add16Flags(c.reg.HL(), get(c), c.reg.F)
			c.reg.SetWZ(c.reg.HL() + 1)
			c.reg.SetHL(result)
		}
	}
}

func registerIncDec16() {
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
			c.internalCycles(2)
			p.set(c, p.get(c)+1)
		}
		opcodeTable[0x0B|uint8(i)<<4] = func(c *CPU, b Bus) {
			c.internalCycles(2)
			p.set(c, p.get(c)-1)
		}
	}
}
