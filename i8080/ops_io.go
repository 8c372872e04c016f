package i8080

func init() {
	opcodeTable[0xDB] = opIN
	opcodeTable[0xD3] = opOUT
}

func opIN(c *CPU, b Bus) {
	c.push(3, func(c *CPU, b Bus) {
		port := b.MemRead(c.reg.PC)
		c.reg.PC++
		c.push(3, func(c *CPU, b Bus) {
			c.reg.A = b.PortRead(port)
		})
	})
}

func opOUT(c *CPU, b Bus) {
	c.push(3, func(c *CPU, b Bus) {
		port := b.MemRead(c.reg.PC)
		c.reg.PC++
		c.push(3, func(c *CPU, b Bus) {
			b.PortWrite(port, c.reg.A)
		})
	})
}
