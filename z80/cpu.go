package z80

import "log"

// CPU is the Zilog Z80 processor core, stepped one T-state at a time.
type CPU struct {
	reg    Registers
	cycles uint64

	iff1, iff2 bool
	im         uint8 // interrupt mode: 0, 1, or 2
	justAteEI  bool  // true for the one instruction boundary right after EI

	halted bool

	timing *TimingOverride

	// tqueue is a FIFO of one-T-state closures for the instruction (or
	// fetch sequence) currently in flight, the T-state analogue of the
	// i8080 package's M-cycle pipeline.
	tqueue []func(*CPU, Bus)

	prevPC uint16
}

// New creates a Z80 core. Registers are zeroed; call Reset or
// SetState before running.
func New() *CPU {
	return &CPU{}
}

// Reset performs a power-on-equivalent reset: PC=0, SP=0xFFFF, IFF1/2
// cleared, IM 0, R=0.
func (c *CPU) Reset() {
	c.reg = Registers{SP: 0xFFFF}
	c.iff1, c.iff2 = false, false
	c.im = 0
	c.justAteEI = false
	c.halted = false
	c.tqueue = nil
	c.cycles = 0
}

// Registers returns a copy of the programmer-visible register file.
func (c *CPU) Registers() Registers { return c.reg }

// SetState installs an exact register state, for test harnesses.
func (c *CPU) SetState(r Registers) { c.reg = r }

// Halted reports whether the CPU executed HALT and has not since been
// woken by an interrupt.
func (c *CPU) Halted() bool { return c.halted }

// IFF1 and IFF2 expose the interrupt flip-flops (IFF2 is only
// programmer-visible via LD A,I / LD A,R's parity flag).
func (c *CPU) IFF1() bool { return c.iff1 }
func (c *CPU) IFF2() bool { return c.iff2 }

// IM returns the current interrupt mode (0, 1 or 2).
func (c *CPU) IM() uint8 { return c.im }

// SetIFF installs the interrupt flip-flops directly, for test
// harnesses restoring an exact snapshot (ordinary code toggles them
// via EI/DI, which also sets the one-instruction EI delay).
func (c *CPU) SetIFF(iff1, iff2 bool) {
	c.iff1 = iff1
	c.iff2 = iff2
}

// Cycles returns the running T-state count since the last Reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// SetTimingOverride installs a per-opcode T-state padding override
// loaded via LoadTimingOverride, or clears it if t is nil.
func (c *CPU) SetTimingOverride(t *TimingOverride) { c.timing = t }

// Tick advances the CPU by exactly one T-state. ok is false only when
// the CPU is halted and neither INT nor NMI is asserted on the bus —
// the host's signal that the core is making no progress and the clock
// may idle. While halted with a line asserted but not yet accepted
// (e.g. the one-instruction EI delay), tick keeps running the
// refresh-cycle NOPs real silicon runs between HALT and acceptance.
func (c *CPU) Tick(b Bus) (ok bool) {
	if len(c.tqueue) == 0 {
		if !c.checkInterrupt(b) {
			if c.halted {
				if !b.NMI() && !b.INT() {
					return false
				}
				c.executeNOPForHalt(b)
				return true
			}
			c.beginFetch(b)
		}
	}

	fn := c.tqueue[0]
	c.tqueue = c.tqueue[1:]
	fn(c, b)
	c.cycles++
	return true
}

// Step runs one full instruction (every T-state it and its fetch
// sequence take) and returns the total T-states consumed. Only valid
// at an instruction boundary.
func (c *CPU) Step(b Bus) (cyclesSpent int, ok bool) {
	before := c.cycles
	if !c.Tick(b) {
		return 0, false
	}
	for len(c.tqueue) > 0 {
		c.Tick(b)
	}
	return int(c.cycles - before), true
}

// push appends one T-state closure to the in-flight sequence.
func (c *CPU) push(fn func(*CPU, Bus)) {
	c.tqueue = append(c.tqueue, fn)
}

// executeNOPForHalt keeps the refresh cycle running while halted: the
// real chip repeatedly fetches and discards NOPs so R keeps
// incrementing and DRAM refresh doesn't stall. PC stays put. T1 runs
// in the calling Tick; T2-T4 are queued for the next three.
func (c *CPU) executeNOPForHalt(b Bus) {
	c.fetchT1(b)
	c.reg.PC-- // the discarded fetch does not advance PC
	c.cycles++
	c.push(func(c *CPU, b Bus) { c.fetchT2(b) })
	c.push(func(c *CPU, b Bus) { c.fetchT3(b) })
	c.push(func(c *CPU, b Bus) { c.fetchT4(b) })
}

// beginFetch queues the opcode-fetch M-cycle (T1-T4) followed by the
// decode/dispatch step, mirroring mcycles.rs's fetch_t1..t4 plus
// lib.rs's tick() T4 handoff into execute().
func (c *CPU) beginFetch(b Bus) {
	c.push(func(c *CPU, b Bus) { c.fetchT1(b) })
	c.push(func(c *CPU, b Bus) { c.fetchT2(b) })
	c.push(func(c *CPU, b Bus) {
		c.reg.prefixIR = c.fetchT3(b)
	})
	c.push(func(c *CPU, b Bus) {
		c.fetchT4(b)
		c.dispatch(b, c.reg.prefixIR)
	})
}

func undefinedOpcode(c *CPU, b Bus, opcode uint8, table string) {
	log.Printf("[z80] undefined/unimplemented opcode 0x%02X in %s table at PC=0x%04X, treated as NOP", opcode, table, c.prevPC)
}
