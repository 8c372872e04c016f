package i8080

import "log"

// microOp is one machine cycle of an in-flight instruction: a bus
// action (or pure internal delay) plus its T-state cost. CPU.pipeline
// is a FIFO of these, built by an opcode handler and drained one per
// Tick call — the Go rendering of the reference emulator's
// pipeline.push_back(|cpu| ...) closure queue.
type microOp struct {
	tStates int
	fn      func(*CPU, Bus)
}

// CPU is the Intel 8080/8085 processor core.
type CPU struct {
	Variant Variant

	reg    Registers
	cycles uint64

	timing *TimingOverride

	ie             IntEnable
	pendingOpcode  *uint8 // latched by Interrupt(), consumed at the next boundary
	injectedOpcode *uint8 // substituted for the next memory fetch this boundary

	halted bool

	pipeline []microOp

	prevPC uint16 // PC of the instruction currently/most-recently in flight
}

// New creates a CPU for the given variant. Registers are left zeroed;
// call Reset or SetState before running.
func New(variant Variant) *CPU {
	return &CPU{Variant: variant}
}

// Reset performs a power-on-equivalent reset: PC=0, interrupts
// disabled, halt cleared. Other registers are left as-is, matching
// the 8080/8085 reset pin (which only guarantees PC=0 and INTE=0).
func (c *CPU) Reset() {
	c.reg.PC = 0
	c.ie = IntDisabled
	c.halted = false
	c.pendingOpcode = nil
	c.injectedOpcode = nil
	c.pipeline = nil
	c.cycles = 0
}

// Registers returns a copy of the programmer-visible register file.
func (c *CPU) Registers() Registers { return c.reg }

// SetState installs an exact register state, for test harnesses. It
// does not touch interrupt/halt state so a test can separately arrange
// those.
func (c *CPU) SetState(r Registers) {
	c.reg = r
	c.reg.F = canon(c.reg.F)
}

// Halted reports whether the CPU executed HLT and has not since
// received an interrupt.
func (c *CPU) Halted() bool { return c.halted }

// IntEnableState exposes the tri-valued interrupt state, mainly for
// serialize.go and debugger use.
func (c *CPU) IntEnableState() IntEnable { return c.ie }

// Cycles returns the running T-state count since the last Reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// SetTimingOverride installs a per-opcode M1 fetch-cost override
// loaded via LoadTimingOverride, or clears it if t is nil. Intended
// for bring-up of a second-source part whose documented timing
// differs from the built-in table.
func (c *CPU) SetTimingOverride(t *TimingOverride) { c.timing = t }

// Tick advances the CPU by exactly one machine cycle: either the
// fetch/decode M-cycle that starts a new instruction, or the next
// queued M-cycle of an instruction already in flight. While halted,
// tick consumes an idle M-cycle and advances no other state, unless no
// interrupt is pending either, in which case ok is false (the host's
// signal that the core is making no progress and the clock may idle).
func (c *CPU) Tick(b Bus) (cyclesSpent int, ok bool) {
	if len(c.pipeline) == 0 {
		c.acceptInterrupt()
		if c.halted {
			if c.pendingOpcode == nil {
				return 0, false
			}
			c.cycles += 4
			return 4, true
		}
		before := c.cycles
		c.fetchAndDispatch(b)
		return int(c.cycles - before), true
	}

	op := c.pipeline[0]
	c.pipeline = c.pipeline[1:]
	op.fn(c, b)
	c.cycles += uint64(op.tStates)
	return op.tStates, true
}

// Step runs one full instruction (the fetch plus every queued M-cycle
// it generates) and returns the total T-states consumed. It is only
// valid to call at an instruction boundary.
func (c *CPU) Step(b Bus) (cyclesSpent int, ok bool) {
	n, ok := c.Tick(b)
	total := n
	for len(c.pipeline) > 0 {
		n, _ := c.Tick(b)
		total += n
	}
	return total, ok
}

// fetchAndDispatch performs the opcode-fetch M-cycle and hands off to
// the decoded handler, which pushes any remaining M-cycles onto the
// pipeline.
func (c *CPU) fetchAndDispatch(b Bus) {
	var opcode uint8
	if c.injectedOpcode != nil {
		opcode = *c.injectedOpcode
		c.injectedOpcode = nil
	} else {
		opcode = b.MemRead(c.reg.PC)
		c.prevPC = c.reg.PC
		c.reg.PC++
	}
	c.cycles += uint64(c.timing.tstatesFor(opcode)) // M1: opcode fetch, 4 T-states on both 8080 and 8085 unless overridden

	handler := opcodeTable[opcode]
	if handler == nil {
		undefinedOpcode(c, b, opcode)
		return
	}
	handler(c, b)
}

// push appends one machine cycle to the in-flight instruction's queue.
func (c *CPU) push(tStates int, fn func(*CPU, Bus)) {
	c.pipeline = append(c.pipeline, microOp{tStates: tStates, fn: fn})
}

func undefinedOpcode(c *CPU, b Bus, opcode uint8) {
	log.Printf("[i8080] undefined opcode 0x%02X at PC=0x%04X, treated as NOP", opcode, c.prevPC)
}
