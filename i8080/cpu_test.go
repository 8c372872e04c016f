package i8080

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testBus is a flat 64KB memory plus 256 I/O ports, for tests.
type testBus struct {
	mem   [65536]uint8
	ports [256]uint8
}

func (b *testBus) MemRead(addr uint16) uint8       { return b.mem[addr] }
func (b *testBus) MemWrite(addr uint16, val uint8) { b.mem[addr] = val }
func (b *testBus) PortRead(port uint8) uint8       { return b.ports[port] }
func (b *testBus) PortWrite(port uint8, val uint8) { b.ports[port] = val }

func newTestCPU() (*CPU, *testBus) {
	c := New(Intel8080)
	c.Reset()
	return c, &testBus{}
}

func TestStepMVIandMOV(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0] = 0x06 // MVI B,0x42
	bus.mem[1] = 0x42
	bus.mem[2] = 0x48 // MOV C,B

	cyc, ok := c.Step(bus)
	require.True(t, ok)
	require.Equal(t, 7, cyc)
	require.Equal(t, uint8(0x42), c.Registers().B)

	_, ok = c.Step(bus)
	require.True(t, ok)
	require.Equal(t, uint8(0x42), c.Registers().C)
}

func TestStepMOVThroughMemory(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(Registers{H: 0x20, L: 0x00, A: 0x99})
	bus.mem[0] = 0x77 // MOV M,A
	bus.mem[1] = 0x46 // MOV B,M

	cyc, _ := c.Step(bus)
	require.Equal(t, 7, cyc)
	require.Equal(t, uint8(0x99), bus.mem[0x2000])

	cyc, _ = c.Step(bus)
	require.Equal(t, 7, cyc)
	require.Equal(t, uint8(0x99), c.Registers().B)
}

func TestTickDrainsOneMCycleAtATime(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0] = 0x3A // LDA addr (13 T-states, 4 M-cycles)
	bus.mem[1] = 0x00
	bus.mem[2] = 0x30
	bus.mem[0x3000] = 0x55

	total := 0
	mCycles := 0
	for {
		n, ok := c.Tick(bus)
		require.True(t, ok)
		total += n
		mCycles++
		if len(c.pipeline) == 0 {
			break
		}
	}
	require.Equal(t, 13, total)
	require.Equal(t, 4, mCycles)
	require.Equal(t, uint8(0x55), c.Registers().A)
}

func TestJumpAndConditionalCall(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0] = 0xC3 // JMP 0x0010
	bus.mem[1] = 0x10
	bus.mem[2] = 0x00
	bus.mem[0x10] = 0xCC // CZ 0x0020 (Z is clear initially, so not taken)
	bus.mem[0x11] = 0x20
	bus.mem[0x12] = 0x00
	bus.mem[0x13] = 0x76 // HLT

	c.Step(bus)
	require.EqualValues(t, 0x10, c.Registers().PC)

	cyc, _ := c.Step(bus) // CZ not taken
	require.Equal(t, 11, cyc)
	require.EqualValues(t, 0x13, c.Registers().PC)

	c.Step(bus) // HLT
	require.True(t, c.Halted())
}

func TestCallRetRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(Registers{SP: 0x4000})
	bus.mem[0] = 0xCD // CALL 0x0100
	bus.mem[1] = 0x00
	bus.mem[2] = 0x01
	bus.mem[0x100] = 0xC9 // RET

	cyc, _ := c.Step(bus)
	require.Equal(t, 17, cyc)
	require.EqualValues(t, 0x100, c.Registers().PC)
	require.EqualValues(t, 0x3FFE, c.Registers().SP)

	cyc, _ = c.Step(bus)
	require.Equal(t, 10, cyc)
	require.EqualValues(t, 0x0003, c.Registers().PC)
	require.EqualValues(t, 0x4000, c.Registers().SP)
}

func TestPushPopPSWRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(Registers{SP: 0x2000, A: 0xAA, F: 0xD7})
	bus.mem[0] = 0xF5 // PUSH PSW
	bus.mem[1] = 0xF1 // POP PSW

	c.Step(bus)
	require.EqualValues(t, 0x1FFE, c.Registers().SP)

	c.SetState(Registers{SP: c.Registers().SP, PC: c.Registers().PC})
	c.Step(bus)
	require.Equal(t, uint8(0xAA), c.Registers().A)
	require.Equal(t, uint8(0xD7), c.Registers().F)
}

func TestInterruptInjectionAfterEI(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(Registers{SP: 0x5000})
	bus.mem[0] = 0xFB // EI
	bus.mem[1] = 0x00 // NOP (the one instruction after EI still runs masked)

	c.Step(bus) // EI: ie becomes EnablePending
	require.Equal(t, IntEnablePending, c.IntEnableState())

	c.Interrupt(0xFF) // RST 7 opcode, latched but not yet enabled
	c.Step(bus)        // NOP: promotes EnablePending -> Enabled
	require.Equal(t, IntEnabled, c.IntEnableState())

	// Next boundary: interrupt should now be accepted and RST 7 injected.
	_, ok := c.Tick(bus)
	require.True(t, ok)
	for len(c.pipeline) > 0 {
		c.Tick(bus)
	}
	require.EqualValues(t, 0x38, c.Registers().PC)
}

func TestUndocumentedOpcodeAliasesAreWired(t *testing.T) {
	for _, op := range []uint8{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xCB, 0xD9, 0xDD, 0xED, 0xFD} {
		require.NotNil(t, opcodeTable[op], "opcode 0x%02X should have a handler", op)
	}
}
