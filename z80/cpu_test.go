package z80

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testBus is a flat 64KB memory plus 256 I/O ports, wrapped in a
// SimpleBus for tests.
type testBus struct {
	mem   [65536]uint8
	ports [256]uint8
}

func (b *testBus) MemRead(addr uint16) uint8       { return b.mem[addr] }
func (b *testBus) MemWrite(addr uint16, val uint8) { b.mem[addr] = val }
func (b *testBus) PortRead(port uint8) uint8       { return b.ports[port] }
func (b *testBus) PortWrite(port uint8, val uint8) { b.ports[port] = val }

func newTestCPU() (*CPU, *testBus, *SimpleBus) {
	c := New()
	c.Reset()
	h := &testBus{}
	return c, h, NewSimpleBus(h)
}

func TestStepLDrrAndLDrn(t *testing.T) {
	c, h, bus := newTestCPU()
	h.mem[0] = 0x06 // LD B,0x42
	h.mem[1] = 0x42
	h.mem[2] = 0x48 // LD C,B

	cyc, ok := c.Step(bus)
	require.True(t, ok)
	require.Equal(t, 7, cyc)
	require.Equal(t, uint8(0x42), c.Registers().B)

	cyc, ok = c.Step(bus)
	require.True(t, ok)
	require.Equal(t, 4, cyc)
	require.Equal(t, uint8(0x42), c.Registers().C)
}

func TestStepLDThroughMemory(t *testing.T) {
	c, h, bus := newTestCPU()
	c.SetState(Registers{H: 0x20, L: 0x00, A: 0x99})
	h.mem[0] = 0x77 // LD (HL),A
	h.mem[1] = 0x46 // LD B,(HL)

	cyc, _ := c.Step(bus)
	require.Equal(t, 7, cyc)
	require.Equal(t, uint8(0x99), h.mem[0x2000])

	cyc, _ = c.Step(bus)
	require.Equal(t, 7, cyc)
	require.Equal(t, uint8(0x99), c.Registers().B)
}

func TestTickDrainsOneTStateAtATime(t *testing.T) {
	c, h, bus := newTestCPU()
	h.mem[0] = 0x3A // LD A,(nn) -- 13 T-states, 4 M-cycles
	h.mem[1] = 0x00
	h.mem[2] = 0x30
	h.mem[0x3000] = 0x55

	total := 0
	tStates := 0
	for {
		ok := c.Tick(bus)
		require.True(t, ok)
		total++
		tStates++
		if len(c.tqueue) == 0 {
			break
		}
	}
	require.Equal(t, 13, total)
	require.Equal(t, uint8(0x55), c.Registers().A)
}

func TestRelativeAndAbsoluteJumps(t *testing.T) {
	c, h, bus := newTestCPU()
	h.mem[0] = 0xC3 // JP 0x0010
	h.mem[1] = 0x10
	h.mem[2] = 0x00
	h.mem[0x10] = 0x18 // JR +2
	h.mem[0x11] = 0x02
	h.mem[0x12] = 0x00 // (skipped)
	h.mem[0x13] = 0x00
	h.mem[0x14] = 0x76 // HALT

	c.Step(bus)
	require.EqualValues(t, 0x10, c.Registers().PC)

	cyc, _ := c.Step(bus) // JR +2
	require.Equal(t, 12, cyc)
	require.EqualValues(t, 0x14, c.Registers().PC)

	c.Step(bus)
	require.True(t, c.Halted())
}

func TestCallRetRoundTrip(t *testing.T) {
	c, h, bus := newTestCPU()
	c.SetState(Registers{SP: 0x4000})
	h.mem[0] = 0xCD // CALL 0x0100
	h.mem[1] = 0x00
	h.mem[2] = 0x01
	h.mem[0x100] = 0xC9 // RET

	cyc, _ := c.Step(bus)
	require.Equal(t, 17, cyc)
	require.EqualValues(t, 0x100, c.Registers().PC)
	require.EqualValues(t, 0x3FFE, c.Registers().SP)

	cyc, _ = c.Step(bus)
	require.Equal(t, 10, cyc)
	require.EqualValues(t, 0x0003, c.Registers().PC)
	require.EqualValues(t, 0x4000, c.Registers().SP)
}

func TestPushPopAFRoundTrip(t *testing.T) {
	c, h, bus := newTestCPU()
	c.SetState(Registers{SP: 0x2000, A: 0xAA, F: 0xD7})
	h.mem[0] = 0xF5 // PUSH AF
	h.mem[1] = 0xF1 // POP AF

	c.Step(bus)
	require.EqualValues(t, 0x1FFE, c.Registers().SP)

	c.SetState(Registers{SP: c.Registers().SP, PC: c.Registers().PC})
	c.Step(bus)
	require.Equal(t, uint8(0xAA), c.Registers().A)
	require.Equal(t, uint8(0xD7), c.Registers().F)
}

func TestIndexedLoadFromDisplacedAddress(t *testing.T) {
	c, h, bus := newTestCPU()
	c.SetState(Registers{IX: 0x3000})
	h.mem[0] = 0xDD
	h.mem[1] = 0x7E // LD A,(IX+d)
	h.mem[2] = 0x05
	h.mem[0x3005] = 0x77

	cyc, ok := c.Step(bus)
	require.True(t, ok)
	require.Equal(t, 19, cyc)
	require.Equal(t, uint8(0x77), c.Registers().A)
}

func TestIndexedFallsBackToPlainOpcode(t *testing.T) {
	// DD-prefixed opcodes with no genuine indexed form execute as if
	// the prefix had not appeared.
	c, h, bus := newTestCPU()
	h.mem[0] = 0xDD
	h.mem[1] = 0x00 // NOP
	h.mem[2] = 0x00 // NOP

	cyc, _ := c.Step(bus)
	require.Equal(t, 8, cyc)
	require.EqualValues(t, 2, c.Registers().PC)
}

func TestEIMasksOneInstructionThenAcceptsINT(t *testing.T) {
	c, h, bus := newTestCPU()
	c.SetState(Registers{SP: 0x5000})
	c.SetIM(1)
	h.mem[0] = 0xFB // EI
	h.mem[1] = 0x00 // NOP

	c.Step(bus)
	require.True(t, c.IFF1())

	bus.SetINT(true)
	c.Step(bus) // NOP: still masked by the EI delay
	require.EqualValues(t, 2, c.Registers().PC)

	c.Step(bus) // interrupt now accepted: IM1 pushes PC and jumps to 0x38
	require.EqualValues(t, 0x38, c.Registers().PC)
	require.False(t, c.IFF1())
}

func TestLDIDecrementsBCAndSetsPV(t *testing.T) {
	c, h, bus := newTestCPU()
	c.SetState(Registers{H: 0x10, L: 0x00, D: 0x20, E: 0x00, B: 0x00, C: 0x01})
	h.mem[0x1000] = 0x42
	h.mem[0] = 0xED
	h.mem[1] = 0xA0 // LDI

	cyc, ok := c.Step(bus)
	require.True(t, ok)
	require.Equal(t, 16, cyc)
	require.Equal(t, uint8(0x42), h.mem[0x2000])
	regs := c.Registers()
	require.EqualValues(t, 0x1001, regs.HL())
	require.EqualValues(t, 0x2001, regs.DE())
	require.EqualValues(t, 0x0000, regs.BC())
	require.Zero(t, c.Registers().F&FlagPV, "BC reached zero, PV must clear")
}

func TestUndocumentedAliasesAreWired(t *testing.T) {
	for _, op := range []uint8{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		require.NotNil(t, opcodeTableED[op], "NEG alias 0x%02X should have a handler", op)
	}
}
