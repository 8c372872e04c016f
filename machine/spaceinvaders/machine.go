package spaceinvaders

import (
	"fmt"
	"os"

	"github.com/8bitlab/go-chip8080/i8080"
)

const (
	cpuFreqHz       = 2_000_000
	frameRateHz     = 60
	halfVBlankTicks = (cpuFreqHz / frameRateHz) / 2

	ramSize    = 0x10000
	vramStart  = 0x2400
	vramEnd    = 0x4000
	screenW    = 256
	screenH    = 224
)

// bus wires the CPU's 16-bit address space and 8 I/O ports to ROM/RAM
// and the three support chips, the Go equivalent of the reference
// emulator's bus.rs.
type bus struct {
	mem      [ramSize]uint8
	shiftReg shiftReg
	inputReg inputReg
	soundReg soundReg
}

func (b *bus) MemRead(addr uint16) uint8 { return b.mem[addr] }

func (b *bus) MemWrite(addr uint16, val uint8) {
	if addr < 0x2000 {
		return // ROM is not writable
	}
	b.mem[addr] = val
}

func (b *bus) PortRead(port uint8) uint8 {
	switch port {
	case 1:
		return b.inputReg.readReg1()
	case 2:
		return b.inputReg.readReg2()
	case 3:
		return b.shiftReg.read()
	default:
		return 0
	}
}

func (b *bus) PortWrite(port uint8, val uint8) {
	switch port {
	case 2:
		b.shiftReg.writeAmount(val)
	case 3:
		b.soundReg.SetReg1(val)
	case 4:
		b.shiftReg.write(val)
	case 5:
		b.soundReg.SetReg2(val)
	case 6:
		// Watchdog timer reset; not modeled.
	}
}

// Machine is a complete Space Invaders (1978) arcade board: an 8080
// core, the cabinet's support chips, and the two-interrupts-per-frame
// drive loop real hardware uses (RST 1 at mid-frame, RST 2 at vblank).
type Machine struct {
	cpu      *i8080.CPU
	bus      *bus
	tStates  uint64
	midFrame bool
}

// New loads rom (the concatenation of invaders.h/.g/.f/.e, 8KB total)
// at address 0 and returns a ready-to-run machine.
func New(rom []byte) (*Machine, error) {
	if len(rom) > 0x2000 {
		return nil, fmt.Errorf("spaceinvaders: ROM image is %d bytes, exceeds the 8KB ROM region", len(rom))
	}
	b := &bus{}
	copy(b.mem[:], rom)

	cpu := i8080.New(i8080.Intel8080)
	cpu.Reset()
	return &Machine{cpu: cpu, bus: b}, nil
}

// LoadROMFile reads a ROM image from disk and constructs a Machine.
func LoadROMFile(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spaceinvaders: reading ROM %q: %w", path, err)
	}
	return New(data)
}

// RunFrame advances the machine by exactly one 60Hz video frame,
// delivering the mid-frame and vblank interrupts at the documented
// half-frame boundaries.
func (m *Machine) RunFrame() {
	for i := 0; i < 2; i++ {
		m.runHalfFrame()
	}
}

func (m *Machine) runHalfFrame() {
	// Step returns ok=false while halted with nothing latched in
	// Interrupt's pending-opcode slot (no progress to report); per
	// spec.md §4.4 that's the host's cue to idle its own clock rather
	// than the core's, so the loop charges a nominal 4 T-state idle
	// M-cycle itself and keeps going. This still reaches the tick
	// budget and delivers the interrupt below even while the program
	// sits in an EI;HLT wait loop.
	var ticks uint64
	for ticks < halfVBlankTicks {
		n, ok := m.cpu.Step(m.bus)
		if !ok {
			n = 4
		}
		ticks += uint64(n)
		m.tStates += uint64(n)
	}

	if m.midFrame {
		m.cpu.Interrupt(0xD7) // RST 2
	} else {
		m.cpu.Interrupt(0xCF) // RST 1
	}
	m.midFrame = !m.midFrame
}

// CPU exposes the underlying processor core for debugger attachment.
func (m *Machine) CPU() *i8080.CPU { return m.cpu }

// Step executes a single instruction, bypassing the frame/interrupt
// loop entirely, for single-step debugger use.
func (m *Machine) Step() (cyclesSpent int, ok bool) { return m.cpu.Step(m.bus) }

// Peek reads one byte of the machine's address space, for debugger use.
func (m *Machine) Peek(addr uint16) uint8 { return m.bus.MemRead(addr) }

// Input returns the cabinet's input latches so a host frontend can
// wire up keyboard/joystick events.
func (m *Machine) Input() *inputReg { return &m.bus.inputReg }

// SoundFlags returns the current sound-trigger latch state for a host
// audio frontend to diff against the previous frame's value.
func (m *Machine) SoundFlags() (reg1, reg2 uint8) { return m.bus.soundReg.reg1, m.bus.soundReg.reg2 }

// Framebuffer renders the 256x224 1-bit video RAM into a packed
// row-major RGBA-free bitmap (one byte per pixel, 0 or 0xFF), rotating
// the cabinet's native portrait orientation into landscape the way a
// desktop frontend expects.
func (m *Machine) Framebuffer() []uint8 {
	out := make([]uint8, screenW*screenH)
	for col := 0; col < 32; col++ {
		for row := 0; row < screenH; row++ {
			addr := vramStart + uint16(row)*32 + uint16(col)
			b := m.bus.mem[addr]
			for bit := 0; bit < 8; bit++ {
				if b&(1<<uint(bit)) == 0 {
					continue
				}
				x := row
				y := screenH - 1 - (col*8 + bit)
				out[y*screenW+x] = 0xFF
			}
		}
	}
	return out
}
