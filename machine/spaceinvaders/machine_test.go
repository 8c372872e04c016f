package spaceinvaders

import "testing"

func TestShiftRegWindow(t *testing.T) {
	var s shiftReg
	s.write(0xFF)
	s.write(0x00)
	s.writeAmount(0)
	if got := s.read(); got != 0x00 {
		t.Fatalf("read() = 0x%02X, want 0x00", got)
	}
	s.writeAmount(7)
	if got := s.read(); got != 0x7F {
		t.Fatalf("read() with amnt=7 = 0x%02X, want 0x7F", got)
	}
}

func TestInputRegBits(t *testing.T) {
	var r inputReg
	r.SetCredit(true)
	r.SetShootP1(true)
	if got := r.readReg1(); got != reg1Credit|reg1ShootP1 {
		t.Fatalf("reg1 = 0x%02X, want 0x%02X", got, reg1Credit|reg1ShootP1)
	}
	r.SetCredit(false)
	if got := r.readReg1(); got != reg1ShootP1 {
		t.Fatalf("reg1 after release = 0x%02X, want 0x%02X", got, reg1ShootP1)
	}
}

func TestMachineRunFrameDeliversAlternatingInterrupts(t *testing.T) {
	// Each interrupt vector re-enables interrupts and halts again
	// (EI;HLT), the way a real cabinet ROM's ISR returns to waiting
	// for the next video event rather than falling through. A single
	// RunFrame call runs both halves: it consumes whatever interrupt
	// is already latched (none, the first time), idles, latches RST 1
	// at the mid-frame boundary, immediately consumes that servicing
	// RST 1's EI;HLT handler, then latches RST 2 at the vblank
	// boundary — leaving the CPU parked at RST 1's halt (0x000A, the
	// byte after its HLT) until the next call consumes the RST 2 that
	// was just latched and ends up right back there.
	rom := make([]byte, 0x12)
	rom[0] = 0xFB    // EI
	rom[1] = 0x76    // HLT
	rom[0x08] = 0xFB // EI  (RST 1 handler)
	rom[0x09] = 0x76 // HLT
	rom[0x10] = 0xFB // EI  (RST 2 handler)
	rom[0x11] = 0x76 // HLT
	m, err := New(rom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.cpu.Step(m.bus) // EI
	m.cpu.Step(m.bus) // HLT
	if !m.CPU().Halted() {
		t.Fatal("expected CPU to be halted before RunFrame")
	}

	for i := 0; i < 2; i++ {
		m.RunFrame()
		if pc := m.CPU().Registers().PC; pc != 0x0A {
			t.Fatalf("RunFrame #%d: PC = 0x%04X, want 0x000A (parked after RST 1's EI;HLT)", i+1, pc)
		}
		if !m.CPU().Halted() {
			t.Fatalf("RunFrame #%d: expected CPU to be halted again", i+1)
		}
	}
}
