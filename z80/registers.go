// Package z80 implements the Zilog Z80 CPU at T-state granularity,
// driving a pin-level bus handler.
package z80

// Flag bit positions within F / F'. Z80 exposes all eight bits of the
// flag register to software (unlike the 8080's three fixed bits);
// bits 3 and 5 are the undocumented "X" and "Y" flags, typically
// copied from the corresponding bits of the ALU result or WZ.
const (
	FlagCY uint8 = 1 << 0
	FlagN  uint8 = 1 << 1
	FlagPV uint8 = 1 << 2
	FlagX  uint8 = 1 << 3
	FlagH  uint8 = 1 << 4
	FlagY  uint8 = 1 << 5
	FlagZ  uint8 = 1 << 6
	FlagS  uint8 = 1 << 7
)

// Registers holds the full programmer-visible Z80 register file,
// including the alternate set, index registers, and the internal
// WZ (MEMPTR) and R-prefix scratch latches.
type Registers struct {
	A, F                uint8
	B, C, D, E, H, L    uint8
	A_, F_              uint8
	B_, C_, D_, E_, H_, L_ uint8

	IX, IY uint16
	SP, PC uint16

	I uint8 // interrupt vector base
	R uint8 // memory refresh counter, 7-bit wrap + high bit preserved

	W, Z uint8 // WZ / MEMPTR: internal address scratch

	// prefixIR latches the instruction byte a DD/FD/ED/CB prefix
	// introduces, for disassembly/debugger use.
	prefixIR uint8
}

func (r *Registers) BC() uint16  { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16  { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16  { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) AF() uint16  { return uint16(r.A)<<8 | uint16(r.F) }
func (r *Registers) WZ() uint16  { return uint16(r.W)<<8 | uint16(r.Z) }

func (r *Registers) SetBC(v uint16) { r.B = uint8(v >> 8); r.C = uint8(v) }
func (r *Registers) SetDE(v uint16) { r.D = uint8(v >> 8); r.E = uint8(v) }
func (r *Registers) SetHL(v uint16) { r.H = uint8(v >> 8); r.L = uint8(v) }
func (r *Registers) SetAF(v uint16) { r.A = uint8(v >> 8); r.F = uint8(v) }
func (r *Registers) SetWZ(v uint16) { r.W = uint8(v >> 8); r.Z = uint8(v) }

// ExxSwap exchanges BC/DE/HL with their alternates (the EXX instruction).
func (r *Registers) ExxSwap() {
	r.B, r.B_ = r.B_, r.B
	r.C, r.C_ = r.C_, r.C
	r.D, r.D_ = r.D_, r.D
	r.E, r.E_ = r.E_, r.E
	r.H, r.H_ = r.H_, r.H
	r.L, r.L_ = r.L_, r.L
}

// ExAFSwap exchanges AF with AF' (the EX AF,AF' instruction).
func (r *Registers) ExAFSwap() {
	r.A, r.A_ = r.A_, r.A
	r.F, r.F_ = r.F_, r.F
}

// bumpR increments the refresh counter's low 7 bits, wrapping without
// touching bit 7 (which software sets via LD R,A).
func (r *Registers) bumpR() {
	r.R = (r.R & 0x80) | ((r.R + 1) & 0x7F)
}
