// Package i8080 implements the Intel 8080 and Intel 8085 CPUs.
//
// Both processors share a register file, instruction set and flag
// behaviour; the 8085 adds a handful of timing differences which the
// Variant field on CPU selects between. The 8085's RIM/SIM opcodes are
// not implemented: 0x20 and 0x30 run as NOP on both variants.
package i8080

// Flag bit positions within the F register. Bits 1, 3 and 5 are fixed
// (1, 0, 0 respectively) on every real chip and are kept that way by
// canon.
const (
	FlagCY uint8 = 1 << 0
	flagB1 uint8 = 1 << 1 // always 1
	FlagP  uint8 = 1 << 2
	flagB3 uint8 = 1 << 3 // always 0
	FlagAC uint8 = 1 << 4
	flagB5 uint8 = 1 << 5 // always 0
	FlagZ  uint8 = 1 << 6
	FlagS  uint8 = 1 << 7
)

// Variant selects between Intel 8080 and Intel 8085 timing and opcode
// differences. The instruction semantics and flag behaviour are
// identical; only a small number of cycle counts differ.
type Variant uint8

const (
	Intel8080 Variant = iota
	Intel8085
)

// Registers holds the programmer-visible state of the 8080/8085.
type Registers struct {
	A, B, C, D, E, H, L uint8
	SP, PC              uint16
	F                   uint8 // canonical S Z 0 AC 0 P 1 CY byte

	// W, Z are internal scratch latches used while resolving an
	// instruction's address or immediate operand (mirrors the WZ
	// register pair present on the real die). They are not
	// programmer-addressable but are exposed for debugger/serialize use.
	W, Z uint8
}

// BC returns the BC register pair.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// SetBC sets the BC register pair.
func (r *Registers) SetBC(v uint16) { r.B = uint8(v >> 8); r.C = uint8(v) }

// DE returns the DE register pair.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// SetDE sets the DE register pair.
func (r *Registers) SetDE(v uint16) { r.D = uint8(v >> 8); r.E = uint8(v) }

// HL returns the HL register pair.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetHL sets the HL register pair.
func (r *Registers) SetHL(v uint16) { r.H = uint8(v >> 8); r.L = uint8(v) }

// WZ returns the internal scratch pair.
func (r *Registers) WZ() uint16 { return uint16(r.W)<<8 | uint16(r.Z) }

// SetWZ sets the internal scratch pair.
func (r *Registers) SetWZ(v uint16) { r.W = uint8(v >> 8); r.Z = uint8(v) }

// PSW returns the A:F pair as pushed by PUSH PSW.
func (r *Registers) PSW() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// SetPSW sets A and F from a popped PSW, canonicalizing F's fixed bits.
func (r *Registers) SetPSW(v uint16) {
	r.A = uint8(v >> 8)
	r.F = canon(uint8(v))
}

// canon forces F's fixed bits to their hardwired values: bit1 set,
// bit3 and bit5 clear.
func canon(f uint8) uint8 {
	return (f | flagB1) &^ (flagB3 | flagB5)
}

// regPointer maps a 3-bit register-select field to a register pointer,
// per the 8080 opcode encoding: B C D E H L (HL) A.
func (r *Registers) regPointer(idx uint8) *uint8 {
	switch idx & 7 {
	case 0:
		return &r.B
	case 1:
		return &r.C
	case 2:
		return &r.D
	case 3:
		return &r.E
	case 4:
		return &r.H
	case 5:
		return &r.L
	case 7:
		return &r.A
	}
	return nil // index 6 is (HL), handled by the caller
}
