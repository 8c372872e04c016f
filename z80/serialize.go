package z80

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// serializeVersion guards the wire format so a saved state from an
// older build is rejected instead of silently misread.
const serializeVersion uint8 = 1

// Serialize encodes the full programmer-visible state (both register
// banks, index registers, I/R, WZ, IFF1/IFF2, interrupt mode, halt)
// into a byte slice, big-endian, version-prefixed like the i8080
// package's serialize.go. In-flight T-state queue state is
// intentionally excluded: snapshots are only valid at instruction
// boundaries.
func (c *CPU) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteByte(serializeVersion)

	for _, f := range []uint8{
		c.reg.A, c.reg.F, c.reg.B, c.reg.C, c.reg.D, c.reg.E, c.reg.H, c.reg.L,
		c.reg.A_, c.reg.F_, c.reg.B_, c.reg.C_, c.reg.D_, c.reg.E_, c.reg.H_, c.reg.L_,
		c.reg.I, c.reg.R, c.reg.W, c.reg.Z,
	} {
		buf.WriteByte(f)
	}
	binary.Write(&buf, binary.BigEndian, c.reg.IX)
	binary.Write(&buf, binary.BigEndian, c.reg.IY)
	binary.Write(&buf, binary.BigEndian, c.reg.SP)
	binary.Write(&buf, binary.BigEndian, c.reg.PC)

	buf.WriteByte(boolBit(c.iff1))
	buf.WriteByte(boolBit(c.iff2))
	buf.WriteByte(c.im)
	buf.WriteByte(boolBit(c.halted))
	binary.Write(&buf, binary.BigEndian, c.cycles)

	return buf.Bytes()
}

// Deserialize restores state written by Serialize. On error the CPU
// is left untouched.
func (c *CPU) Deserialize(data []byte) error {
	r := bytes.NewReader(data)

	var version uint8
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return fmt.Errorf("z80: reading version: %w", err)
	}
	if version != serializeVersion {
		return fmt.Errorf("z80: unsupported serialize version %d", version)
	}

	var reg Registers
	fields := []*uint8{
		&reg.A, &reg.F, &reg.B, &reg.C, &reg.D, &reg.E, &reg.H, &reg.L,
		&reg.A_, &reg.F_, &reg.B_, &reg.C_, &reg.D_, &reg.E_, &reg.H_, &reg.L_,
		&reg.I, &reg.R, &reg.W, &reg.Z,
	}
	for _, f := range fields {
		if err := binary.Read(r, binary.BigEndian, f); err != nil {
			return fmt.Errorf("z80: reading registers: %w", err)
		}
	}
	if err := binary.Read(r, binary.BigEndian, &reg.IX); err != nil {
		return fmt.Errorf("z80: reading IX: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &reg.IY); err != nil {
		return fmt.Errorf("z80: reading IY: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &reg.SP); err != nil {
		return fmt.Errorf("z80: reading SP: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &reg.PC); err != nil {
		return fmt.Errorf("z80: reading PC: %w", err)
	}

	var iff1, iff2, im, halted uint8
	if err := binary.Read(r, binary.BigEndian, &iff1); err != nil {
		return fmt.Errorf("z80: reading IFF1: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &iff2); err != nil {
		return fmt.Errorf("z80: reading IFF2: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &im); err != nil {
		return fmt.Errorf("z80: reading interrupt mode: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &halted); err != nil {
		return fmt.Errorf("z80: reading halt state: %w", err)
	}
	var cycles uint64
	if err := binary.Read(r, binary.BigEndian, &cycles); err != nil {
		return fmt.Errorf("z80: reading cycle count: %w", err)
	}

	c.reg = reg
	c.iff1 = iff1 != 0
	c.iff2 = iff2 != 0
	c.im = im
	c.halted = halted != 0
	c.cycles = cycles
	c.tqueue = nil
	c.justAteEI = false
	return nil
}
