package i8080

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// serializeVersion guards the wire format so a saved state from an
// older build is rejected instead of silently misread.
const serializeVersion uint8 = 1

// Serialize encodes the full programmer-visible and micro-architectural
// state (variant, registers, interrupt enable, halt, cycle count) into
// a byte slice, big-endian, version-prefixed.
func (c *CPU) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteByte(serializeVersion)
	buf.WriteByte(uint8(c.Variant))

	binary.Write(&buf, binary.BigEndian, c.reg.A)
	binary.Write(&buf, binary.BigEndian, c.reg.B)
	binary.Write(&buf, binary.BigEndian, c.reg.C)
	binary.Write(&buf, binary.BigEndian, c.reg.D)
	binary.Write(&buf, binary.BigEndian, c.reg.E)
	binary.Write(&buf, binary.BigEndian, c.reg.H)
	binary.Write(&buf, binary.BigEndian, c.reg.L)
	binary.Write(&buf, binary.BigEndian, c.reg.F)
	binary.Write(&buf, binary.BigEndian, c.reg.SP)
	binary.Write(&buf, binary.BigEndian, c.reg.PC)
	binary.Write(&buf, binary.BigEndian, c.reg.W)
	binary.Write(&buf, binary.BigEndian, c.reg.Z)

	buf.WriteByte(uint8(c.ie))
	buf.WriteByte(boolBit(c.halted))
	binary.Write(&buf, binary.BigEndian, c.cycles)

	return buf.Bytes()
}

// Deserialize restores state written by Serialize. It never returns a
// half-applied state: on error the CPU is left untouched. In-flight
// pipeline state is intentionally not part of the wire format — callers
// must only snapshot/restore at instruction boundaries.
func (c *CPU) Deserialize(data []byte) error {
	r := bytes.NewReader(data)

	var version, variant uint8
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return fmt.Errorf("i8080: reading version: %w", err)
	}
	if version != serializeVersion {
		return fmt.Errorf("i8080: unsupported serialize version %d", version)
	}
	if err := binary.Read(r, binary.BigEndian, &variant); err != nil {
		return fmt.Errorf("i8080: reading variant: %w", err)
	}

	var reg Registers
	for _, field := range []*uint8{&reg.A, &reg.B, &reg.C, &reg.D, &reg.E, &reg.H, &reg.L, &reg.F} {
		if err := binary.Read(r, binary.BigEndian, field); err != nil {
			return fmt.Errorf("i8080: reading registers: %w", err)
		}
	}
	if err := binary.Read(r, binary.BigEndian, &reg.SP); err != nil {
		return fmt.Errorf("i8080: reading SP: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &reg.PC); err != nil {
		return fmt.Errorf("i8080: reading PC: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &reg.W); err != nil {
		return fmt.Errorf("i8080: reading W: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &reg.Z); err != nil {
		return fmt.Errorf("i8080: reading Z: %w", err)
	}

	var ie, halted uint8
	if err := binary.Read(r, binary.BigEndian, &ie); err != nil {
		return fmt.Errorf("i8080: reading interrupt state: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &halted); err != nil {
		return fmt.Errorf("i8080: reading halt state: %w", err)
	}
	var cycles uint64
	if err := binary.Read(r, binary.BigEndian, &cycles); err != nil {
		return fmt.Errorf("i8080: reading cycle count: %w", err)
	}

	c.Variant = Variant(variant)
	c.reg = reg
	c.ie = IntEnable(ie)
	c.halted = halted != 0
	c.cycles = cycles
	c.pipeline = nil
	c.pendingOpcode = nil
	c.injectedOpcode = nil
	return nil
}
