package i8080

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddFlagsOverflowCarry(t *testing.T) {
	result, f := AddFlags(0xFF, 0x01, false)
	require.Equal(t, uint8(0x00), result)
	require.NotZero(t, f&FlagZ)
	require.NotZero(t, f&FlagCY)
	require.NotZero(t, f&FlagAC)
}

func TestSubFlagsBorrow(t *testing.T) {
	// The spec's SUI 0x01 worked example: A=0x00 borrows into CY but the
	// low-nibble two's-complement-add carries out, so AC stays clear.
	result, f := SubFlags(0x00, 0x01, false)
	require.Equal(t, uint8(0xFF), result)
	require.NotZero(t, f&FlagCY)
	require.NotZero(t, f&FlagS)
	require.Zero(t, f&FlagAC)
}

func TestSubFlagsACSetWhenLowNibbleDoesNotBorrow(t *testing.T) {
	// 0x10 - 0x01: low nibbles 0x0-0x1 borrow, so by the two's-complement
	// convention AC is clear; 0x11 - 0x01 does not borrow, so AC is set.
	_, f := SubFlags(0x10, 0x01, false)
	require.Zero(t, f&FlagAC)

	_, f = SubFlags(0x11, 0x01, false)
	require.NotZero(t, f&FlagAC)
}

func TestAndFlagsACIdiom(t *testing.T) {
	// AC on 8080's ANA is set from bit 3 of (a|b), not a real half-carry.
	_, f := AndFlags(0x08, 0x00)
	require.NotZero(t, f&FlagAC)

	_, f = AndFlags(0x00, 0x00)
	require.Zero(t, f&FlagAC)
}

func TestOrXorClearCarryAndAux(t *testing.T) {
	_, f := OrFlags(0xFF, 0xFF)
	require.Zero(t, f&FlagCY)
	require.Zero(t, f&FlagAC)

	_, f = XorFlags(0xFF, 0x0F)
	require.Zero(t, f&FlagCY)
	require.Zero(t, f&FlagAC)
}

func TestFlagByteCanonicalBits(t *testing.T) {
	_, f := AddFlags(1, 1, false)
	require.NotZero(t, f&flagB1, "bit 1 must always read as 1")
	require.Zero(t, f&flagB3, "bit 3 must always read as 0")
	require.Zero(t, f&flagB5, "bit 5 must always read as 0")
}

func TestDAAClassic9A(t *testing.T) {
	// A=0x9A with no carry/AC in: both nibbles need +6, producing 0x00
	// with CY set (the textbook DAA worked example).
	result, f := DAA(0x9A, 0)
	require.Equal(t, uint8(0x00), result)
	require.NotZero(t, f&FlagCY)
	require.NotZero(t, f&FlagZ)
}

func TestIncDecPreserveCarry(t *testing.T) {
	_, f := IncFlags(0xFF, FlagCY)
	require.NotZero(t, f&FlagCY, "INR must not touch CY")
	require.NotZero(t, f&FlagZ)

	_, f = DecFlags(0x00, FlagCY)
	require.NotZero(t, f&FlagCY, "DCR must not touch CY")
}

func TestDecFlagsACSetWhenLowNibbleNonzero(t *testing.T) {
	// a&0xF == 0 means DCR borrows out of the low nibble, so AC clears;
	// a&0xF != 0 means no borrow, so AC sets (two's-complement convention).
	_, f := DecFlags(0x10, 0)
	require.Zero(t, f&FlagAC)

	_, f = DecFlags(0x11, 0)
	require.NotZero(t, f&FlagAC)
}
