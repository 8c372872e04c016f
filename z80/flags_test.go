package z80

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddFlagsOverflowCarry(t *testing.T) {
	result, f := AddFlags(0xFF, 0x01, false)
	require.Equal(t, uint8(0x00), result)
	require.NotZero(t, f&FlagZ)
	require.NotZero(t, f&FlagCY)
	require.NotZero(t, f&FlagH)
}

func TestSubFlagsSetsN(t *testing.T) {
	result, f := SubFlags(0x00, 0x01, false)
	require.Equal(t, uint8(0xFF), result)
	require.NotZero(t, f&FlagN)
	require.NotZero(t, f&FlagCY)
	require.NotZero(t, f&FlagS)
}

func TestCmpFlagsTakesXYFromOperand(t *testing.T) {
	// CP's undocumented X/Y come from the compared operand, not the
	// (discarded) subtraction result.
	f := CmpFlags(0x00, 0x28)
	require.NotZero(t, f&FlagX)
	require.NotZero(t, f&FlagY)
}

func TestAndFlagsAlwaysSetsH(t *testing.T) {
	_, f := AndFlags(0x00, 0x00)
	require.NotZero(t, f&FlagH)
}

func TestIncDecPreserveCarryAndSetOverflow(t *testing.T) {
	result, f := IncFlags(0x7F, FlagCY)
	require.Equal(t, uint8(0x80), result)
	require.NotZero(t, f&FlagCY, "INC must not touch CY")
	require.NotZero(t, f&FlagPV, "INC 0x7F overflows into negative")

	result, f = DecFlags(0x80, FlagCY)
	require.Equal(t, uint8(0x7F), result)
	require.NotZero(t, f&FlagCY, "DEC must not touch CY")
	require.NotZero(t, f&FlagPV, "DEC 0x80 overflows into positive")
}

func TestAdd16FlagsLeavesSZPVUntouched(t *testing.T) {
	preserved := FlagZ | FlagS | FlagPV
	result, f := Add16Flags(0xFFFF, 0x0001, preserved)
	require.Equal(t, uint16(0x0000), result)
	require.NotZero(t, f&FlagCY)
	require.NotZero(t, f&FlagZ, "ADD HL,ss must not touch Z")
	require.NotZero(t, f&FlagS, "ADD HL,ss must not touch S")
	require.NotZero(t, f&FlagPV, "ADD HL,ss must not touch PV")
}

func TestAdc16FlagsSetsFullSet(t *testing.T) {
	result, f := Adc16Flags(0xFFFF, 0x0000, true)
	require.Equal(t, uint16(0x0000), result)
	require.NotZero(t, f&FlagZ)
	require.NotZero(t, f&FlagCY)
}

func TestSbc16FlagsAlwaysSetsN(t *testing.T) {
	_, f := Sbc16Flags(0x0000, 0x0000, false)
	require.NotZero(t, f&FlagN)
	require.NotZero(t, f&FlagZ)
}

func TestDAAAfterAddWraps(t *testing.T) {
	// Same case spec.md calls out for the 8080 DAA: A=0x9A with no
	// carries in wraps to zero and sets CY on the add path (N clear).
	result, f := daa(0x9A, 0)
	require.Equal(t, uint8(0x00), result)
	require.NotZero(t, f&FlagCY)
	require.NotZero(t, f&FlagZ)
}

func TestDAASubtractPathCorrectsDownward(t *testing.T) {
	// N set selects the subtract-direction correction table; without
	// it this would (wrongly) add 0x66 instead of subtracting it.
	result, f := daa(0x00, FlagN|FlagH|FlagCY)
	require.Equal(t, uint8(0x9A), result)
	require.NotZero(t, f&FlagCY)
	require.NotZero(t, f&FlagN)
}

func TestCPLSetsHAndNLeavesOtherFlags(t *testing.T) {
	c := New()
	c.reg.A = 0x5A
	c.reg.F = FlagS | FlagZ | FlagCY
	opcodeTable[0x2F](c, nil)
	require.Equal(t, uint8(0xA5), c.reg.A)
	require.NotZero(t, c.reg.F&FlagH)
	require.NotZero(t, c.reg.F&FlagN)
	require.NotZero(t, c.reg.F&FlagS, "CPL must not touch S")
	require.NotZero(t, c.reg.F&FlagCY, "CPL must not touch CY")
}

func TestSCFSetsCarryClearsHAndN(t *testing.T) {
	c := New()
	c.reg.F = FlagH | FlagN | FlagZ
	opcodeTable[0x37](c, nil)
	require.NotZero(t, c.reg.F&FlagCY)
	require.Zero(t, c.reg.F&FlagH)
	require.Zero(t, c.reg.F&FlagN)
	require.NotZero(t, c.reg.F&FlagZ, "SCF must not touch Z")
}

func TestCCFInvertsCarryAndCopiesItToH(t *testing.T) {
	c := New()
	c.reg.F = FlagCY | FlagZ
	opcodeTable[0x3F](c, nil)
	require.Zero(t, c.reg.F&FlagCY, "CCF must invert CY")
	require.NotZero(t, c.reg.F&FlagH, "CCF copies the old CY into H")
	require.NotZero(t, c.reg.F&FlagZ, "CCF must not touch Z")

	opcodeTable[0x3F](c, nil)
	require.NotZero(t, c.reg.F&FlagCY, "a second CCF flips CY back")
	require.Zero(t, c.reg.F&FlagH)
}
