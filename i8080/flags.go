package i8080

// The flag functions in this file are pure: given operands and (where
// relevant) the incoming carry, they return the arithmetic result and
// the new F byte. They carry no CPU state and are exercised directly
// by the opcode handlers in ops_*.go.
//
// Ported from the reference flag update routines (update_flag_cy_add,
// update_flag_ac_add, update_flag_cy_sub, update_flag_ac_sub,
// update_flag_s, update_flag_z, update_flag_p and the per-operation
// update_flags_* wrappers): same bit tests, same AC-is-OR-of-operands
// idiom for AND, same CY/AC-cleared convention for OR/XOR.

func flagSZP(v uint8) uint8 {
	var f uint8
	if v&0x80 != 0 {
		f |= FlagS
	}
	if v == 0 {
		f |= FlagZ
	}
	if parityEven(v) {
		f |= FlagP
	}
	return f
}

func parityEven(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

// AddFlags computes a + b (+ carryIn) and the resulting flag byte.
func AddFlags(a, b uint8, carryIn bool) (result uint8, f uint8) {
	var cin uint16
	if carryIn {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + cin
	result = uint8(sum)

	f = flagSZP(result)
	if sum > 0xFF {
		f |= FlagCY
	}
	if (uint16(a&0xF)+uint16(b&0xF)+cin)&0x10 != 0 {
		f |= FlagAC
	}
	return result, canon(f)
}

// SubFlags computes a - b (- carryIn) and the resulting flag byte.
// CY set means a borrow occurred, matching 8080 convention (not x86's
// inverted-carry SUB semantics). AC follows update_flag_ac_sub's
// add-the-two's-complement method: a-b is computed as a+(^b)+1, so AC
// is set when the low nibbles do NOT borrow, the inverse of the
// intuitive "low nibble borrow" test.
func SubFlags(a, b uint8, carryIn bool) (result uint8, f uint8) {
	var cin int
	if carryIn {
		cin = 1
	}
	diff := int(a) - int(b) - cin
	result = uint8(diff)

	f = flagSZP(result)
	if diff < 0 {
		f |= FlagCY
	}
	if int(a&0xF)-int(b&0xF)-cin >= 0 {
		f |= FlagAC
	}
	return result, canon(f)
}

// CmpFlags computes a - b for the purposes of flags only (CMP/CPI);
// the result value itself is discarded by callers.
func CmpFlags(a, b uint8) uint8 {
	_, f := SubFlags(a, b, false)
	return f
}

// AndFlags computes a & b. AC is set using the 8080's quirky
// OR-of-operands-bit-3 rule rather than a real half-carry.
func AndFlags(a, b uint8) (result uint8, f uint8) {
	result = a & b
	f = flagSZP(result)
	if ((a|b)>>3)&1 != 0 {
		f |= FlagAC
	}
	return result, canon(f)
}

// OrFlags computes a | b. CY and AC are always cleared.
func OrFlags(a, b uint8) (result uint8, f uint8) {
	result = a | b
	return result, canon(flagSZP(result))
}

// XorFlags computes a ^ b. CY and AC are always cleared.
func XorFlags(a, b uint8) (result uint8, f uint8) {
	result = a ^ b
	return result, canon(flagSZP(result))
}

// IncFlags computes a+1. CY is preserved from the incoming flags (INR
// never touches CY); AC/S/Z/P reflect the result.
func IncFlags(a uint8, f uint8) (result uint8, newF uint8) {
	result = a + 1
	newF = flagSZP(result)
	if result&0xF == 0 {
		newF |= FlagAC
	}
	if f&FlagCY != 0 {
		newF |= FlagCY
	}
	return result, canon(newF)
}

// DecFlags computes a-1. CY is preserved from the incoming flags. AC
// follows the same two's-complement-subtract convention as SubFlags:
// set whenever the low nibble does not borrow, i.e. whenever a&0xF is
// nonzero.
func DecFlags(a uint8, f uint8) (result uint8, newF uint8) {
	result = a - 1
	newF = flagSZP(result)
	if a&0xF != 0 {
		newF |= FlagAC
	}
	if f&FlagCY != 0 {
		newF |= FlagCY
	}
	return result, canon(newF)
}

// DAA applies the decimal-adjust algorithm to A given the current flags,
// returning the adjusted value and new flags. Ported line-for-line from
// the reference daa() pipeline step.
func DAA(a uint8, f uint8) (result uint8, newF uint8) {
	cy := f&FlagCY != 0
	ac := f&FlagAC != 0

	correction := uint8(0)
	if ac || a&0xF > 9 {
		correction |= 0x06
	}
	if cy || a > 0x99 || (a&0xF0)>>4 > 9 {
		correction |= 0x60
		cy = true
	}

	sum := uint16(a) + uint16(correction)
	result = uint8(sum)

	newF = flagSZP(result)
	if (a&0xF)+(correction&0xF) > 0xF {
		newF |= FlagAC
	}
	if cy {
		newF |= FlagCY
	}
	return result, canon(newF)
}
