// Package corpus runs the two standard conformance suites used to
// validate an 8080/8085/Z80 core against real silicon: CP/M-hosted
// COM-file test programs for the i8080 family, and per-opcode JSON
// single-step tests for the Z80.
package corpus

import (
	"fmt"

	"github.com/8bitlab/go-chip8080/i8080"
)

// ComResult reports the outcome of running one CP/M-hosted COM test
// program to completion.
type ComResult struct {
	Name    string
	Passed  bool
	Output  string
	Cycles  uint64
	Aborted bool // true if the run hit the instruction cap without returning to CP/M
}

// comBus loads a COM file at 0x0100 (the standard CP/M TPA load
// address). RunComTest recognizes PC reaching 0x0000 (CP/M's warm-boot
// vector, where a test program's closing RET lands) directly, rather
// than modeling warm boot as executable code. The BDOS entry point at
// 0x0005 is intercepted the same way, before any instruction there
// executes.
type comBus struct {
	mem [65536]uint8
}

func newComBus(image []byte) *comBus {
	b := &comBus{}
	copy(b.mem[0x100:], image)
	return b
}

func (b *comBus) MemRead(addr uint16) uint8       { return b.mem[addr] }
func (b *comBus) MemWrite(addr uint16, val uint8) { b.mem[addr] = val }
func (b *comBus) PortRead(port uint8) uint8       { return 0 }
func (b *comBus) PortWrite(port uint8, val uint8) {}

// RunComTest loads image (a .COM file body) at 0x0100 on a fresh
// 8080 and runs it to completion, servicing the CP/M BDOS console
// calls the classic test suites (TST8080, CPUTEST, 8080PRE, 8080EXM)
// use to report PASS/FAIL. maxInstructions bounds a runaway program.
// timing may be nil to run with the built-in opcode timing.
func RunComTest(name string, image []byte, maxInstructions int, timing *i8080.TimingOverride) ComResult {
	bus := newComBus(image)
	cpu := i8080.New(i8080.Intel8080)
	cpu.SetTimingOverride(timing)
	cpu.Reset()
	cpu.SetState(i8080.Registers{PC: 0x0100, SP: 0xF000})

	var out []byte
	var cycles uint64
	returned := false
	for i := 0; i < maxInstructions; i++ {
		pc := cpu.Registers().PC
		if pc == 0x0005 {
			// BDOS dispatch: function number in C.
			reg := cpu.Registers()
			switch reg.C {
			case 2:
				out = append(out, reg.E)
			case 9:
				addr := reg.DE()
				for {
					ch := bus.MemRead(addr)
					if ch == '$' {
						break
					}
					out = append(out, ch)
					addr++
				}
			}
			// Pop the return address CALL 0x0005 pushed and resume there.
			lo := bus.MemRead(reg.SP)
			hi := bus.MemRead(reg.SP + 1)
			cpu.SetState(i8080.Registers{
				A: reg.A, B: reg.B, C: reg.C, D: reg.D, E: reg.E, H: reg.H, L: reg.L, F: reg.F,
				SP: reg.SP + 2, PC: uint16(hi)<<8 | uint16(lo), W: reg.W, Z: reg.Z,
			})
			continue
		}
		if pc == 0x0000 {
			returned = true
			break
		}
		n, _ := cpu.Step(bus)
		cycles += uint64(n)
	}

	text := string(out)
	return ComResult{
		Name:    name,
		Passed:  returned && comOutputIndicatesPass(text),
		Output:  text,
		Cycles:  cycles,
		Aborted: !returned,
	}
}

// comOutputIndicatesPass applies the convention all four classic test
// suites share: success prints "...without error" or ends cleanly
// with no "ERROR" substring, failure always contains "ERROR".
func comOutputIndicatesPass(output string) bool {
	if output == "" {
		return false
	}
	for i := 0; i+5 <= len(output); i++ {
		if output[i:i+5] == "ERROR" {
			return false
		}
	}
	return true
}

// ResultSummary renders a short human-readable line for a ComResult.
func ResultSummary(r ComResult) string {
	status := "FAIL"
	if r.Passed {
		status = "PASS"
	}
	return fmt.Sprintf("%-12s %s  (%d cycles)", r.Name, status, r.Cycles)
}
