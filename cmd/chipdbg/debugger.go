package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/8bitlab/go-chip8080/machine/spaceinvaders"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const scrollbackLimit = 200

// model is the bubbletea program driving one debugging session against
// a Machine. It owns the breakpoint set and the scrollback the way the
// reference debugger owns `brk`/`exit`.
type model struct {
	machine *spaceinvaders.Machine
	brk     map[uint16]struct{}
	history []string
	input   string
	quit    bool
}

func newModel(m *spaceinvaders.Machine) model {
	return model{
		machine: m,
		brk:     make(map[uint16]struct{}),
		history: []string{"chipdbg — enter 'help' for a list of commands"},
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC:
		m.quit = true
		return m, tea.Quit
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input)
		m.input = ""
		m.log("> " + line)
		m.process(strings.Fields(line))
		if m.quit {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.input += keyMsg.String()
		return m, nil
	default:
		return m, nil
	}
}

func (m *model) log(line string) {
	m.history = append(m.history, line)
	if len(m.history) > scrollbackLimit {
		m.history = m.history[len(m.history)-scrollbackLimit:]
	}
}

func (m *model) logf(format string, args ...any) { m.log(fmt.Sprintf(format, args...)) }

// process dispatches one parsed command line, mirroring the reference
// debugger's setbp/bp/break, clrbp, showbp, peek, step/s/next/n,
// continue/c, exit, help command set.
func (m *model) process(words []string) {
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case "help":
		m.displayHelp()
	case "setbp", "bp", "break":
		m.withAddr(words, func(addr uint16) {
			m.brk[addr] = struct{}{}
			m.logf("breakpoint set at 0x%04X", addr)
		})
	case "clrbp":
		m.withAddr(words, func(addr uint16) {
			delete(m.brk, addr)
			m.logf("breakpoint cleared at 0x%04X", addr)
		})
	case "showbp":
		m.showBreakpoints()
	case "peek":
		m.withAddr(words, func(addr uint16) {
			m.logf("%04X=%02X", addr, m.machine.Peek(addr))
		})
	case "step", "s", "next", "n":
		m.step()
	case "continue", "c":
		m.continueToBreakpoint()
	case "exit":
		m.quit = true
	default:
		m.log(errStyle.Render("Unrecognized command"))
	}
}

func (m *model) withAddr(words []string, fn func(addr uint16)) {
	if len(words) < 2 {
		m.log("missing address")
		return
	}
	addr, err := addrFromStr(words[1])
	if err != nil {
		m.log(errStyle.Render(fmt.Sprintf("bad address %q: %v", words[1], err)))
		return
	}
	fn(addr)
}

func addrFromStr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func (m *model) step() {
	m.machine.Step()
	if m.machine.CPU().Halted() {
		m.log("halted (waiting for the next interrupt)")
	}
}

// continueToBreakpoint single-steps until PC lands on an armed
// breakpoint, matching the reference debugger's loop-until-contains
// behavior rather than running at full frame speed. A halted CPU only
// wakes on the machine's own frame interrupts, so continuing from a
// halt here would spin forever; report it instead of looping.
func (m *model) continueToBreakpoint() {
	for {
		pc := m.machine.CPU().Registers().PC
		if _, hit := m.brk[pc]; hit {
			m.logf("breakpoint hit at 0x%04X", pc)
			return
		}
		if m.machine.CPU().Halted() {
			m.log("halted (waiting for the next interrupt); step or run a frame to wake it")
			return
		}
		m.machine.Step()
	}
}

func (m *model) showBreakpoints() {
	if len(m.brk) == 0 {
		m.log("no breakpoints set")
		return
	}
	addrs := make([]uint16, 0, len(m.brk))
	for addr := range m.brk {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, addr := range addrs {
		m.logf("  0x%04X", addr)
	}
}

func (m *model) displayHelp() {
	for _, line := range []string{
		"help: Display help menu",
		"setbp/bp/break <hex addr>: Set breakpoint at <addr>",
		"clrbp <hex addr>: Clear breakpoint at <addr>",
		"showbp: Display active breakpoints",
		"peek <hex addr>: Display byte at memory <addr>",
		"step/s/next/n: Step one instruction",
		"continue/c: Continue until a breakpoint is hit",
		"exit: Exit the debugger",
	} {
		m.log(line)
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(panelStyle.Render(m.registerPanel()))
	b.WriteString("\n")
	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(promptStyle.Render("> ") + m.input)
	return b.String()
}

func (m model) registerPanel() string {
	r := m.machine.CPU().Registers()
	return fmt.Sprintf(
		"PC=%04X SP=%04X  A=%02X  BC=%02X%02X  DE=%02X%02X  HL=%02X%02X  F=%02X",
		r.PC, r.SP, r.A, r.B, r.C, r.D, r.E, r.H, r.L, r.F,
	)
}
