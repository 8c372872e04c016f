package z80

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TimingOverride lets a bring-up of a different Z80 mask-set or
// second-source part (NMOS vs CMOS, for instance) override a handful
// of documented T-state counts without a recompile. Only opcodes that
// differ from the built-in values need to be listed; the key is the
// prefix-qualified opcode name ("main:0x21", "cb:0x06", "ed:0x47").
// DD/FD-prefixed opcodes are not covered: dispatchIndexed never
// consults the override, so neither the indexed handlers nor plain
// opcodes reached through a DD/FD prefix get extra T-states.
type TimingOverride struct {
	// OpcodeTStates maps a qualified opcode name to the number of
	// extra idle T-states appended after that opcode's normal
	// sequence finishes. Unlisted opcodes run at the built-in timing.
	OpcodeTStates map[string]int `yaml:"opcode_tstates"`
}

// extraTStates returns the configured padding for a qualified opcode
// name, or 0 if t is nil or the name is unlisted.
func (t *TimingOverride) extraTStates(qualifiedName string) int {
	if t == nil || t.OpcodeTStates == nil {
		return 0
	}
	return t.OpcodeTStates[qualifiedName]
}

// LoadTimingOverride reads a YAML timing-override file. A missing
// path is not an error — callers pass an empty path to skip overrides
// entirely.
func LoadTimingOverride(path string) (*TimingOverride, error) {
	if path == "" {
		return &TimingOverride{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("z80: reading timing override %q: %w", path, err)
	}
	var t TimingOverride
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("z80: parsing timing override %q: %w", path, err)
	}
	return &t, nil
}
