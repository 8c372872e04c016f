package i8080

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TimingOverride lets a bring-up of a new mask-set or second-source part
// override a handful of M-cycle costs without a recompile. Only the
// costs that differ from the built-in values need to be listed.
type TimingOverride struct {
	// OpcodeTStates maps an opcode byte to the T-state cost of its M1
	// opcode-fetch cycle, replacing the built-in 4 T-states both
	// variants normally charge there. Unlisted opcodes keep the
	// built-in timing; this does not reach into the M-cycles an
	// opcode handler pushes afterward (those still follow spec.md
	// §4.6's documented per-variant deltas).
	OpcodeTStates map[uint8]int `yaml:"opcode_tstates"`
}

// tstatesFor returns the M1 fetch cost for opcode, applying t's
// override if one is configured. t may be nil.
func (t *TimingOverride) tstatesFor(opcode uint8) int {
	if t == nil || t.OpcodeTStates == nil {
		return 4
	}
	if n, ok := t.OpcodeTStates[opcode]; ok {
		return n
	}
	return 4
}

// LoadTimingOverride reads a YAML timing-override file. A missing file
// is not an error — callers pass an empty path to skip overrides
// entirely.
func LoadTimingOverride(path string) (*TimingOverride, error) {
	if path == "" {
		return &TimingOverride{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("i8080: reading timing override %q: %w", path, err)
	}
	var t TimingOverride
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("i8080: parsing timing override %q: %w", path, err)
	}
	return &t, nil
}
