// Command chipdbg is a line-oriented debugger for the Space Invaders
// machine, the command set grounded on a reference debugger's
// setbp/clrbp/peek/step/continue protocol, rendered as a bubbletea
// scrollback program with a lipgloss-styled register panel.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/8bitlab/go-chip8080/i8080"
	"github.com/8bitlab/go-chip8080/machine/spaceinvaders"
)

func main() {
	var romPath string
	var timingConfigPath string
	rootCmd := &cobra.Command{
		Use:   "chipdbg",
		Short: "Interactive debugger for the Space Invaders machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if romPath == "" {
				return fmt.Errorf("chipdbg: --rom is required")
			}
			m, err := spaceinvaders.LoadROMFile(romPath)
			if err != nil {
				return err
			}
			timing, err := i8080.LoadTimingOverride(timingConfigPath)
			if err != nil {
				return fmt.Errorf("chipdbg: %w", err)
			}
			m.CPU().SetTimingOverride(timing)
			model := newModel(m)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("chipdbg: %w", err)
			}
			return nil
		},
	}
	rootCmd.Flags().StringVar(&romPath, "rom", "", "path to the Space Invaders ROM image")
	rootCmd.Flags().StringVar(&timingConfigPath, "timing-config", "", "optional YAML file overriding per-opcode M1 fetch timing (bring-up of a second-source part)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
