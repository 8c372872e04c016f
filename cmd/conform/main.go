// Command conform runs the two conformance suites used throughout this
// repository's development: CP/M-hosted COM test programs for the
// 8080/8085 core, and the Z80 SingleStepTests per-opcode JSON corpus.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/8bitlab/go-chip8080/corpus"
	"github.com/8bitlab/go-chip8080/i8080"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "conform",
		Short: "Run conformance test suites against the 8080/Z80 cores",
	}

	var maxInstructions int
	var timingConfigPath string
	comCmd := &cobra.Command{
		Use:   "com [file.com ...]",
		Short: "Run CP/M-hosted COM test programs (TST8080, CPUTEST, 8080PRE, 8080EXM style)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timing, err := i8080.LoadTimingOverride(timingConfigPath)
			if err != nil {
				return fmt.Errorf("conform: %w", err)
			}

			failed := 0
			for _, path := range args {
				image, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("conform: reading %s: %w", path, err)
				}
				result := corpus.RunComTest(path, image, maxInstructions, timing)
				fmt.Println(corpus.ResultSummary(result))
				if !result.Passed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d COM tests failed", failed, len(args))
			}
			return nil
		},
	}
	comCmd.Flags().IntVar(&maxInstructions, "max-instructions", 200_000_000, "abort a runaway program after this many instructions")
	comCmd.Flags().StringVar(&timingConfigPath, "timing-config", "", "optional YAML file overriding per-opcode M1 fetch timing (bring-up of a second-source part)")

	var strict bool
	var verbose bool
	sstCmd := &cobra.Command{
		Use:   "sst <dir>",
		Short: "Run the Z80 SingleStepTests per-opcode JSON corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, skipped, err := corpus.RunZ80SSTDir(args[0], strict)
			if err != nil {
				return err
			}

			files := make([]string, 0, len(results))
			for name := range results {
				files = append(files, name)
			}
			sort.Strings(files)

			var totalCases, totalFailed int
			for _, name := range files {
				cases := results[name]
				failed := 0
				for _, c := range cases {
					if !c.Passed {
						failed++
						if verbose {
							fmt.Printf("  %s: %s: %v\n", name, c.Name, c.Mismatches)
						}
					}
				}
				totalCases += len(cases)
				totalFailed += failed
				status := "PASS"
				if failed > 0 {
					status = "FAIL"
				}
				fmt.Printf("%-20s %s  (%d/%d cases)\n", name, status, len(cases)-failed, len(cases))
			}

			skipNames := make([]string, 0, len(skipped))
			for name := range skipped {
				skipNames = append(skipNames, name)
			}
			sort.Strings(skipNames)
			for _, name := range skipNames {
				fmt.Printf("%-20s SKIP (%s)\n", name, skipped[name])
			}

			fmt.Printf("\n%d cases, %d failed, %d files skipped\n", totalCases, totalFailed, len(skipped))
			if totalFailed > 0 {
				return fmt.Errorf("%d sst cases failed", totalFailed)
			}
			return nil
		},
	}
	sstCmd.Flags().BoolVar(&strict, "strict", false, "do not skip files listed in corpus.Z80SSTSkip")
	sstCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print mismatches for failing cases")

	rootCmd.AddCommand(comCmd, sstCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
