package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/uclang/go-uc/internal/ir"
	"github.com/uclang/go-uc/pkg/uc"
)

var (
	outputFile     string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a uC file to intermediate code",
	Long: `Compile a uC program through the full front-end pipeline and print the
generated three-address intermediate representation.

Examples:
  # Compile a program and print the IR
  uc compile program.uc

  # Write the IR listing to a file
  uc compile program.uc -o program.ir`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to read file %s", filename)
	}
	source := string(content)

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	module, err := uc.Compile(source)
	if err != nil {
		reportDiagnostic(err, source)
		os.Exit(1)
	}

	listing := ir.FormatProgram(module)
	if outputFile == "" {
		fmt.Print(listing)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(listing), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", outputFile)
	}
	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outputFile)
	}
	return nil
}
