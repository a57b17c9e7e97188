package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ucerrors "github.com/uclang/go-uc/internal/errors"
	"github.com/uclang/go-uc/pkg/uc"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a uC file and print the syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to read file %s", filename)
	}

	program, err := uc.Parse(string(content))
	if err != nil {
		reportDiagnostic(err, string(content))
		os.Exit(1)
	}
	fmt.Println(program.String())
	return nil
}

// reportDiagnostic prints a compiler diagnostic with source context, or a
// plain error for anything else.
func reportDiagnostic(err error, source string) {
	if diag, ok := err.(*ucerrors.Diagnostic); ok {
		fmt.Fprintln(os.Stderr, diag.Format(source, true))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
