package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/uclang/go-uc/internal/lexer"
	"github.com/uclang/go-uc/pkg/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a uC file and print the token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to read file %s", filename)
	}

	l := lexer.New(string(content))
	for _, tok := range l.Tokenize() {
		if tok.Type == token.EOF {
			break
		}
		fmt.Printf("%s %q %d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
	}

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		for _, diag := range lexErrs {
			fmt.Fprintln(os.Stderr, diag.Format(string(content), true))
		}
		os.Exit(1)
	}
	return nil
}
