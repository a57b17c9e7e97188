package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "uc",
	Short: "uC compiler front-end",
	Long: `go-uc is a compiler front-end for uC, a small C-like language.

The front-end pipeline is lexical analysis, parsing, semantic analysis and
lowering into a three-address intermediate representation. Subcommands
expose each stage: lex prints the token stream, parse prints the syntax
tree, and compile prints the generated IR.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
