package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emblem/internal/diag"
	"emblem/internal/diagfmt"
	"emblem/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.em|->",
	Short: "Tokenize an emblem document",
	Long:  `Tokenize breaks an emblem document down into its tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if s.format != "pretty" && s.format != "json" {
		return fmt.Errorf("unknown format: %s", s.format)
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], driver.Options{MaxDiagnostics: s.maxDiagnostics})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if logs := diag.Filter(s.verbosity, result.Logs); len(logs) > 0 {
		diagfmt.Pretty(os.Stderr, logs, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}

	switch s.format {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens)
	}
	if err != nil {
		return err
	}
	if hasErrors(result.Logs) {
		return errHasErrors
	}
	return nil
}
