package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/diagfmt"
	"emblem/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.em|directory|->",
	Short: "Parse an emblem document or directory and print its tree",
	Long:  `Parse reads an emblem document, or every *.em file in a directory, and prints the content tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree|repr)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func writeTree(w io.Writer, doc *ast.Document, format string) error {
	switch format {
	case "pretty":
		return diagfmt.FormatASTPretty(w, doc)
	case "json":
		return diagfmt.FormatASTJSON(w, doc)
	case "tree":
		return diagfmt.FormatASTTree(w, doc)
	case "repr":
		return diagfmt.FormatASTRepr(w, doc)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	target := args[0]
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	switch s.format {
	case "pretty", "json", "tree", "repr":
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}

	prettyOpts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 2}
	out := cmd.OutOrStdout()

	isDir := false
	if target != driver.StdinPath {
		st, statErr := os.Stat(target)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}
		isDir = st.IsDir()
	}

	if !isDir {
		// Парсинг одного файла
		result, err := driver.Parse(cmd.Context(), target, driver.Options{MaxDiagnostics: s.maxDiagnostics})
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if logs := diag.Filter(s.verbosity, result.Logs); len(logs) > 0 {
			diagfmt.Pretty(os.Stderr, logs, result.FileSet, prettyOpts)
		}
		if err := writeTree(out, result.Doc, s.format); err != nil {
			return err
		}
		if result.HasErrors() {
			return errHasErrors
		}
		return nil
	}

	// Парсинг директории
	fs, results, err := driver.ParseDir(cmd.Context(), target, driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Jobs:           s.jobs,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", r.Err)
			failed = true
			continue
		}
		if logs := diag.Filter(s.verbosity, r.Result.Logs); len(logs) > 0 {
			diagfmt.Pretty(os.Stderr, logs, fs, prettyOpts)
		}
		failed = failed || r.Result.HasErrors()
	}

	if s.format == "json" {
		output := make(map[string]*diagfmt.ASTNodeOutput, len(results))
		for _, r := range results {
			if r.Result == nil {
				output[r.Path] = nil
				continue
			}
			node := diagfmt.BuildASTOutput(r.Result.Doc)
			output[r.Result.File.FormatPath("auto", fs.BaseDir())] = &node
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return err
		}
	} else {
		for idx, r := range results {
			if r.Result == nil {
				continue
			}
			if !s.quiet {
				fmt.Fprintf(out, "== %s ==\n", r.Result.File.FormatPath("auto", fs.BaseDir()))
			}
			if err := writeTree(out, r.Result.Doc, s.format); err != nil {
				return err
			}
			if !s.quiet && idx < len(results)-1 {
				fmt.Fprintln(out)
			}
		}
	}
	if failed {
		return errHasErrors
	}
	return nil
}
