package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"emblem/internal/diag"
	"emblem/internal/diagfmt"
)

var explainCmd = &cobra.Command{
	Use:   "explain [id]",
	Short: "Explain a diagnostic id such as E001",
	Long:  `Explain prints the long description of a diagnostic id. Without an id it lists every known id.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, e := range diag.Explanations() {
			summary, _, _ := strings.Cut(strings.TrimSpace(e.Text), "\n")
			fmt.Fprintf(out, "%s  %s\n", e.ID, summary)
		}
		return nil
	}

	id := strings.ToUpper(strings.TrimSpace(args[0]))
	text, err := diag.Explain(id)
	if err != nil {
		var missing *diag.NoSuchErrorCode
		if errors.As(err, &missing) {
			diagfmt.Pretty(os.Stderr, []diag.Log{missing.Produce()}, nil, diagfmt.PrettyOpts{
				Color: useColor(cmd, os.Stderr),
			})
			return errHasErrors
		}
		return err
	}
	fmt.Fprintln(out, strings.TrimRight(text, "\n"))
	return nil
}
