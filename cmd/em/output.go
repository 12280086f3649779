package main

import (
	"fmt"
	"io"

	"emblem/internal/diag"
	"emblem/internal/diagfmt"
	"emblem/internal/source"
)

// renderOpts controls how logs are written by renderLogs.
type renderOpts struct {
	format    string // pretty|short|json|yaml
	color     bool
	context   int8
	pathMode  diagfmt.PathMode
	withNotes bool
}

// renderLogs writes logs in the requested format. JSON and YAML always
// produce a document, even when logs is empty.
func renderLogs(w io.Writer, logs []diag.Log, fs *source.FileSet, opts renderOpts) error {
	switch opts.format {
	case "", "pretty":
		diagfmt.Pretty(w, logs, fs, diagfmt.PrettyOpts{
			Color:    opts.color,
			Context:  opts.context,
			PathMode: opts.pathMode,
		})
		return nil
	case "short":
		return diagfmt.Short(w, logs, fs, opts.withNotes)
	case "json":
		return diagfmt.JSON(w, logs, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludeNotes:     opts.withNotes,
		})
	case "yaml":
		return diagfmt.YAML(w, logs, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludeNotes:     opts.withNotes,
		})
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
}

// summaryLine describes a finished check, e.g. "checked 3 files: 1 error, 2 warnings".
func summaryLine(files int, bag *diag.Bag, unreadable int) string {
	errs, warns := bag.Count(diag.SevError), bag.Count(diag.SevWarning)
	line := fmt.Sprintf("checked %d %s: %d %s, %d %s",
		files, diag.Pluralize(files, "file", "files"),
		errs, diag.Pluralize(errs, "error", "errors"),
		warns, diag.Pluralize(warns, "warning", "warnings"))
	if unreadable > 0 {
		line += fmt.Sprintf(" (%d %s could not be read)", unreadable, diag.Pluralize(unreadable, "file", "files"))
	}
	return line
}

func hasErrors(logs []diag.Log) bool {
	for _, l := range logs {
		if l.Severity == diag.SevError {
			return true
		}
	}
	return false
}
