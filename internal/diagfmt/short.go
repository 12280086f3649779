package diagfmt

import (
	"fmt"
	"io"

	"emblem/internal/diag"
	"emblem/internal/source"
)

// Short prints one line per log, "sev ID path:line:col message", sorted.
func Short(w io.Writer, logs []diag.Log, fs *source.FileSet, includeNotes bool) error {
	baseDir := ""
	if fs != nil {
		baseDir = fs.BaseDir()
	}
	out := diag.FormatShortLogs(logs, baseDir, includeNotes)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
