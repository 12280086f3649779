package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"emblem/internal/source"
)

type goldenLog struct {
	Severity string
	ID       string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortLogs renders logs into a stable, single-line-per-entry
// representation: "<severity> <id> <path>:<line>:<col> <message>".
// Logs without an id use "-". With includeNotes, secondary excerpts and notes
// follow as "note" lines. Entries are sorted deterministically.
func FormatShortLogs(logs []Log, baseDir string, includeNotes bool) string {
	if len(logs) == 0 {
		return ""
	}

	rendered := make([]goldenLog, 0, len(logs))
	for _, l := range logs {
		rendered = appendLog(rendered, l, baseDir, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.ID != dj.ID {
			return di.ID < dj.ID
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.ID, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendLog(out []goldenLog, l Log, baseDir string, includeNotes bool) []goldenLog {
	id := l.ID
	if id == "" {
		id = "-"
	}
	primary, _ := l.Primary()
	loc := resolveSpan(primary, baseDir)
	out = append(out, goldenLog{
		Severity: l.Severity.String(),
		ID:       id,
		Path:     loc.Path,
		Line:     loc.Line,
		Column:   loc.Column,
		Message:  sanitizeMessage(l.Message),
	})

	if !includeNotes {
		return out
	}
	for i, ex := range l.Excerpts {
		if i == 0 {
			continue
		}
		nloc := resolveSpan(ex.Span, baseDir)
		out = append(out, goldenLog{
			Severity: "note",
			ID:       id,
			Path:     nloc.Path,
			Line:     nloc.Line,
			Column:   nloc.Column,
			Message:  sanitizeMessage(ex.Label),
		})
	}
	for _, note := range l.Notes {
		out = append(out, goldenLog{
			Severity: "note",
			ID:       id,
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(note),
		})
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(span source.Span, baseDir string) resolvedSpan {
	if span.File == nil {
		return resolvedSpan{Path: "<unknown>"}
	}
	start := span.StartPos()
	return resolvedSpan{
		Path:   normalizePath(span.File.FormatPath("relative", baseDir)),
		Line:   start.Line,
		Column: start.Col,
	}
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
