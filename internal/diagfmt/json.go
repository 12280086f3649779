package diagfmt

import (
	"io"

	"github.com/goccy/go-json"

	"emblem/internal/diag"
	"emblem/internal/source"
)

// LocationJSON представляет местоположение в файле
type LocationJSON struct {
	File      string `json:"file" yaml:"file"`
	StartByte uint32 `json:"start_byte" yaml:"start_byte"`
	EndByte   uint32 `json:"end_byte" yaml:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" yaml:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" yaml:"end_col,omitempty"`
}

// ExcerptJSON is one annotated span.
type ExcerptJSON struct {
	Severity string       `json:"severity" yaml:"severity"`
	Label    string       `json:"label,omitempty" yaml:"label,omitempty"`
	Location LocationJSON `json:"location" yaml:"location"`
}

// DiagnosticJSON представляет лог в JSON/YAML формате
type DiagnosticJSON struct {
	Severity    string        `json:"severity" yaml:"severity"`
	ID          string        `json:"id,omitempty" yaml:"id,omitempty"`
	Message     string        `json:"message" yaml:"message"`
	Location    *LocationJSON `json:"location,omitempty" yaml:"location,omitempty"`
	Excerpts    []ExcerptJSON `json:"excerpts,omitempty" yaml:"excerpts,omitempty"`
	Help        string        `json:"help,omitempty" yaml:"help,omitempty"`
	Notes       []string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Explainable bool          `json:"explainable,omitempty" yaml:"explainable,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics"`
	Count       int              `json:"count" yaml:"count"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(span.File, fs, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions && span.Valid() {
		startPos, endPos := span.StartPos(), span.EndPos()
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
func BuildDiagnosticsOutput(logs []diag.Log, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(logs)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, n)
	for _, l := range logs[:n] {
		d := DiagnosticJSON{
			Severity:    l.Severity.String(),
			ID:          l.ID,
			Message:     l.Message,
			Explainable: l.Explainable,
		}
		if primary, ok := l.Primary(); ok {
			loc := makeLocation(primary, fs, opts.PathMode, opts.IncludePositions)
			d.Location = &loc
		}
		if opts.IncludeNotes {
			d.Help = l.Help
			d.Notes = l.Notes
			for _, ex := range l.Excerpts {
				d.Excerpts = append(d.Excerpts, ExcerptJSON{
					Severity: ex.Severity.String(),
					Label:    ex.Label,
					Location: makeLocation(ex.Span, fs, opts.PathMode, opts.IncludePositions),
				})
			}
		}
		diagnostics = append(diagnostics, d)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует логи в JSON.
func JSON(w io.Writer, logs []diag.Log, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(logs, fs, opts))
}
