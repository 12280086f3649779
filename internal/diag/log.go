package diag

import (
	"strings"

	"emblem/internal/source"
)

// Excerpt is one annotated span of a Log.
type Excerpt struct {
	Span     source.Span
	Label    string
	Severity Severity
}

// Log is a structured, source-anchored report of one problem.
// Logs are values: the With* methods return modified copies.
type Log struct {
	Severity    Severity
	ID          string // stable id such as "E001", empty when none
	Message     string
	Excerpts    []Excerpt
	Help        string
	Notes       []string
	Explainable bool
}

// NewLog starts a log with the given severity and message.
func NewLog(sev Severity, msg string) Log {
	return Log{Severity: sev, Message: msg}
}

// Error starts an error-severity log.
func Error(msg string) Log { return NewLog(SevError, msg) }

// Warning starts a warning-severity log.
func Warning(msg string) Log { return NewLog(SevWarning, msg) }

// Info starts an info-severity log.
func Info(msg string) Log { return NewLog(SevInfo, msg) }

// WithID attaches a stable id.
func (l Log) WithID(id string) Log {
	l.ID = id
	return l
}

// WithExplanation marks the log as having a long-form explanation.
func (l Log) WithExplanation() Log {
	l.Explainable = true
	return l
}

// WithExcerpt annotates span with label at the log's own severity.
func (l Log) WithExcerpt(span source.Span, label string) Log {
	return l.WithExcerptSeverity(span, label, l.Severity)
}

// WithExcerptSeverity annotates span with label at an explicit severity.
func (l Log) WithExcerptSeverity(span source.Span, label string, sev Severity) Log {
	l.Excerpts = append(l.Excerpts[:len(l.Excerpts):len(l.Excerpts)], Excerpt{Span: span, Label: label, Severity: sev})
	return l
}

// WithHelp sets the help text.
func (l Log) WithHelp(help string) Log {
	l.Help = help
	return l
}

// WithNote appends a note.
func (l Log) WithNote(note string) Log {
	l.Notes = append(l.Notes[:len(l.Notes):len(l.Notes)], note)
	return l
}

// ExpectOneOf appends a note listing the expected alternatives.
// An empty list leaves the log unchanged.
func (l Log) ExpectOneOf(expected []string) Log {
	switch len(expected) {
	case 0:
		return l
	case 1:
		return l.WithNote("expected " + expected[0])
	default:
		return l.WithNote("expected one of " + JoinAlternatives(expected))
	}
}

// Primary returns the span of the first excerpt.
func (l Log) Primary() (source.Span, bool) {
	if len(l.Excerpts) == 0 {
		return source.Span{}, false
	}
	return l.Excerpts[0].Span, true
}

// JoinAlternatives joins items as "a, b or c".
func JoinAlternatives(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			if i < len(items)-1 {
				b.WriteString(", ")
			} else {
				b.WriteString(" or ")
			}
		}
		b.WriteString(item)
	}
	return b.String()
}
