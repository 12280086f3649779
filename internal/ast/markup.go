package ast

import (
	"strings"

	"emblem/internal/source"
)

// EmphKind names the face an emphasis delimiter selects.
type EmphKind uint8

const (
	Italic        EmphKind = iota // _
	Bold                          // **
	Monospace                     // `
	Smallcaps                     // ==
	AlternateFace                 // =
)

var emphNames = [...]string{
	Italic:        "it",
	Bold:          "bf",
	Monospace:     "tt",
	Smallcaps:     "sc",
	AlternateFace: "af",
}

func (k EmphKind) String() string {
	if int(k) < len(emphNames) {
		return emphNames[k]
	}
	return "??"
}

// EmphKindOf maps a delimiter to its face. '*' and '__' are the
// alternative spellings of italic and bold.
func EmphKindOf(delim string) EmphKind {
	switch delim {
	case "**", "__":
		return Bold
	case "`":
		return Monospace
	case "==":
		return Smallcaps
	case "=":
		return AlternateFace
	default:
		return Italic
	}
}

// Emph is text between a pair of emphasis delimiters on one line.
// Close is the zero span when the closing delimiter is missing.
type Emph struct {
	Kind    EmphKind
	Open    source.Span
	Content []Content
	Close   source.Span
}

// Delimiter returns the opening delimiter as written.
func (e *Emph) Delimiter() string { return e.Open.Slice() }

// Closed reports whether a closing delimiter was found.
func (e *Emph) Closed() bool { return e.Close.Valid() }

// Verbatim is text between '!' delimiters, kept as is.
type Verbatim struct {
	Loc source.Span
}

// Text returns the contents without the delimiters.
func (v *Verbatim) Text() string {
	s := v.Loc.Slice()
	return s[1 : len(s)-1]
}

func (*Emph) content()     {}
func (*Verbatim) content() {}

func (e *Emph) Span() source.Span {
	return mergeContent(e.Open, e.Content).Merge(e.Close)
}

func (v *Verbatim) Span() source.Span { return v.Loc }

// Attrs is the bracketed attribute list of a Call.
type Attrs struct {
	Open  source.Span
	Items []*Attr
	Close source.Span
}

// Closed reports whether the list found its ']'.
func (a *Attrs) Closed() bool { return a.Close.Valid() }

// Span covers the brackets and every item.
func (a *Attrs) Span() source.Span {
	s := a.Open
	for _, it := range a.Items {
		s = s.Merge(it.Loc).Merge(it.Sep)
	}
	return s.Merge(a.Close)
}

// Attr is one attribute, "name" or "name=value". Loc is the zero span for
// an empty attribute between two commas; Sep is its trailing comma, if any.
type Attr struct {
	Loc   source.Span
	Sep   source.Span
	Name  Text
	Value Text
	Named bool
}

// NewAttr decodes the raw text under loc. Surrounding blanks are trimmed
// and the escapes \, \= \[ \] resolved.
func NewAttr(loc, sep source.Span) *Attr {
	a := &Attr{Loc: loc, Sep: sep}
	if !loc.Valid() {
		return a
	}
	raw := loc.Slice()
	name, value := raw, ""
	if i := unescapedEquals(raw); i >= 0 {
		name, value = raw[:i], raw[i+1:]
		a.Named = true
	}
	a.Name = attrText(loc, name, 0)
	if a.Named {
		a.Value = attrText(loc, value, len(name)+1)
	}
	return a
}

func unescapedEquals(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '=':
			return i
		}
	}
	return -1
}

var attrUnescaper = strings.NewReplacer(`\,`, ",", `\=`, "=", `\[`, "[", `\]`, "]")

// attrText trims part, which starts at byte off of loc, and borrows it from
// the source unless escapes had to be resolved.
func attrText(loc source.Span, part string, off int) Text {
	trimmed := strings.TrimLeft(part, " \t")
	off += len(part) - len(trimmed)
	trimmed = strings.TrimRight(trimmed, " \t")
	if strings.ContainsRune(trimmed, '\\') {
		if out := attrUnescaper.Replace(trimmed); out != trimmed {
			return Owned(out)
		}
	}
	start := loc.Start + source.Offset(off)
	return Borrowed(source.NewSpan(loc.File, start, start+source.Offset(len(trimmed))))
}
