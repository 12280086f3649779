package diag

import (
	"strings"
	"testing"
	"unicode/utf8"

	"emblem/internal/source"
)

func testSpans(t *testing.T) (a, b source.Span) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.AddVirtual("kinds.em", []byte("/* /* text\n####### x"))
	return source.NewSpan(f, 0, 2), source.NewSpan(f, 3, 5)
}

func TestProduceShapes(t *testing.T) {
	a, b := testSpans(t)

	tests := []struct {
		name    string
		d       Diagnosable
		message string
		id      string
		labels  []string
		help    string
		notes   []string
	}{
		{
			name:    "unexpected char",
			d:       UnexpectedChar{Loc: a, Found: 'x'},
			message: "unexpected character ‘x’",
			labels:  []string{"found here"},
		},
		{
			name:    "unexpected char escapes control characters",
			d:       UnexpectedChar{Loc: a, Found: '\x00'},
			message: `unexpected character ‘\x00’`,
			labels:  []string{"found here"},
		},
		{
			name:    "unexpected heading",
			d:       UnexpectedHeading{Loc: a},
			message: "unexpected heading",
			id:      "E004",
			labels:  []string{"found here"},
			help:    "headings should only appear at the start of lines",
		},
		{
			name:    "heading too deep",
			d:       HeadingTooDeep{Loc: a, Level: 7},
			message: "heading too deep",
			labels:  []string{"found a level-7 heading here"},
			help:    "headings should be at most level 6",
		},
		{
			name:    "extra comment close",
			d:       ExtraCommentClose{Loc: a},
			message: "no comment to close",
			labels:  []string{"found here"},
		},
		{
			name:    "unclosed comments",
			d:       UnclosedComments{Unclosed: []source.Span{a, b}},
			message: "unclosed comments",
			labels:  []string{"found here", "found here"},
		},
		{
			name:    "unexpected eof",
			d:       UnexpectedEOF{Loc: a, Expected: []string{"‘}’"}},
			message: "unexpected eof",
			id:      "E001",
			labels:  []string{"file ended early here"},
			notes:   []string{"expected ‘}’"},
		},
		{
			name:    "newline in inline arg",
			d:       NewlineInInlineArg{ArgStart: a, Newline: b},
			message: "newline in inline arguments",
			id:      "E002",
			labels:  []string{"newline found here", "in inline argument started here"},
			help:    "consider using a remainder (colon) argument",
		},
		{
			name:    "unexpected token",
			d:       UnexpectedToken{Loc: a, Found: "‘}’"},
			message: "unexpected token",
			id:      "E003",
			labels:  []string{"found ‘}’ here"},
		},
		{
			name:    "too many qualifiers",
			d:       TooManyQualifiers{Loc: a, Dots: []source.Span{a, b}},
			message: "too many dots found in call",
			id:      "E005",
			labels:  []string{"found here", "and here"},
			help:    "a call name takes at most one qualifier",
		},
		{
			name:    "one surplus qualifier",
			d:       TooManyQualifiers{Loc: a, Dots: []source.Span{b}},
			message: "too many dot found in call",
			id:      "E005",
			labels:  []string{"found here"},
			help:    "a call name takes at most one qualifier",
		},
		{
			name:    "empty qualifier",
			d:       EmptyQualifier{Loc: a, Qualifier: b},
			message: "empty qualifier in command name",
			id:      "E006",
			labels:  []string{"found here"},
		},
		{
			name:    "newline in attrs",
			d:       NewlineInAttrs{AttrStart: a, Newline: b},
			message: "newline in attributes",
			labels:  []string{"newline found here", "in inline attributes started here"},
		},
		{
			name:    "delimiter mismatch",
			d:       DelimiterMismatch{Loc: b, ToClose: a, Expected: "_"},
			message: "mismatching delimiter",
			id:      "E007",
			labels:  []string{"expected ‘_’ here", "to close ‘_’ found here"},
		},
		{
			name:    "newline in emphasis",
			d:       NewlineInEmphDelimiter{DelimStart: a, Newline: b, Expected: "**"},
			message: "newline in ‘**’ emphasis",
			labels:  []string{"newline found here", "in emphasis started here"},
			help:    "close it with ‘**’ before the end of the line",
		},
		{
			name:    "no such error code",
			d:       &NoSuchErrorCode{ID: "E999"},
			message: `no such error code "E999"`,
			id:      "E000",
			help:    "perhaps there is a typo here?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.d.Produce()
			if l.Severity != SevError {
				t.Errorf("severity = %v, want error", l.Severity)
			}
			if l.Message != tt.message {
				t.Errorf("message = %q, want %q", l.Message, tt.message)
			}
			if l.ID != tt.id {
				t.Errorf("id = %q, want %q", l.ID, tt.id)
			}
			if len(l.Excerpts) != len(tt.labels) {
				t.Fatalf("excerpts = %d, want %d", len(l.Excerpts), len(tt.labels))
			}
			for i, want := range tt.labels {
				if l.Excerpts[i].Label != want {
					t.Errorf("excerpt[%d] label = %q, want %q", i, l.Excerpts[i].Label, want)
				}
			}
			if l.Help != tt.help {
				t.Errorf("help = %q, want %q", l.Help, tt.help)
			}
			if strings.Join(l.Notes, "|") != strings.Join(tt.notes, "|") {
				t.Errorf("notes = %q, want %q", l.Notes, tt.notes)
			}
		})
	}
}

func TestNewlineInInlineArgExcerptSeverities(t *testing.T) {
	a, b := testSpans(t)
	l := NewlineInInlineArg{ArgStart: a, Newline: b}.Produce()
	if l.Excerpts[0].Severity != SevError || l.Excerpts[1].Severity != SevInfo {
		t.Fatalf("excerpt severities = %v, %v", l.Excerpts[0].Severity, l.Excerpts[1].Severity)
	}
	if primary, _ := l.Primary(); primary != b {
		t.Errorf("primary = %v, want newline span %v", primary, b)
	}
}

func TestUnexpectedCharShowsInvalidByte(t *testing.T) {
	f := source.NewFileSet().AddVirtual("bytes.em", []byte("a\xffb"))
	l := UnexpectedChar{Loc: source.NewSpan(f, 1, 2), Found: utf8.RuneError}.Produce()
	if want := `unexpected character ‘\xff’`; l.Message != want {
		t.Fatalf("message = %q, want %q", l.Message, want)
	}

	// U+FFFD written out in valid UTF-8 is an ordinary character
	g := source.NewFileSet().AddVirtual("fffd.em", []byte("\uFFFD"))
	l = UnexpectedChar{Loc: source.NewSpan(g, 0, 3), Found: utf8.RuneError}.Produce()
	if want := "unexpected character ‘\uFFFD’"; l.Message != want {
		t.Fatalf("message = %q, want %q", l.Message, want)
	}
}

func TestUnclosedVerbatimIsWarning(t *testing.T) {
	a, _ := testSpans(t)
	l := UnclosedVerbatim{Loc: a}.Produce()
	if l.Severity != SevWarning || l.Message != "unclosed verbatim" || l.ID != "" {
		t.Fatalf("log = %+v", l)
	}
	if len(l.Notes) != 1 || len(l.Excerpts) != 1 {
		t.Fatalf("notes = %q, excerpts = %d", l.Notes, len(l.Excerpts))
	}
}

func TestUnclosedCommentsPluralisation(t *testing.T) {
	a, _ := testSpans(t)

	tests := []struct {
		count int
		want  string
	}{
		{0, "unclosed comments"},
		{1, "unclosed comment"},
		{2, "unclosed comments"},
		{100, "unclosed comments"},
	}
	for _, tt := range tests {
		locs := make([]source.Span, tt.count)
		for i := range locs {
			locs[i] = a
		}
		l := UnclosedComments{Unclosed: locs}.Produce()
		if l.Message != tt.want {
			t.Errorf("count %d: message = %q, want %q", tt.count, l.Message, tt.want)
		}
		if len(l.Excerpts) != tt.count {
			t.Errorf("count %d: excerpts = %d", tt.count, len(l.Excerpts))
		}
	}
}

func TestProduceIsPure(t *testing.T) {
	a, b := testSpans(t)
	d := UnexpectedEOF{Loc: a, Expected: []string{"x", "y"}}
	first, second := d.Produce(), d.Produce()
	if first.Message != second.Message || len(first.Notes) != len(second.Notes) || first.Notes[0] != second.Notes[0] {
		t.Fatalf("Produce() differs between calls: %+v vs %+v", first, second)
	}

	// builder copies never share backing arrays
	base := Error("base").WithExcerpt(a, "one")
	left := base.WithExcerpt(b, "left")
	right := base.WithExcerpt(b, "right")
	if left.Excerpts[1].Label != "left" || right.Excerpts[1].Label != "right" || len(base.Excerpts) != 1 {
		t.Fatalf("builder methods alias excerpts: %+v / %+v", left.Excerpts, right.Excerpts)
	}
}

func TestExpectOneOf(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"a"}, []string{"expected a"}},
		{[]string{"a", "b"}, []string{"expected one of a or b"}},
		{[]string{"a", "b", "c"}, []string{"expected one of a, b or c"}},
	}
	for _, tt := range tests {
		got := Error("x").ExpectOneOf(tt.in).Notes
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("ExpectOneOf(%q) notes = %q, want %q", tt.in, got, tt.want)
		}
	}
}
