package diag

import (
	"errors"
	"testing"
	"unicode"
	"unicode/utf8"

	"emblem/internal/source"
)

// sampleOf returns a representative value of every kind.
func sampleOf(k Kind, span source.Span) Diagnosable {
	switch k {
	case KindUnexpectedChar:
		return UnexpectedChar{Loc: span, Found: '\x01'}
	case KindUnexpectedHeading:
		return UnexpectedHeading{Loc: span}
	case KindHeadingTooDeep:
		return HeadingTooDeep{Loc: span, Level: 7}
	case KindExtraCommentClose:
		return ExtraCommentClose{Loc: span}
	case KindUnclosedComments:
		return UnclosedComments{Unclosed: []source.Span{span}}
	case KindUnexpectedEOF:
		return UnexpectedEOF{Loc: span}
	case KindNewlineInInlineArg:
		return NewlineInInlineArg{ArgStart: span, Newline: span}
	case KindUnexpectedToken:
		return UnexpectedToken{Loc: span, Found: "newline"}
	case KindNoSuchErrorCode:
		return &NoSuchErrorCode{}
	case KindTooManyQualifiers:
		return TooManyQualifiers{Loc: span, Dots: []source.Span{span}}
	case KindEmptyQualifier:
		return EmptyQualifier{Loc: span, Qualifier: span}
	case KindNewlineInAttrs:
		return NewlineInAttrs{AttrStart: span, Newline: span}
	case KindDelimiterMismatch:
		return DelimiterMismatch{Loc: span, ToClose: span, Expected: "**"}
	case KindNewlineInEmphDelimiter:
		return NewlineInEmphDelimiter{DelimStart: span, Newline: span, Expected: "_"}
	case KindUnclosedVerbatim:
		return UnclosedVerbatim{Loc: span}
	}
	return nil
}

func TestEveryKindProducesWellFormedLog(t *testing.T) {
	span, _ := testSpans(t)
	seenIDs := make(map[string]Kind)

	for _, k := range Kinds() {
		d := sampleOf(k, span)
		if d == nil {
			t.Fatalf("kind %v has no sample", k)
		}
		if d.Kind() != k {
			t.Errorf("sample of %v reports kind %v", k, d.Kind())
		}

		l := d.Produce()
		if l.Message == "" {
			t.Errorf("%v: empty message", k)
		}
		if r, _ := utf8.DecodeRuneInString(l.Message); unicode.IsUpper(r) {
			t.Errorf("%v: message %q starts with an upper-case letter", k, l.Message)
		}
		if n := utf8.RuneCountInString(l.Message); n >= 60 {
			t.Errorf("%v: message %q is %d runes long", k, l.Message, n)
		}

		if l.ID == "" {
			if l.Explainable {
				t.Errorf("%v: explainable log without id", k)
			}
			continue
		}
		if !IDPattern.MatchString(l.ID) {
			t.Errorf("%v: id %q does not match %s", k, l.ID, IDPattern)
		}
		if prev, dup := seenIDs[l.ID]; dup {
			t.Errorf("id %s used by both %v and %v", l.ID, prev, k)
		}
		seenIDs[l.ID] = k
		if l.Explainable {
			if _, err := Explain(l.ID); err != nil {
				t.Errorf("%v: explainable id %s has no explanation", k, l.ID)
			}
		}
	}

	for _, e := range Explanations() {
		if k, ok := seenIDs[e.ID]; !ok || k != e.Kind {
			t.Errorf("explanation %s registered for %v but produced by %v", e.ID, e.Kind, k)
		}
	}
}

func TestExplain(t *testing.T) {
	for _, id := range []string{"E000", "E001", "E002", "E003", "E004"} {
		text, err := Explain(id)
		if err != nil {
			t.Errorf("Explain(%s) error: %v", id, err)
		}
		if text == "" {
			t.Errorf("Explain(%s) returned empty text", id)
		}
	}

	for _, id := range []string{"", "E999", "e001", "E01"} {
		_, err := Explain(id)
		var missing *NoSuchErrorCode
		if !errors.As(err, &missing) {
			t.Fatalf("Explain(%q) error = %v, want *NoSuchErrorCode", id, err)
		}
		if missing.ID != id {
			t.Errorf("NoSuchErrorCode.ID = %q, want %q", missing.ID, id)
		}
		if l := missing.Produce(); l.Help != "perhaps there is a typo here?" {
			t.Errorf("help = %q", l.Help)
		}
	}
}
