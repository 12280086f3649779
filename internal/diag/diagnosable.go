package diag

// Diagnosable is implemented by every diagnostic kind. Produce is pure:
// calling it twice yields equal logs.
type Diagnosable interface {
	Kind() Kind
	Produce() Log
	sealed()
}

// Kind enumerates the closed set of diagnostic kinds.
type Kind uint8

const (
	KindUnexpectedChar Kind = iota
	KindUnexpectedHeading
	KindHeadingTooDeep
	KindExtraCommentClose
	KindUnclosedComments
	KindUnexpectedEOF
	KindNewlineInInlineArg
	KindUnexpectedToken
	KindNoSuchErrorCode
	KindTooManyQualifiers
	KindEmptyQualifier
	KindNewlineInAttrs
	KindDelimiterMismatch
	KindNewlineInEmphDelimiter
	KindUnclosedVerbatim

	kindCount
)

var kindNames = [...]string{
	KindUnexpectedChar:     "unexpected-char",
	KindUnexpectedHeading:  "unexpected-heading",
	KindHeadingTooDeep:     "heading-too-deep",
	KindExtraCommentClose:  "extra-comment-close",
	KindUnclosedComments:   "unclosed-comments",
	KindUnexpectedEOF:      "unexpected-eof",
	KindNewlineInInlineArg: "newline-in-inline-arg",
	KindUnexpectedToken:    "unexpected-token",
	KindNoSuchErrorCode:    "no-such-error-code",

	KindTooManyQualifiers:      "too-many-qualifiers",
	KindEmptyQualifier:         "empty-qualifier",
	KindNewlineInAttrs:         "newline-in-attrs",
	KindDelimiterMismatch:      "delimiter-mismatch",
	KindNewlineInEmphDelimiter: "newline-in-emph-delimiter",
	KindUnclosedVerbatim:       "unclosed-verbatim",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every diagnostic kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
