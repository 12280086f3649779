package diag

import (
	"regexp"
	"sort"
)

// Stable ids of explainable logs.
const (
	IDNoSuchErrorCode    = "E000"
	IDUnexpectedEOF      = "E001"
	IDNewlineInInlineArg = "E002"
	IDUnexpectedToken    = "E003"
	IDUnexpectedHeading  = "E004"
	IDTooManyQualifiers  = "E005"
	IDEmptyQualifier     = "E006"
	IDDelimiterMismatch  = "E007"
)

// IDPattern is the shape every stable id must have.
var IDPattern = regexp.MustCompile(`^E\d{3}$`)

// Explanation is one registry entry.
type Explanation struct {
	ID   string
	Kind Kind
	Text string
}

var explanations = map[string]Explanation{
	IDNoSuchErrorCode: {
		ID:   IDNoSuchErrorCode,
		Kind: KindNoSuchErrorCode,
		Text: "Error codes have the form `Eddd`, for digits `d`, such as this error, E000.\n" +
			"If you're seeing this, please check the code for typos.",
	},
	IDUnexpectedEOF: {
		ID:   IDUnexpectedEOF,
		Kind: KindUnexpectedEOF,
		Text: "The file ended while a construct was still open.\n" +
			"This usually means a call's inline argument was started with `{` but the\n" +
			"matching `}` was never written:\n" +
			"\n" +
			"    .emph{important\n" +
			"\n" +
			"Close the argument before the end of the file.",
	},
	IDNewlineInInlineArg: {
		ID:   IDNewlineInInlineArg,
		Kind: KindNewlineInInlineArg,
		Text: "Inline arguments, written between `{` and `}`, must fit on one line.\n" +
			"Call arguments have two forms:\n" +
			"\n" +
			"    .call{inline-1}{inline-2}: remainder of the line\n" +
			"\n" +
			"A remainder argument runs to the end of the line and is the better\n" +
			"choice for longer text.",
	},
	IDUnexpectedToken: {
		ID:   IDUnexpectedToken,
		Kind: KindUnexpectedToken,
		Text: "A delimiter was found where it has no meaning.\n" +
			"Braces only delimit the arguments of a call such as `.name{arg}`; a `}`\n" +
			"with no open argument, or a `{` that does not follow a call name, is\n" +
			"reported and then kept as ordinary text.",
	},
	IDUnexpectedHeading: {
		ID:   IDUnexpectedHeading,
		Kind: KindUnexpectedHeading,
		Text: "Heading markers (`#`, `##`, ...) are only recognised at the start of a\n" +
			"line, optionally after indentation:\n" +
			"\n" +
			"    ## A section\n" +
			"\n" +
			"A run of `#` elsewhere on the line is reported and then kept as ordinary\n" +
			"text. A single `#` directly followed by a name, as in `#tag`, is text\n" +
			"and never a heading.",
	},
	IDTooManyQualifiers: {
		ID:   IDTooManyQualifiers,
		Kind: KindTooManyQualifiers,
		Text: "A call name may carry at most one qualifier, separated by a dot:\n" +
			"\n" +
			"    .ext.figure{diagram.png}\n" +
			"\n" +
			"Here `ext` says which extension provides `figure`. A name such as\n" +
			"`.a.b.c` has more than one qualifier, which has no meaning.",
	},
	IDEmptyQualifier: {
		ID:   IDEmptyQualifier,
		Kind: KindEmptyQualifier,
		Text: "A call name starting with two dots, such as `..figure`, has a qualifier\n" +
			"with nothing in it. Either name the qualifier, as in `.ext.figure`, or\n" +
			"drop the extra dot.",
	},
	IDDelimiterMismatch: {
		ID:   IDDelimiterMismatch,
		Kind: KindDelimiterMismatch,
		Text: "Emphasis must be closed with the same delimiter that opened it:\n" +
			"\n" +
			"    _italic_ **bold** `mono` ==smallcaps== =alternate=\n" +
			"\n" +
			"Text such as `_word**` opens one kind of emphasis and closes another.\n" +
			"When emphasis is nested, close the inner span first.",
	},
}

// Explain returns the long-form explanation for id. Unknown and empty ids
// yield a *NoSuchErrorCode.
func Explain(id string) (string, error) {
	if e, ok := explanations[id]; ok && id != "" {
		return e.Text, nil
	}
	return "", &NoSuchErrorCode{ID: id}
}

// Explanations returns every registry entry ordered by id.
func Explanations() []Explanation {
	out := make([]Explanation, 0, len(explanations))
	for _, e := range explanations {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
