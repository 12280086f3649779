package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid covers a single character no token class accepts.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Word is a run of ordinary text.
	Word
	// Space is a run of spaces and tabs.
	Space
	// Newline is a single line feed.
	Newline
	// LineComment is '//' up to the end of the line.
	LineComment
	// CommentOpen is the block comment opener '/*'.
	CommentOpen
	// CommentClose is the block comment closer '*/'.
	CommentClose
	// CommentText is a run of text inside a block comment.
	CommentText
	// Heading is a run of '#' heading markers.
	Heading
	// Command is a call name introduced by '.'.
	Command
	// LBrace opens an inline argument.
	LBrace // {
	// RBrace closes an inline argument.
	RBrace // }
	// Colon introduces a remainder argument.
	Colon // :
	// LBracket opens the attribute list of a command.
	LBracket // [
	// RBracket closes the attribute list of a command.
	RBracket // ]
	// Comma separates attributes.
	Comma // ,
	// Attr is the raw text of one attribute, escapes included.
	Attr
	// EmphOpen is an emphasis delimiter that starts a span.
	EmphOpen
	// EmphClose is an emphasis delimiter that may end a span.
	EmphClose
	// Verbatim is text between a pair of '!' on one line.
	Verbatim
)

var kindNames = [...]string{
	Invalid:      "invalid",
	EOF:          "eof",
	Word:         "word",
	Space:        "space",
	Newline:      "newline",
	LineComment:  "line-comment",
	CommentOpen:  "comment-open",
	CommentClose: "comment-close",
	CommentText:  "comment-text",
	Heading:      "heading",
	Command:      "command",
	LBrace:       "lbrace",
	RBrace:       "rbrace",
	Colon:        "colon",
	LBracket:     "lbracket",
	RBracket:     "rbracket",
	Comma:        "comma",
	Attr:         "attr",
	EmphOpen:     "emph-open",
	EmphClose:    "emph-close",
	Verbatim:     "verbatim",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Describe returns a human-readable description used in diagnostics,
// e.g. "‘}’" or "newline".
func (k Kind) Describe() string {
	switch k {
	case LBrace:
		return "‘{’"
	case RBrace:
		return "‘}’"
	case Colon:
		return "‘:’"
	case LBracket:
		return "‘[’"
	case RBracket:
		return "‘]’"
	case Comma:
		return "‘,’"
	case CommentOpen:
		return "‘/*’"
	case CommentClose:
		return "‘*/’"
	default:
		return k.String()
	}
}
