// Package token defines the lexical token kinds of emblem markup.
// Invariants:
//   - Token.Span borrows from the source buffer; token text is never copied.
//   - Concatenating the spans of every token up to EOF reproduces the buffer.
//   - Inside a block comment only CommentOpen, CommentClose, CommentText,
//     Space and Newline are produced.
//   - Heading markers carry FlagLineStart when only indentation precedes them;
//     deciding whether a misplaced marker is an error belongs to the parser.
package token
