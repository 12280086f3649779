// Package ast defines the content tree produced by the parser.
//
// The tree is a closed sum type: Content is implemented by Word, Whitespace,
// Comment, MultiLineComment, Heading, Call and Arg; CommentPart by
// CommentWord, CommentSpace, Indented and Nested. Children are owned by their
// parent and always strictly nested inside it, so the tree has no cycles.
//
// Every leaf borrows a span of the source buffer. Concatenating the leaf
// spans returned by Leaves reproduces the buffer exactly.
package ast
