// Package parser builds the content tree of one source buffer.
//
// Parsing never fails: every problem becomes a diagnostic and the parser
// keeps going, so a single pass reports everything wrong with a document.
// The returned tree is lossless (see ast.Leaves).
package parser
