package testkit

import (
	"testing"

	"emblem/internal/ast"
	"emblem/internal/lexer"
	"emblem/internal/parser"
	"emblem/internal/source"
)

func TestInvariantsHoldForParsedDocuments(t *testing.T) {
	inputs := []string{
		"",
		"plain words",
		"# Heading with .call{arg}\n\nbody: rest\n",
		"/* outer /* inner */\n    indented */",
		"/* never closed",
		".a{.b{.c{x}}}",
		"} stray { braces",
	}
	for _, in := range inputs {
		fs := source.NewFileSet()
		f := fs.AddVirtual("t.em", []byte(in))
		res := parser.Parse(f, parser.Options{})
		if err := CheckSpanInvariants(res.Doc); err != nil {
			t.Errorf("%q: %v", in, err)
		}
		if err := CheckTokenInvariants(f, lexer.Tokenize(f, lexer.Options{})); err != nil {
			t.Errorf("%q tokens: %v", in, err)
		}
	}
}

func TestInvariantViolationsAreReported(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("t.em", []byte("ab cd"))

	gap := &ast.Document{File: f, Content: []ast.Content{
		&ast.Word{Loc: source.NewSpan(f, 0, 2)},
		&ast.Word{Loc: source.NewSpan(f, 3, 5)},
	}}
	if err := CheckSpanInvariants(gap); err == nil {
		t.Error("gap between leaves not detected")
	}

	short := &ast.Document{File: f, Content: []ast.Content{
		&ast.Word{Loc: source.NewSpan(f, 0, 2)},
	}}
	if err := CheckSpanInvariants(short); err == nil {
		t.Error("uncovered tail not detected")
	}

	if err := CheckSpanInvariants(nil); err == nil {
		t.Error("nil document accepted")
	}

	tokens := lexer.Tokenize(f, lexer.Options{})
	if err := CheckTokenInvariants(f, tokens[:len(tokens)-1]); err == nil {
		t.Error("missing EOF not detected")
	}
}
