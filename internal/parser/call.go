package parser

import (
	"strings"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/source"
	"emblem/internal/token"
)

// parseCall reads '.name', an optional '[...]' attribute list, any number of
// '{...}' arguments and an optional ':' remainder argument. The remainder
// ends at the line end or wherever the enclosing content ends.
func (p *Parser) parseCall(stop stopFunc) *ast.Call {
	cmd := p.advance()
	call := newCall(cmd)

	if p.at(token.LBracket) {
		call.Attrs = p.parseAttrs()
		if !call.Attrs.Closed() {
			return call
		}
	}
	for p.at(token.LBrace) {
		arg := p.parseInlineArg()
		call.Args = append(call.Args, arg)
		if !arg.Closed() {
			// аргумент оборван, двоеточие после него уже не наше
			return call
		}
	}
	if p.at(token.Colon) {
		colon := p.advance()
		call.Args = append(call.Args, &ast.Arg{
			Kind: ast.ArgRemainder,
			Open: colon.Span,
			Content: p.parseSequence(func(t token.Token) bool {
				return t.Kind == token.Newline || stop(t)
			}),
		})
	}
	return call
}

// newCall splits a Command token into qualifier, name and pluses. With
// more than one qualifier everything after the first dot is the name.
func newCall(cmd token.Token) *ast.Call {
	pluses := cmd.Pluses()
	file, start, end := cmd.Span.File, cmd.Span.Start+1, cmd.Span.End-source.Offset(pluses)
	call := &ast.Call{Pluses: pluses, Loc: cmd.Span}

	body := string(file.Content[start:end])
	if i := strings.IndexByte(body, '.'); i >= 0 {
		dot := start + source.Offset(i)
		if i > 0 {
			call.Qualifier = ast.NewText(source.NewSpan(file, start, dot))
		}
		start = dot + 1
	}
	call.Name = ast.NewText(source.NewSpan(file, start, end))
	return call
}

// parseAttrs reads '[' attr, attr ']'. Like an inline argument the list
// must close on its own line.
func (p *Parser) parseAttrs() *ast.Attrs {
	open := p.advance()
	attrs := &ast.Attrs{Open: open.Span}
	var loc source.Span
	flush := func(sep source.Span) {
		if loc.Valid() || sep.Valid() {
			attrs.Items = append(attrs.Items, ast.NewAttr(loc, sep))
		}
		loc = source.Span{}
	}

	for {
		switch tok := p.peek(); tok.Kind {
		case token.RBracket:
			flush(source.Span{})
			attrs.Close = p.advance().Span
			return attrs
		case token.Comma:
			flush(p.advance().Span)
		case token.Attr, token.Invalid:
			// недопустимый символ остаётся частью атрибута
			loc = loc.Merge(p.advance().Span)
		case token.Newline:
			flush(source.Span{})
			p.report(diag.NewlineInAttrs{AttrStart: open.Span, Newline: tok.Span})
			return attrs
		default:
			flush(source.Span{})
			p.report(diag.UnexpectedEOF{
				Loc:      p.lastSpan,
				Expected: []string{token.RBracket.Describe()},
			})
			return attrs
		}
	}
}

// parseInlineArg reads '{' content '}'. An inline argument never spans
// lines: a newline closes it with a diagnostic and is left for the caller.
func (p *Parser) parseInlineArg() *ast.Arg {
	open := p.advance()
	arg := &ast.Arg{
		Kind:    ast.ArgInline,
		Open:    open.Span,
		Content: p.parseSequence(stopAtArgEnd),
	}

	switch tok := p.peek(); tok.Kind {
	case token.RBrace:
		arg.Close = p.advance().Span
	case token.Newline:
		p.report(diag.NewlineInInlineArg{ArgStart: open.Span, Newline: tok.Span})
	default:
		p.report(diag.UnexpectedEOF{
			Loc:      p.lastSpan,
			Expected: []string{token.RBrace.Describe()},
		})
	}
	return arg
}
