package parser

import (
	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/token"
)

// stopFunc decides where a content sequence ends. EOF always ends it.
type stopFunc func(token.Token) bool

func stopNever(token.Token) bool { return false }

func stopAtNewline(t token.Token) bool { return t.Kind == token.Newline }

func stopAtArgEnd(t token.Token) bool {
	return t.Kind == token.Newline || t.Kind == token.RBrace
}

// parseSequence reads content nodes until stop or EOF. The stopping token is
// left in the stream.
func (p *Parser) parseSequence(stop stopFunc) []ast.Content {
	var items []ast.Content
	for {
		tok := p.peek()
		if tok.Kind == token.EOF || stop(tok) {
			return items
		}
		items = append(items, p.parseItem(stop))
	}
}

// parseItem dispatches on the next token. Whatever it cannot place in the
// tree becomes a Word so nothing is lost.
func (p *Parser) parseItem(stop stopFunc) ast.Content {
	tok := p.peek()
	switch tok.Kind {
	case token.Space, token.Newline:
		return p.parseWhitespace(stop)

	case token.LineComment:
		p.advance()
		return &ast.Comment{Loc: tok.Span}

	case token.CommentOpen:
		return p.parseBlockComment()

	case token.CommentClose:
		p.advance()
		p.report(diag.ExtraCommentClose{Loc: tok.Span})
		return p.word(tok)

	case token.Heading:
		if tok.AtLineStart() {
			return p.parseHeading()
		}
		p.advance()
		p.report(diag.UnexpectedHeading{Loc: tok.Span})
		return p.word(tok)

	case token.Command:
		return p.parseCall(stop)

	case token.EmphOpen:
		return p.parseEmph(stop)

	case token.Verbatim:
		p.advance()
		return &ast.Verbatim{Loc: tok.Span}

	case token.LBrace, token.RBrace:
		p.advance()
		p.report(diag.UnexpectedToken{Loc: tok.Span, Found: tok.Kind.Describe()})
		return p.word(tok)

	default:
		// Word, Colon без вызова, Invalid (уже отрепорчен лексером),
		// EmphClose без открытого выделения
		p.advance()
		return p.word(tok)
	}
}

func (p *Parser) word(tok token.Token) *ast.Word {
	return &ast.Word{Text: ast.NewText(tok.Span), Loc: tok.Span}
}

// parseWhitespace merges a run of spaces and newlines into one node.
func (p *Parser) parseWhitespace(stop stopFunc) *ast.Whitespace {
	span := p.advance().Span
	for {
		tok := p.peek()
		if !tok.IsWhitespace() || stop(tok) {
			return &ast.Whitespace{Loc: span}
		}
		span = span.Merge(p.advance().Span)
	}
}

// parseHeading reads a heading marker and the rest of its line.
func (p *Parser) parseHeading() *ast.Heading {
	marker := p.advance()
	level := marker.HeadingLevel()
	if level > diag.MaxHeadingLevel {
		p.report(diag.HeadingTooDeep{Loc: marker.Span, Level: level})
		level = diag.MaxHeadingLevel
	}
	return &ast.Heading{
		Level:   level,
		Pluses:  marker.Pluses(),
		Marker:  marker.Span,
		Content: p.parseSequence(stopAtNewline),
	}
}

// parseEmph reads an emphasis delimiter, its content and the closer. The
// span ends at the line end and never outlives the enclosing content.
func (p *Parser) parseEmph(stop stopFunc) *ast.Emph {
	open := p.advance()
	delim := open.Text()
	emph := &ast.Emph{
		Kind: ast.EmphKindOf(delim),
		Open: open.Span,
		Content: p.parseSequence(func(t token.Token) bool {
			return t.Kind == token.Newline || t.Kind == token.EmphClose || stop(t)
		}),
	}

	switch tok := p.peek(); tok.Kind {
	case token.EmphClose:
		emph.Close = p.advance().Span
		if tok.Text() != delim {
			p.report(diag.DelimiterMismatch{Loc: tok.Span, ToClose: open.Span, Expected: delim})
		}
	case token.Newline:
		p.report(diag.NewlineInEmphDelimiter{DelimStart: open.Span, Newline: tok.Span, Expected: delim})
	case token.EOF:
		p.report(diag.UnexpectedEOF{Loc: p.lastSpan, Expected: []string{quote(delim)}})
	default:
		p.report(diag.UnexpectedToken{
			Loc:      tok.Span,
			Found:    tok.Kind.Describe(),
			Expected: []string{quote(delim)},
		})
	}
	return emph
}

func quote(s string) string { return "‘" + s + "’" }
