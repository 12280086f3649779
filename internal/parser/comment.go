package parser

import (
	"slices"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/source"
	"emblem/internal/token"
)

// parseBlockComment parses a top-level block comment. Comments left open at
// the end of input are reported together, outermost first.
func (p *Parser) parseBlockComment() *ast.MultiLineComment {
	m := p.parseComment(p.advance())
	if len(p.openers) > 0 {
		p.report(diag.UnclosedComments{Unclosed: slices.Clone(p.openers)})
		p.openers = p.openers[:0]
	}
	return m
}

// parseComment reads one comment level up to its closer. The lexer only
// produces comment tokens here, so the body is opaque text.
func (p *Parser) parseComment(open token.Token) *ast.MultiLineComment {
	p.openers = append(p.openers, open.Span)
	m := &ast.MultiLineComment{Open: open.Span}
	col := p.file.VisualColumn(open.Span.Start)

	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			return m
		case token.CommentClose:
			m.Close = p.advance().Span
			p.openers = p.openers[:len(p.openers)-1]
			return m
		case token.Newline:
			p.advance()
			m.Parts = append(m.Parts, &ast.CommentSpace{Loc: tok.Span})
			if ind := p.parseIndentedLine(col); ind != nil {
				m.Parts = append(m.Parts, ind)
			}
		default:
			m.Parts = append(m.Parts, p.parseCommentPart())
		}
	}
}

// parseIndentedLine wraps the next line when its indentation goes past col,
// the visual column of the enclosing comment's opener.
func (p *Parser) parseIndentedLine(col int) *ast.Indented {
	tok := p.peek()
	if tok.Kind != token.Space || source.IndentWidth(tok.Span.Bytes()) <= col {
		return nil
	}
	body := &ast.MultiLineComment{}
	for {
		switch p.peek().Kind {
		case token.EOF, token.Newline, token.CommentClose:
			return &ast.Indented{Body: body}
		}
		body.Parts = append(body.Parts, p.parseCommentPart())
	}
}

func (p *Parser) parseCommentPart() ast.CommentPart {
	tok := p.advance()
	switch tok.Kind {
	case token.CommentOpen:
		return &ast.Nested{Body: p.parseComment(tok)}
	case token.Space:
		return &ast.CommentSpace{Loc: tok.Span}
	default:
		return &ast.CommentWord{Loc: tok.Span}
	}
}
