package parser

import (
	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/lexer"
	"emblem/internal/source"
	"emblem/internal/token"
)

// Options configures a parse.
type Options struct {
	Reporter  diag.Reporter // получает диагностики лексера и парсера по мере появления
	MaxErrors uint          // 0 - без ограничения
}

// Result is the outcome of Parse. Dropped counts diagnostics suppressed
// once MaxErrors was reached.
type Result struct {
	Doc         *ast.Document
	Diagnostics []diag.Diagnosable
	Dropped     int
}

// Logs produces every diagnostic, in report order.
func (r Result) Logs() []diag.Log {
	out := make([]diag.Log, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		out = append(out, d.Produce())
	}
	return out
}

// HasErrors reports whether any diagnostic has error severity.
func (r Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Produce().Severity == diag.SevError {
			return true
		}
	}
	return false
}

// Parser - состояние парсера на один файл.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	diags    []diag.Diagnosable
	errors   uint
	dropped  int
	lastSpan source.Span   // span последнего съеденного токена
	openers  []source.Span // открытые '/*', внешний первым
}

// Parse lexes and parses file. It is pure with respect to file: the same
// buffer always yields the same tree and the same diagnostics.
func Parse(file *source.File, opts Options) Result {
	p := &Parser{
		file:     file,
		opts:     opts,
		lastSpan: source.NewSpan(file, 0, 0),
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: diag.ReporterFunc(p.report)})

	doc := &ast.Document{File: file}
	doc.Content = p.parseSequence(stopNever)
	return Result{Doc: doc, Diagnostics: p.diags, Dropped: p.dropped}
}

// Enough reports whether the error limit has been reached.
func (p *Parser) Enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

func (p *Parser) report(d diag.Diagnosable) {
	if p.Enough() {
		p.dropped++
		return
	}
	if d.Produce().Severity == diag.SevError {
		p.errors++
	}
	p.diags = append(p.diags, d)
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d)
	}
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// advance съедает следующий токен и обновляет lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}
