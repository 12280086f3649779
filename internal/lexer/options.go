package lexer

import (
	"emblem/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(d diag.Diagnosable) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d)
	}
}
