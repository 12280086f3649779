package diagfmt

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"emblem/internal/diag"
	"emblem/internal/source"
)

type palette struct {
	severity map[diag.Severity]*color.Color
	message  *color.Color
	gutter   *color.Color
	help     *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		severity: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		message: mk(color.Bold),
		gutter:  mk(color.FgBlue, color.Bold),
		help:    mk(color.FgGreen),
	}
}

func (p palette) sev(s diag.Severity) *color.Color {
	if c, ok := p.severity[s]; ok {
		return c
	}
	return p.message
}

// Pretty форматирует логи в человекочитаемый вид:
//
//	error[E001]: unexpected eof
//	 --> doc.em:1:4
//	  |
//	1 | .b{x
//	  |    ^ file ended early here
//	  = note: expected ‘}’
//
// Логи печатаются в переданном порядке.
func Pretty(w io.Writer, logs []diag.Log, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, l := range logs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyLog(w, l, fs, opts, pal)
	}
}

func prettyLog(w io.Writer, l diag.Log, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sevColor := pal.sev(l.Severity)
	header := l.Severity.String()
	if l.ID != "" {
		header += "[" + l.ID + "]"
	}
	fmt.Fprintf(w, "%s: %s\n", sevColor.Sprint(header), pal.message.Sprint(l.Message))

	excerpts := slices.Clone(l.Excerpts)
	gw := gutterWidth(excerpts)
	pad := strings.Repeat(" ", gw)

	if primary, ok := l.Primary(); ok {
		pos := primary.StartPos()
		fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, pal.gutter.Sprint("-->"),
			formatPath(primary.File, fs, opts.PathMode), pos.Line, pos.Col)
	}

	if len(excerpts) > 0 {
		// первой остаётся главная аннотация, остальные по позиции
		rest := excerpts[1:]
		slices.SortStableFunc(rest, func(a, b diag.Excerpt) int {
			return int(a.Span.Start) - int(b.Span.Start)
		})
		fmt.Fprintf(w, "%s %s\n", pad, pal.gutter.Sprint("|"))
		var shown uint32
		file := excerpts[0].Span.File
		for _, ex := range excerpts {
			if !ex.Span.Valid() {
				continue
			}
			if ex.Span.File != file {
				pos := ex.Span.StartPos()
				fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, pal.gutter.Sprint(":::"),
					formatPath(ex.Span.File, fs, opts.PathMode), pos.Line, pos.Col)
				file, shown = ex.Span.File, 0
			}
			shown = writeExcerpt(w, ex, gw, shown, opts, pal)
		}
	}

	if l.Help != "" {
		fmt.Fprintf(w, "%s %s %s %s\n", pad, pal.gutter.Sprint("="), pal.help.Sprint("help:"), l.Help)
	}
	for _, note := range l.Notes {
		fmt.Fprintf(w, "%s %s %s %s\n", pad, pal.gutter.Sprint("="), pal.message.Sprint("note:"), note)
	}
}

// writeExcerpt prints the annotated line (plus context lines after the last
// printed one) and the marker line. It returns the last printed line number.
func writeExcerpt(w io.Writer, ex diag.Excerpt, gw int, shown uint32, opts PrettyOpts, pal palette) uint32 {
	f := ex.Span.File
	pos := ex.Span.StartPos()
	first := pos.Line
	if ctx := uint32(max(opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	first = max(first, shown+1) // строки, уже напечатанные для предыдущей аннотации, не повторяем
	for n := first; n <= pos.Line; n++ {
		fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprint(fmt.Sprintf("%*d", gw, n)), pal.gutter.Sprint("|"),
			clip(expandTabs(f.GetLine(n)), opts.Width))
	}
	lineStart := f.LineStart(ex.Span.Start)
	line := f.GetLine(pos.Line)
	startInLine := int(ex.Span.Start - lineStart)
	endInLine := min(int(ex.Span.End-lineStart), len(line))
	col := runewidth.StringWidth(expandTabs(line[:startInLine]))
	width := 1
	if endInLine > startInLine {
		width = max(1, runewidth.StringWidth(expandTabs(line[startInLine:endInLine])))
	}

	mark := "^"
	if ex.Severity < diag.SevError {
		mark = "-"
	}
	marker := pal.sev(ex.Severity).Sprint(strings.Repeat(mark, width))
	label := ""
	if ex.Label != "" {
		label = " " + pal.sev(ex.Severity).Sprint(ex.Label)
	}
	fmt.Fprintf(w, "%s %s %s%s%s\n", strings.Repeat(" ", gw), pal.gutter.Sprint("|"),
		strings.Repeat(" ", col), marker, label)
	return max(shown, pos.Line)
}

func gutterWidth(excerpts []diag.Excerpt) int {
	var maxLine uint32 = 1
	for _, ex := range excerpts {
		if ex.Span.Valid() {
			maxLine = max(maxLine, ex.Span.StartPos().Line)
		}
	}
	return len(strconv.FormatUint(uint64(maxLine), 10))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", source.TabWidth))
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
