package diagfmt

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"emblem/internal/token"
)

// TokenOutput is the JSON form of a token.
type TokenOutput struct {
	Kind      string `json:"kind"`
	Text      string `json:"text,omitempty"`
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	Line      uint32 `json:"line"`
	Col       uint32 `json:"col"`
	LineStart bool   `json:"line_start,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		startPos, endPos := tok.Span.StartPos(), tok.Span.EndPos()

		if _, err := fmt.Fprintf(w, "%3d: %-14s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if text := tok.Text(); text != "" {
			fmt.Fprintf(w, " %q", text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.AtLineStart() {
			fmt.Fprint(w, " (line start)")
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos := tok.Span.StartPos()
		output = append(output, TokenOutput{
			Kind:      tok.Kind.String(),
			Text:      tok.Text(),
			Start:     tok.Span.Start,
			End:       tok.Span.End,
			Line:      pos.Line,
			Col:       pos.Col,
			LineStart: tok.AtLineStart(),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
