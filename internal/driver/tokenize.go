package driver

import (
	"context"
	"strconv"
	"time"

	"emblem/internal/diag"
	"emblem/internal/lexer"
	"emblem/internal/source"
	"emblem/internal/token"
	"emblem/internal/trace"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // заканчивается EOF
	Logs    []diag.Log
}

// Tokenize loads path ("-" for stdin) and lexes it to EOF.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file, err := load(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, file, opts), nil
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	span, _ := trace.StartDoc(ctx, "lex", file.Path)
	start := time.Now()

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if opts.Timer != nil {
		opts.Timer.Add("lex", time.Since(start))
	}
	span.Set("tokens", strconv.Itoa(len(tokens))).End(nil)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Logs:    bag.Items(),
	}
}
