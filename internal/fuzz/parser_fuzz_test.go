package fuzztests

import (
	"testing"
	"time"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/parser"
	"emblem/internal/source"
	"emblem/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserLossless(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		fs := source.NewFileSet()
		file := fs.AddVirtual("fuzz.em", input)
		res := parser.Parse(file, parser.Options{MaxErrors: 128})

		if got := ast.Reconstruct(res.Doc); got != string(input) {
			t.Fatalf("reconstruction differs\ninput: %q\n  got: %q", truncateForLog(input, 200), got)
		}
		if err := testkit.CheckSpanInvariants(res.Doc); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
		for _, l := range res.Logs() {
			for _, ex := range l.Excerpts {
				if ex.Span.Valid() && ex.Span.End > file.Len() {
					t.Fatalf("excerpt %d-%d beyond input", ex.Span.Start, ex.Span.End)
				}
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// глубокая вложенность
	f.Add([]byte(".a{.a{.a{.a{.a{.a{.a{.a{x}}}}}}}}"))
	f.Add([]byte("/*/*/*/*/*/*/*/* deep */*/*/*/*/*/*/*/"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.AddVirtual("fuzz.em", input)
			bag := diag.NewBag(128)
			_ = parser.Parse(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 128})
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
