package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/observ"
	"emblem/internal/pipeline"
	"emblem/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.em", "# Title\r\nhello # there\r\n")

	timer := observ.NewTimer()
	res, err := Parse(context.Background(), path, Options{Timer: timer})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Doc == nil || res.Cached {
		t.Fatalf("expected a fresh tree, got %+v", res)
	}
	if got := ast.Reconstruct(res.Doc); got != "# Title\nhello # there\n" {
		t.Fatalf("reconstruct = %q", got)
	}
	if len(res.Logs) != 1 || res.Logs[0].ID != diag.IDUnexpectedHeading {
		t.Fatalf("logs = %+v", res.Logs)
	}
	if !res.HasErrors() {
		t.Fatal("HasErrors = false")
	}
	report := timer.Report()
	names := make([]string, 0, len(report.Phases))
	for _, p := range report.Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "load,parse" {
		t.Fatalf("phases = %v", names)
	}
}

func TestParseMissingFile(t *testing.T) {
	var events []pipeline.Event
	sink := pipeline.SinkFunc(func(ev pipeline.Event) { events = append(events, ev) })
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "nope.em"), Options{Progress: sink})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
	if len(events) != 2 || events[1].Status != pipeline.StatusError {
		t.Fatalf("events = %+v", events)
	}
}

func TestParseSourceMaxDiagnostics(t *testing.T) {
	src := "a } b } c } d }"
	res := ParseSource(context.Background(), "mem.em", []byte(src), Options{MaxDiagnostics: 2})
	if len(res.Logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(res.Logs))
	}
	if got := ast.Reconstruct(res.Doc); got != src {
		t.Fatalf("parsing must continue past the limit, got %q", got)
	}
}

func TestParseSourceCountsDropped(t *testing.T) {
	res := ParseSource(context.Background(), "mem.em", []byte("*/ */ */ */ */"), Options{MaxDiagnostics: 2})
	if len(res.Logs) != 2 || res.Dropped != 3 {
		t.Fatalf("logs %d, dropped %d; want 2 and 3", len(res.Logs), res.Dropped)
	}

	res = ParseSource(context.Background(), "mem.em", []byte("*/ */"), Options{})
	if res.Dropped != 0 {
		t.Fatalf("dropped %d without a limit", res.Dropped)
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.em", ".b{x}")
	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	kinds := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.Command, token.LBrace, token.Word, token.RBrace, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if len(res.Logs) != 0 {
		t.Fatalf("unexpected logs: %+v", res.Logs)
	}
}
