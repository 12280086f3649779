package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	runCleanups()
	return out.String(), err
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckShortFormat(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.em", "text # heading\n")
	writeDoc(t, dir, "b.em", "fine\n")

	out, err := execute(t, "check", "--format", "short", "--ui", "off", "--quiet", "--color", "off", dir)
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("err = %v, want errHasErrors", err)
	}
	if !strings.Contains(out, "error E004 ") || !strings.Contains(out, "a.em:1:6 unexpected heading") {
		t.Fatalf("output:\n%s", out)
	}
	if strings.Contains(out, "b.em") {
		t.Fatalf("clean file reported:\n%s", out)
	}
}

func TestCheckJSONCleanDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "ok.em", "# Title\n\nbody .b{x}\n")

	out, err := execute(t, "check", "--format", "json", "--ui", "off", "--color", "off", path)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if payload.Count != 0 {
		t.Fatalf("count = %d", payload.Count)
	}
}

func TestParseRepr(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.em", ".b{x}")
	out, err := execute(t, "parse", "--format", "repr", "--color", "off", path)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if strings.TrimSpace(out) != "File[.b{[Word(x)]}]" {
		t.Fatalf("repr = %q", out)
	}
}

func TestExplain(t *testing.T) {
	out, err := execute(t, "explain", "e001")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("empty explanation")
	}

	_, err = execute(t, "explain", "E999")
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("unknown id: err = %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "em" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("payload = %+v", payload)
	}
}
