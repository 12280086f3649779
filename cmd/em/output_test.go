package main

import (
	"bytes"
	"strings"
	"testing"

	"emblem/internal/diag"
	"emblem/internal/source"
)

func TestSummaryLine(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.Error("a"))
	bag.Add(diag.Warning("b"))
	bag.Add(diag.Warning("c"))

	tests := []struct {
		files, unreadable int
		bag               *diag.Bag
		want              string
	}{
		{1, 0, diag.NewBag(0), "checked 1 file: 0 errors, 0 warnings"},
		{3, 0, bag, "checked 3 files: 1 error, 2 warnings"},
		{2, 1, bag, "checked 2 files: 1 error, 2 warnings (1 file could not be read)"},
	}
	for _, tt := range tests {
		if got := summaryLine(tt.files, tt.bag, tt.unreadable); got != tt.want {
			t.Errorf("summaryLine = %q, want %q", got, tt.want)
		}
	}
}

func TestRenderLogsFormats(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("doc.em", []byte("a # b\n"))
	logs := []diag.Log{diag.Error("unexpected heading").WithID("E004").WithExcerpt(source.NewSpan(f, 2, 3), "found here")}

	for _, format := range []string{"pretty", "short", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := renderLogs(&buf, logs, fs, renderOpts{format: format}); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), "E004") {
				t.Fatalf("output misses the id:\n%s", buf.String())
			}
		})
	}

	var buf bytes.Buffer
	if err := renderLogs(&buf, logs, fs, renderOpts{format: "html"}); err == nil {
		t.Fatal("unknown format must fail")
	}
}
