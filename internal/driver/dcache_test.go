package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"emblem/internal/diag"
	"emblem/internal/pipeline"
	"emblem/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	src := "text # heading\n/* open"
	first := ParseSource(context.Background(), "a.em", []byte(src), Options{Cache: cache})
	if first.Cached || len(first.Logs) != 2 {
		t.Fatalf("first run: cached=%v logs=%d", first.Cached, len(first.Logs))
	}

	var stages []pipeline.Stage
	sink := pipeline.SinkFunc(func(ev pipeline.Event) { stages = append(stages, ev.Stage) })
	second := ParseSource(context.Background(), "a.em", []byte(src), Options{Cache: cache, Progress: sink})
	if !second.Cached || second.Doc != nil {
		t.Fatalf("second run should be served from cache: %+v", second)
	}
	if len(stages) != 1 || stages[0] != pipeline.StageCache {
		t.Fatalf("stages = %v", stages)
	}
	if len(second.Logs) != len(first.Logs) {
		t.Fatalf("logs = %d, want %d", len(second.Logs), len(first.Logs))
	}
	for i := range first.Logs {
		a, b := first.Logs[i], second.Logs[i]
		if a.ID != b.ID || a.Message != b.Message || a.Severity != b.Severity || a.Help != b.Help {
			t.Fatalf("log %d differs: %+v vs %+v", i, a, b)
		}
		if len(a.Excerpts) != len(b.Excerpts) {
			t.Fatalf("log %d excerpts differ", i)
		}
		for j := range a.Excerpts {
			if a.Excerpts[j].Span.Slice() != b.Excerpts[j].Span.Slice() || a.Excerpts[j].Span.Start != b.Excerpts[j].Span.Start {
				t.Fatalf("log %d excerpt %d differs", i, j)
			}
			if b.Excerpts[j].Span.File != second.File {
				t.Fatalf("excerpt must be anchored to the new file")
			}
		}
	}
}

func TestDiskCacheKeyDependsOnLimit(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("a.em", []byte("x"))
	if KeyFor(f, 0) == KeyFor(f, 10) {
		t.Fatal("keys for different limits must differ")
	}
	g := fs.AddVirtual("b.em", []byte("x"))
	if KeyFor(f, 0) != KeyFor(g, 0) {
		t.Fatal("keys depend on content only")
	}
}

func TestDiskCacheRejectsStalePayload(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("a.em", []byte("abc"))
	logs := []diag.Log{diag.Error("boom").WithExcerpt(source.NewSpan(f, 0, 3), "here")}

	payload := logsToPayload(f, logs)
	g := fs.AddVirtual("a.em", []byte("ab"))
	if _, ok := payloadToLogs(payload, g); ok {
		t.Fatal("payload for a longer file must not load")
	}
	payload.Schema++
	if _, ok := payloadToLogs(payload, f); ok {
		t.Fatal("payload with another schema must not load")
	}
}

func TestDiskCacheCorruptEntryIsMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	f := fs.AddVirtual("a.em", []byte("abc"))
	p := cache.pathFor(KeyFor(f, 0))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := cache.Lookup(f, 0); ok {
		t.Fatal("corrupt entry must be a miss")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	f := fs.AddVirtual("a.em", []byte("abc"))
	if err := cache.Store(f, 0, nil, 0); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := cache.Lookup(f, 0); !ok {
		t.Fatal("stored entry not found")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := cache.Lookup(f, 0); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestOpenDiskCacheUsesXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	cache, err := OpenDiskCache("emblem")
	if err != nil {
		t.Fatal(err)
	}
	if cache.Dir() != filepath.Join(base, "emblem") {
		t.Fatalf("dir = %q", cache.Dir())
	}
}

func TestDiskCacheKeepsDroppedCount(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("*/ */ */ */")
	opts := Options{Cache: cache, MaxDiagnostics: 1}
	first := ParseSource(context.Background(), "a.em", src, opts)
	second := ParseSource(context.Background(), "a.em", src, opts)
	if !second.Cached {
		t.Fatal("second run should be served from cache")
	}
	if first.Dropped != 3 || second.Dropped != first.Dropped {
		t.Fatalf("dropped = %d then %d, want 3 both times", first.Dropped, second.Dropped)
	}
}
