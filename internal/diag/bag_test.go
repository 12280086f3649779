package diag

import (
	"testing"

	"emblem/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Error("one")) || !b.Add(Warning("two")) {
		t.Fatal("Add() rejected a log under the limit")
	}
	if b.Add(Info("three")) {
		t.Fatal("Add() accepted a log over the limit")
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("Len() = %d, Dropped() = %d", b.Len(), b.Dropped())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected errors and warnings")
	}
	if b.Count(SevWarning) != 1 {
		t.Fatalf("Count(warning) = %d", b.Count(SevWarning))
	}

	unbounded := NewBag(0)
	for i := 0; i < 100; i++ {
		unbounded.Add(Info("x"))
	}
	if unbounded.Len() != 100 || unbounded.HasWarnings() {
		t.Fatalf("unbounded bag: Len() = %d", unbounded.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("a.em", []byte("0123456789"))
	z := fs.AddVirtual("z.em", []byte("0123456789"))

	b := NewBag(0)
	b.Add(Warning("late").WithExcerpt(source.NewSpan(a, 5, 6), "x"))
	b.Add(Error("other file").WithExcerpt(source.NewSpan(z, 0, 1), "x"))
	b.Add(Error("early").WithExcerpt(source.NewSpan(a, 1, 2), "x"))
	b.Add(Error("same place").WithExcerpt(source.NewSpan(a, 5, 6), "x"))
	b.Add(Error("early").WithExcerpt(source.NewSpan(a, 1, 2), "x"))

	b.Dedup()
	if b.Len() != 4 {
		t.Fatalf("Dedup() left %d logs, want 4", b.Len())
	}

	b.Sort()
	want := []string{"early", "same place", "late", "other file"}
	for i, l := range b.Items() {
		if l.Message != want[i] {
			t.Errorf("Items()[%d] = %q, want %q", i, l.Message, want[i])
		}
	}
}

func TestBagReporterAndCollector(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("r.em", []byte("*/"))
	loc := source.NewSpan(f, 0, 2)

	bag := NewBag(10)
	var col Collector
	r := MultiReporter{BagReporter{Bag: bag}, &col, NopReporter{}}
	r.Report(ExtraCommentClose{Loc: loc})
	r.Report(nil)

	if bag.Len() != 1 || bag.Items()[0].Message != "no comment to close" {
		t.Fatalf("bag = %+v", bag.Items())
	}
	if len(col.Items) != 1 || col.Items[0].Kind() != KindExtraCommentClose {
		t.Fatalf("collector = %+v", col.Items)
	}
	if logs := col.Logs(); len(logs) != 1 || logs[0].Excerpts[0].Span != loc {
		t.Fatalf("Logs() = %+v", logs)
	}

	merged := NewBag(1)
	merged.Add(Info("first"))
	merged.Merge(bag)
	if merged.Len() != 2 {
		t.Fatalf("Merge() Len() = %d", merged.Len())
	}
	if got := merged.Filter(Terse); len(got) != 1 {
		t.Fatalf("Filter(terse) = %+v", got)
	}
}
