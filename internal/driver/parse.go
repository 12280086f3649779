package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fortio.org/safecast"

	"emblem/internal/ast"
	"emblem/internal/diag"
	"emblem/internal/parser"
	"emblem/internal/pipeline"
	"emblem/internal/source"
	"emblem/internal/trace"
)

// ParseResult holds one parsed document and its logs.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Doc     *ast.Document // nil when the logs came from the disk cache
	Logs    []diag.Log
	Dropped int // логи сверх MaxDiagnostics
	Cached  bool
}

// HasErrors reports whether any log has error severity.
func (r *ParseResult) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, l := range r.Logs {
		if l.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// Parse loads path ("-" for stdin) and parses it.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	file, err := load(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, file, path, opts), nil
}

// ParseSource parses an in-memory document registered under name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	file := fs.AddVirtual(name, content)
	return parseFile(ctx, fs, file, name, opts)
}

func load(ctx context.Context, fs *source.FileSet, path string, opts Options) (*source.File, error) {
	opts.emit(path, pipeline.StageLoad, pipeline.StatusWorking, 0, nil)
	span, _ := trace.StartDoc(ctx, "load", path)
	start := time.Now()
	file, err := loadFile(fs, path, nil)
	if opts.Timer != nil {
		opts.Timer.Add("load", time.Since(start))
	}
	if err != nil {
		span.End(err)
		opts.emit(path, pipeline.StageLoad, pipeline.StatusError, 0, err)
		return nil, err
	}
	span.Set("bytes", strconv.Itoa(len(file.Content))).End(nil)
	return file, nil
}

// parseFile runs the parser over a loaded file, consulting the disk cache
// first. key is the name progress events are reported under.
func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, key string, opts Options) *ParseResult {
	res := &ParseResult{FileSet: fs, File: file}
	if opts.Cache != nil {
		if logs, dropped, ok := opts.Cache.Lookup(file, opts.MaxDiagnostics); ok {
			res.Logs = logs
			res.Dropped = dropped
			res.Cached = true
			trace.Mark(ctx, trace.ScopeDocument, "cache-hit", file.Path)
			opts.emit(key, pipeline.StageCache, pipeline.StatusDone, len(logs), nil)
			return res
		}
	}

	opts.emit(key, pipeline.StageParse, pipeline.StatusWorking, 0, nil)
	span, ctx := trace.StartDoc(ctx, "parse", file.Path)
	start := time.Now()

	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		panic(fmt.Errorf("max diagnostics overflow: %w", err))
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	result := parser.Parse(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})

	if opts.Timer != nil {
		opts.Timer.Add("parse", time.Since(start))
	}
	span.Set("logs", strconv.Itoa(bag.Len())).End(nil)

	res.Doc = result.Doc
	res.Logs = bag.Items()
	// парсер сам глушит всё сверх MaxErrors, до сумки доходит только лимит
	res.Dropped = result.Dropped + bag.Dropped()

	if opts.Cache != nil {
		if err := opts.Cache.Store(file, opts.MaxDiagnostics, res.Logs, res.Dropped); err != nil {
			trace.Mark(ctx, trace.ScopeDocument, "cache-store-failed", err.Error())
		}
	}
	opts.emit(key, pipeline.StageParse, pipeline.StatusDone, len(res.Logs), nil)
	return res
}
