package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"emblem/internal/pipeline"
	"emblem/internal/source"
	"emblem/internal/trace"
)

// DirResult is the outcome for one file of a directory run. Exactly one of
// Result and Err is set.
type DirResult struct {
	Path   string
	Result *ParseResult
	Err    error // ошибка загрузки файла
}

// ListFiles returns the sorted documents under root with extension ext.
// A root naming a file is returned as is.
func ListFiles(root, ext string) ([]string, error) {
	if ext == "" {
		ext = DocumentExt
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root || strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every document under dir concurrently.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []DirResult, error) {
	files, err := ListFiles(dir, opts.ext())
	if err != nil {
		return nil, nil, err
	}
	return ParseFiles(ctx, dir, files, opts)
}

// ParseFiles parses files concurrently, at most opts.Jobs at a time.
// Results keep the order of files. Load failures are reported per file and
// do not stop the run; the returned error is only ever ctx's.
func ParseFiles(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []DirResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	span, ctx := trace.Start(ctx, trace.ScopeBatch, "parse-files")
	span.Set("files", strconv.Itoa(len(files)))
	defer span.End(nil)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	pipeline.EmitQueued(opts.Progress, files)

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Path = path
			file, err := load(gctx, fileSet, path, opts)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result = parseFile(gctx, fileSet, file, path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
