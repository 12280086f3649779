package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"emblem/internal/diag"
	"emblem/internal/diagfmt"
	"emblem/internal/driver"
	"emblem/internal/observ"
	"emblem/internal/pipeline"
	"emblem/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.em|directory ...]",
	Short: "Report diagnostics for emblem documents",
	Long: `Check parses emblem documents and reports their diagnostics.
Without arguments it checks the [paths].include roots of emblem.toml, or the
current directory.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("disk-cache", false, "reuse diagnostics of unchanged documents from the on-disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before checking")
	checkCmd.Flags().String("ui", "auto", "show a progress view (auto|on|off)")
	checkCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("with-notes", false, "include notes in short, json and yaml output")
	checkCmd.Flags().Int8("context", 0, "lines of source context before each annotated line")
	checkCmd.Flags().Bool("sort", false, "order diagnostics by file and position instead of report order")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit with status 1 when warnings are reported")
}

// checkRequest is everything runCheck needs besides the documents.
type checkRequest struct {
	settings
	render    renderOpts
	sort      bool
	strict    bool // --warnings-as-errors
	cache     *driver.DiskCache
	ui        uiMode
	baseDir   string
	targetArg []string
}

func readCheckRequest(cmd *cobra.Command, args []string) (*checkRequest, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	req := &checkRequest{settings: s, targetArg: args}

	switch s.format {
	case "pretty", "short", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown format: %s", s.format)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return nil, err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return nil, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt8("context")
	if err != nil {
		return nil, fmt.Errorf("failed to get context flag: %w", err)
	}
	req.render = renderOpts{
		format:    s.format,
		color:     useColor(cmd, os.Stdout),
		context:   contextLines,
		pathMode:  pathMode,
		withNotes: withNotes,
	}

	if req.sort, err = cmd.Flags().GetBool("sort"); err != nil {
		return nil, fmt.Errorf("failed to get sort flag: %w", err)
	}
	if req.strict, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return nil, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if req.ui, err = readUIMode(uiStr); err != nil {
		return nil, err
	}

	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("emblem")
		if err != nil {
			return nil, fmt.Errorf("disk cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return nil, fmt.Errorf("disk cache: %w", err)
			}
		}
		if useCache {
			req.cache = cache
		}
	}

	if req.baseDir, err = os.Getwd(); err != nil {
		return nil, err
	}
	if s.manifest != nil && len(args) == 0 {
		req.baseDir = s.manifest.Root
	}
	return req, nil
}

// targets lists the documents named by args, or by the manifest roots.
func (r *checkRequest) targets() ([]string, error) {
	roots := r.targetArg
	if len(roots) == 0 {
		roots = r.roots
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	var files []string
	seen := make(map[string]bool)
	for _, root := range roots {
		found, err := driver.ListFiles(root, driver.DocumentExt)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

func (r *checkRequest) driverOptions(timer *observ.Timer) driver.Options {
	return driver.Options{
		MaxDiagnostics: r.maxDiagnostics,
		Jobs:           r.jobs,
		Cache:          r.cache,
		Timer:          timer,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	req, err := readCheckRequest(cmd, args)
	if err != nil {
		return err
	}
	files, err := req.targets()
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	var timings pipeline.Timings

	start := time.Now()
	var (
		fs      *source.FileSet
		results []driver.DirResult
	)
	if shouldUseTUI(req.ui, len(files)) {
		fs, results, err = runCheckWithUI(cmd.Context(), "checking", req.baseDir, files, req.driverOptions(timer))
	} else {
		fs, results, err = driver.ParseFiles(cmd.Context(), req.baseDir, files, req.driverOptions(timer))
	}
	if err != nil {
		return err
	}
	timings.Set(pipeline.StageParse, time.Since(start))

	start = time.Now()
	failed, errs := reportResults(cmd, req, fs, results)
	timings.Set(pipeline.StageReport, time.Since(start))

	if req.timings {
		printTimer(os.Stderr, timer)
		printStageTimings(os.Stderr, timings)
	}
	if errs != nil {
		return errs
	}
	if failed {
		return errHasErrors
	}
	return nil
}

// reportResults prints the logs of every result. failed is true when a
// file could not be read or produced an error-severity log.
func reportResults(cmd *cobra.Command, req *checkRequest, fs *source.FileSet, results []driver.DirResult) (failed bool, err error) {
	bag := diag.NewBag(0)
	unreadable := 0
	for _, r := range results {
		if r.Err != nil {
			unreadable++
			fmt.Fprintf(os.Stderr, "error: %v\n", r.Err)
			continue
		}
		for _, l := range r.Result.Logs {
			bag.Add(l)
		}
		if r.Result.Dropped > 0 && !req.quiet {
			fmt.Fprintf(os.Stderr, "note: %s: %d more %s not shown (--max-diagnostics %d)\n",
				r.Result.File.FormatPath("auto", fs.BaseDir()), r.Result.Dropped,
				diag.Pluralize(r.Result.Dropped, "diagnostic", "diagnostics"), req.maxDiagnostics)
		}
	}

	if req.sort {
		bag.Sort()
	}
	visible := bag.Filter(req.verbosity)
	if err := renderLogs(cmd.OutOrStdout(), visible, fs, req.render); err != nil {
		return true, err
	}
	if !req.quiet && (req.format == "pretty" || req.format == "short") {
		fmt.Fprintln(os.Stderr, summaryLine(len(results), bag, unreadable))
	}
	return unreadable > 0 || bag.HasErrors() || (req.strict && bag.HasWarnings()), nil
}
