package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"emblem/internal/driver"
	"emblem/internal/observ"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [file.em|directory ...]",
	Short: "Re-check emblem documents whenever they change",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("format", "short", "output format (pretty|short|json|yaml)")
	watchCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "wait this long for writes to settle")
}

func runWatch(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	switch s.format {
	case "pretty", "short", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	heartbeat, err := cmd.Root().PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	req := &checkRequest{
		settings:  s,
		render:    renderOpts{format: s.format, color: useColor(cmd, os.Stdout)},
		targetArg: args,
	}
	if req.baseDir, err = os.Getwd(); err != nil {
		return err
	}
	roots := args
	if len(roots) == 0 {
		roots = s.roots
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	watcher, err := driver.NewWatcher(roots, driver.DocumentExt)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	watcher.Debounce = debounce
	watcher.Heartbeat = heartbeat

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	files, err := req.targets()
	if err != nil {
		return err
	}
	recheck(ctx, cmd, req, files)

	return watcher.Run(ctx, func(changed []string) {
		recheck(ctx, cmd, req, changed)
	})
}

// recheck parses files and prints their logs; errors never stop the watch.
func recheck(ctx context.Context, cmd *cobra.Command, req *checkRequest, files []string) {
	if !req.quiet {
		fmt.Fprintf(os.Stderr, "[%s] checking %d file(s)\n", time.Now().Format("15:04:05"), len(files))
	}
	timer := observ.NewTimer()
	fs, results, err := driver.ParseFiles(ctx, req.baseDir, files, req.driverOptions(timer))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if _, err := reportResults(cmd, req, fs, results); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	if req.timings {
		printTimer(os.Stderr, timer)
	}
}
