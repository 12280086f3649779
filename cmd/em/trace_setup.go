package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emblem/internal/trace"
)

// activeTracer is the tracer of the current run, for dumps on panic.
var activeTracer trace.Tracer = trace.Nop

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}

	// --trace без уровня включает пакеты
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelBatch
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer

	span, ctx := trace.Start(trace.WithTracer(cmd.Context(), tracer), trace.ScopeCommand, cmd.CommandPath())
	span.Set("run", trace.RunID(tracer))
	cmd.SetContext(ctx)

	cleanup := func() {
		span.End(nil)
		if mode == trace.ModeRing && traceOutput != "" {
			if err := dumpRing(tracer, traceOutput, format); err != nil {
				fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
		}
		activeTracer = trace.Nop
	}
	return cleanup, nil
}

// dumpRing writes the ring buffer of t to path ("-" for stderr).
func dumpRing(t trace.Tracer, path string, format trace.Format) error {
	ring := trace.Ring(t)
	if ring == nil {
		return nil
	}
	if format == trace.FormatAuto || format == trace.FormatLog {
		format = trace.FormatText
	}
	if path == "" || path == "-" {
		return ring.Dump(os.Stderr, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ring.Dump(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// dumpTraceOnPanic prints the spans still open and the last events of the
// ring buffer to stderr before re-panicking.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if ring := trace.Ring(activeTracer); ring != nil {
		if open := ring.InFlight(); len(open) > 0 {
			fmt.Fprintln(os.Stderr, "trace: in progress at panic:")
			for i := range open {
				_, _ = os.Stderr.Write(trace.FormatEvent(&open[i], trace.FormatText))
			}
		}
		fmt.Fprintln(os.Stderr, "trace: last events before panic:")
		tail := ring.Tail(panicTail)
		for i := range tail {
			_, _ = os.Stderr.Write(trace.FormatEvent(&tail[i], trace.FormatText))
		}
	}
	panic(r)
}

// panicTail is how many recent events a panic dump shows.
const panicTail = 64
