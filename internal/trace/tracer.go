package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Nop is the tracer of a context without one. It records nothing.
var Nop Tracer = off{}

type off struct{}

func (off) Emit(*Event)   {}
func (off) Flush() error  { return nil }
func (off) Close() error  { return nil }
func (off) Level() Level  { return LevelOff }
func (off) Enabled() bool { return false }

// StorageMode determines how events are stored.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // circular buffer
	ModeBoth                          // stream + ring
)

// String returns the string representation of StorageMode.
func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	default:
		return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
	}
}

// Config holds tracer configuration.
type Config struct {
	Level      Level       // finest scope recorded
	Mode       StorageMode // storage mode
	Format     Format      // output format (FormatAuto for auto-detection)
	Output     io.Writer   // for stream mode (if nil, use OutputPath)
	OutputPath string      // alternative: file path ("-" for stderr)
	RingSize   int         // for ring mode (default 4096)
	RunID      string      // empty means a fresh NewRunID()
}

// New creates a Tracer based on Config. The result stamps every event
// with the run id; Ring returns the ring buffer, if one was created.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}
	if cfg.RunID == "" {
		cfg.RunID = NewRunID()
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if p := cfg.OutputPath; p != "" && p != "-" {
			if strings.HasSuffix(p, ".ndjson") || strings.HasSuffix(p, ".json") {
				format = FormatNDJSON
			} else if strings.HasSuffix(p, ".log") {
				format = FormatLog
			}
		}
	}

	var inner Tracer
	switch cfg.Mode {
	case ModeStream:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		inner = newSink(w, cfg.Level, format)

	case ModeRing:
		inner = NewRingTracer(cfg.RingSize, cfg.Level)

	case ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		inner = newFanout(cfg.Level, newSink(w, cfg.Level, format), NewRingTracer(cfg.RingSize, cfg.Level))

	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	return &runTracer{Tracer: inner, runID: cfg.RunID}, nil
}

func newSink(w io.Writer, level Level, format Format) Tracer {
	if format == FormatLog {
		return NewLogTracer(w, level)
	}
	return NewStreamTracer(w, level, format)
}

// openOutput opens the output writer from config.
func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}

	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		// stderr закрывать нельзя, поэтому прячем Close
		return struct{ io.Writer }{os.Stderr}, nil
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}

	return f, nil
}

// Ring returns the ring buffer behind t, if any.
func Ring(t Tracer) *RingTracer {
	switch t := t.(type) {
	case *RingTracer:
		return t
	case *runTracer:
		return Ring(t.Tracer)
	case *fanout:
		for _, inner := range t.sinks {
			if r := Ring(inner); r != nil {
				return r
			}
		}
	}
	return nil
}
