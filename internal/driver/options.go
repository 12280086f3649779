package driver

import (
	"emblem/internal/observ"
	"emblem/internal/pipeline"
)

// DocumentExt is the extension of documents picked up by directory runs.
const DocumentExt = ".em"

// Options configures a driver run.
type Options struct {
	// MaxDiagnostics caps the logs kept per file; 0 means unlimited.
	MaxDiagnostics int
	// Jobs bounds directory fan-out; <= 0 means GOMAXPROCS.
	Jobs int
	// Ext overrides DocumentExt for directory listing.
	Ext string
	// Cache, when set, serves and stores per-file logs on disk.
	Cache *DiskCache
	// Timer accumulates per-phase durations across files.
	Timer    *observ.Timer
	Progress pipeline.ProgressSink
}

func (o Options) ext() string {
	if o.Ext != "" {
		return o.Ext
	}
	return DocumentExt
}

func (o Options) emit(file string, stage pipeline.Stage, status pipeline.Status, logs int, err error) {
	if o.Progress == nil || file == "" {
		return
	}
	o.Progress.OnEvent(pipeline.Event{File: file, Stage: stage, Status: status, Err: err, Logs: logs})
}
