package trace

import (
	"github.com/google/uuid"
)

// NewRunID returns a fresh random run id.
func NewRunID() string {
	return uuid.NewString()
}

// runTracer stamps the run id on every event before passing it on.
type runTracer struct {
	Tracer
	runID string
}

func (t *runTracer) Emit(ev *Event) {
	if ev.RunID == "" {
		ev.RunID = t.runID
	}
	t.Tracer.Emit(ev)
}

// RunID returns the id stamped by t, or "" when t does not stamp one.
func RunID(t Tracer) string {
	if rt, ok := t.(*runTracer); ok {
		return rt.runID
	}
	return ""
}
