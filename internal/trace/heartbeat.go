package trace

import (
	"context"
	"time"
)

// Beat records that a long-running loop is still alive. detail says what
// the loop is waiting on. Beats pass every level filter so that a stuck
// watch shows up even in a command-level trace.
func Beat(ctx context.Context, name, detail string) {
	b := bindingOf(ctx)
	if !b.tracer.Enabled() {
		return
	}
	b.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindHeartbeat,
		Scope:    ScopeCommand,
		ParentID: b.span,
		Name:     name,
		Detail:   detail,
	})
}
