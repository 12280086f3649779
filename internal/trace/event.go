package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
	KindHeartbeat // watch loop liveness
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

// String returns the string representation of Kind.
func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event: one em command, one batch of
// documents, or one document. Lower values are coarser.
type Scope uint8

const (
	// ScopeCommand covers a whole em invocation.
	ScopeCommand Scope = iota + 1
	// ScopeBatch covers one run over a set of documents, such as a
	// directory check or a watch rebuild.
	ScopeBatch
	// ScopeDocument covers loading, lexing and parsing one document.
	ScopeDocument
)

var scopeNames = [...]string{
	ScopeCommand:  "command",
	ScopeBatch:    "batch",
	ScopeDocument: "document",
}

// String returns the string representation of Scope.
func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	RunID    string            // id of the run that produced the event
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	Doc      string            // document path for document-scope events
	Name     string            // e.g. "em check", "parse", "watch-batch"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}
