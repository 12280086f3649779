package diag

import "fmt"

// Verbosity is the caller-selected visibility threshold for logs.
// The zero value is Terse.
type Verbosity uint8

const (
	// Terse shows errors and warnings only.
	Terse Verbosity = iota
	// Verbose shows every log.
	Verbose
	// Debug shows every log; outer layers may add internal detail.
	Debug
)

func (v Verbosity) String() string {
	switch v {
	case Terse:
		return "terse"
	case Verbose:
		return "verbose"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("verbosity(%d)", uint8(v))
}

// ParseVerbosity parses "terse", "verbose" or "debug".
func ParseVerbosity(s string) (Verbosity, error) {
	switch s {
	case "", "terse":
		return Terse, nil
	case "verbose":
		return Verbose, nil
	case "debug":
		return Debug, nil
	}
	return Terse, fmt.Errorf("unknown verbosity %q (want terse|verbose|debug)", s)
}

// PermitsPrinting reports whether a log of severity sev is observable at v.
func PermitsPrinting(v Verbosity, sev Severity) bool {
	if v == Terse {
		return sev == SevError || sev == SevWarning
	}
	return true
}

// Filter returns the logs observable at v, preserving order.
func Filter(v Verbosity, logs []Log) []Log {
	out := make([]Log, 0, len(logs))
	for _, l := range logs {
		if PermitsPrinting(v, l.Severity) {
			out = append(out, l)
		}
	}
	return out
}
