package trace

import (
	"fmt"
	"strings"
)

// Level is the finest Scope a tracer records. Its values line up with Scope.
type Level uint8

const (
	LevelOff      Level = iota
	LevelCommand        // one span per em invocation
	LevelBatch          // plus directory runs and watch rebuilds
	LevelDocument       // plus per-document load, lex and parse
)

var levelNames = [...]string{
	LevelOff:      "off",
	LevelCommand:  "command",
	LevelBatch:    "batch",
	LevelDocument: "document",
}

// String returns the string representation of Level.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	for l, name := range levelNames {
		if name == s {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return l != LevelOff && uint8(scope) <= uint8(l)
}
