package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) of one source buffer.
// It references the buffer and never copies it.
type Span struct {
	File  *File
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// NewSpan builds a span over f. Offsets outside the buffer are a programming
// error and cause a panic.
func NewSpan(f *File, start, end uint32) Span {
	if f == nil {
		panic("source: span without file")
	}
	if start > end || end > f.Len() {
		panic(fmt.Sprintf("source: span %d-%d out of range for %q (len %d)", start, end, f.Path, len(f.Content)))
	}
	return Span{File: f, Start: start, End: end}
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the span length in bytes.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Valid reports whether the span is attached to a file.
func (s Span) Valid() bool {
	return s.File != nil
}

// Slice returns the exact source text covered by the span.
func (s Span) Slice() string {
	if s.File == nil {
		return ""
	}
	return string(s.File.Content[s.Start:s.End])
}

// Bytes returns the covered bytes without copying.
func (s Span) Bytes() []byte {
	if s.File == nil {
		return nil
	}
	return s.File.Content[s.Start:s.End]
}

// Merge returns the smallest span covering both s and other.
// Merging spans of different buffers panics.
func (s Span) Merge(other Span) Span {
	if s.File == nil {
		return other
	}
	if other.File == nil {
		return s
	}
	if s.File != other.File {
		panic(fmt.Sprintf("source: merging spans of %q and %q", s.File.Path, other.File.Path))
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// StartPos resolves the start of the span to a line and column.
func (s Span) StartPos() LineCol {
	return s.File.Position(s.Start)
}

// EndPos resolves the end of the span to a line and column.
func (s Span) EndPos() LineCol {
	return s.File.Position(s.End)
}

// String formats the span as path:start-end.
func (s Span) String() string {
	if s.File == nil {
		return fmt.Sprintf("<none>:%d-%d", s.Start, s.End)
	}
	return fmt.Sprintf("%s:%d-%d", s.File.Path, s.Start, s.End)
}
