package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// TabWidth is the visual width of a tab when measuring indentation and columns.
const TabWidth = 4

// File is an immutable source buffer together with its display path.
// Content is never modified after the file has been added to a FileSet;
// spans and tokens borrow from it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in runes
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 {
	return mustOffset(len(f.Content))
}
