package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	// Добавляем файл первый раз
	f1 := fs.Add("notes.em", []byte("hello world"), 0)
	if f1.ID != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", f1.ID)
	}

	latest, exists := fs.GetLatest("notes.em")
	if !exists {
		t.Fatal("Expected file to exist after Add")
	}
	if latest != f1 {
		t.Errorf("Expected latest to be file %d, got %d", f1.ID, latest.ID)
	}

	// Добавляем тот же файл с новым содержимым
	f2 := fs.Add("notes.em", []byte("hello universe"), 0)
	if f2.ID != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", f2.ID)
	}

	latest, _ = fs.GetLatest("notes.em")
	if latest != f2 {
		t.Errorf("Expected latest to be file %d, got %d", f2.ID, latest.ID)
	}

	// Старый буфер остаётся доступным и неизменным
	if got := string(fs.Get(f1.ID).Content); got != "hello world" {
		t.Errorf("Expected first file content to be 'hello world', got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddVirtual("virtual.em", []byte("a\nbc\n\nd"))

	want := []uint32{1, 4, 5}
	if len(f.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
	}
	for i := range want {
		if f.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, f.LineIdx[i], want[i])
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestCRLFNormalization(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\r\nc\r"))
	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}
	// одиночный \r не трогаем
	if string(normalized) != "a\nb\nc\r" {
		t.Errorf("normalizeCRLF() = %q, want %q", normalized, "a\nb\nc\r")
	}

	same, changed := normalizeCRLF([]byte("plain\n"))
	if changed || string(same) != "plain\n" {
		t.Errorf("normalizeCRLF() changed content without CR: %q", same)
	}
}

func TestBOMRemoval(t *testing.T) {
	withoutBOM, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x', '\n'})
	if !hadBOM {
		t.Error("Expected BOM to be detected")
	}
	if string(withoutBOM) != "x\n" {
		t.Errorf("Expected content without BOM %q, got %q", "x\n", withoutBOM)
	}
}

func TestPositionUTF8(t *testing.T) {
	fs := NewFileSet()
	// α занимает 2 байта, колонка считается в рунах
	f := fs.AddVirtual("utf8.em", []byte("αβ x\nyz"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 2}},
		{4, LineCol{Line: 1, Col: 3}},
		{6, LineCol{Line: 1, Col: 5}},
		{7, LineCol{Line: 2, Col: 1}},
		{9, LineCol{Line: 2, Col: 3}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}

	start, end := fs.Resolve(NewSpan(f, 2, 9))
	if start != (LineCol{Line: 1, Col: 2}) || end != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("Resolve() = %+v, %+v", start, end)
	}
}

func TestVisualColumn(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddVirtual("cols.em", []byte("ab\n\t  /*"))

	if got := f.VisualColumn(1); got != 1 {
		t.Errorf("VisualColumn(1) = %d, want 1", got)
	}
	if got := f.VisualColumn(6); got != 6 {
		t.Errorf("VisualColumn(6) = %d, want 6", got)
	}
	if got := f.LineStart(6); got != 3 {
		t.Errorf("LineStart(6) = %d, want 3", got)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddVirtual("lines.em", []byte("first\nsecond\n\nlast"))

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, ""},
		{4, "last"},
		{5, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantFlags FileFlags
	}{
		{name: "plain", raw: "a\nb\n", want: "a\nb\n"},
		{name: "bom", raw: "\xEF\xBB\xBFa\nb\n", want: "a\nb\n", wantFlags: FileHadBOM},
		{name: "crlf", raw: "a\r\nb\r\n", want: "a\nb\n", wantFlags: FileNormalizedCRLF},
		{name: "bom and crlf", raw: "\xEF\xBB\xBFa\r\n", want: "a\n", wantFlags: FileHadBOM | FileNormalizedCRLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc.em")
			if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
				t.Fatalf("failed to write temp file: %v", err)
			}

			fs := NewFileSet()
			f, err := fs.Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if string(f.Content) != tt.want {
				t.Errorf("content = %q, want %q", f.Content, tt.want)
			}
			if f.Flags != tt.wantFlags {
				t.Errorf("flags = %b, want %b", f.Flags, tt.wantFlags)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(filepath.Join(t.TempDir(), "missing.em"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errorsIsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
