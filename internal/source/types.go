package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, repl).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHasBOM
	FileHasCRLF
	FileNotNFC // содержимое не в NFC; байты не переписываются
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Text returns the source text covered by sp. Out-of-range spans are clamped.
func (f *File) Text(sp Span) string {
	end := min(int(sp.End), len(f.Content))
	start := min(int(sp.Start), end)
	return string(f.Content[start:end])
}
