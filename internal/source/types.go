package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a file entered the set.
	FileFlags uint8
)

const (
	// FileVirtual marks files added from memory (tests, stdin, embedded stdlib).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks files whose UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks files whose CRLF line endings were normalized.
	FileNormalizedCRLF
	// FileStdlib marks standard-library files; their symbols are not counted
	// in analysis results.
	FileStdlib
)

// File captures content and metadata for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n'
	Flags   FileFlags
}

// IsStdlib reports whether the file belongs to the standard library set.
func (f *File) IsStdlib() bool { return f.Flags&FileStdlib != 0 }

// LineCol is a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
