// Package diagfmt renders diagnostics and analysis results for the CLI:
// a human-readable form with source context and a stable JSON form for
// tooling.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) formatMode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the rendered diagnostic list; 0 means no limit.
	Max          int
	IncludeNotes bool
}
