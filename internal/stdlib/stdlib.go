// Package stdlib embeds the bundled model library. The library ships inside
// the binary so analysis works without any installation step; a disk
// directory can override it via the driver options.
package stdlib

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed sysml/*.sysml
var library embed.FS

// File is one bundled library source.
type File struct {
	Name    string // base name, e.g. "Base.sysml"
	Content []byte
}

// Files returns the bundled library sources sorted by name.
func Files() ([]File, error) {
	entries, err := fs.ReadDir(library, "sysml")
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		content, err := library.ReadFile("sysml/" + e.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: e.Name(), Content: content})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
