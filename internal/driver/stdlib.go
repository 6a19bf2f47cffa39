package driver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"syster/internal/diag"
	"syster/internal/source"
	"syster/internal/stdlib"
)

// loadLibrary adds the model library to the file set and returns its file
// IDs, in a stable order. The embedded library is used unless a directory
// override is given; a bad override is a fatal configuration error.
func loadLibrary(fileSet *source.FileSet, opts Options) ([]source.FileID, error) {
	if opts.NoStdlib {
		return nil, nil
	}
	if opts.StdlibPath != "" {
		return loadLibraryDir(fileSet, opts.StdlibPath)
	}
	files, err := stdlib.Files()
	if err != nil {
		return nil, &ConfigError{Code: diag.ConfStdlibPath, Msg: "bundled library is corrupt", Err: err}
	}
	ids := make([]source.FileID, 0, len(files))
	for _, f := range files {
		ids = append(ids, fileSet.Add("stdlib/"+f.Name, f.Content, source.FileStdlib|source.FileVirtual))
	}
	return ids, nil
}

func loadLibraryDir(fileSet *source.FileSet, dir string) ([]source.FileID, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &ConfigError{Code: diag.ConfStdlibPath, Msg: "stdlib path " + dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Code: diag.ConfStdlibPath, Msg: "stdlib path " + dir + " is not a directory"}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ConfigError{Code: diag.ConfStdlibPath, Msg: "stdlib path " + dir, Err: err}
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && isSourcePath(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, &ConfigError{Code: diag.ConfStdlibPath,
			Msg: "stdlib path " + dir + " contains no .sysml or .kerml files"}
	}
	sort.Strings(paths)
	ids := make([]source.FileID, 0, len(paths))
	for _, p := range paths {
		id, err := fileSet.LoadStdlib(p)
		if err != nil {
			return nil, &ConfigError{Code: diag.ConfStdlibPath, Msg: "cannot load " + p, Err: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// LibraryPackages lists the package-level names the bundled library provides.
// Used by diagnostics to hint at missing imports.
func LibraryPackages() []string {
	files, err := stdlib.Files()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f.Name, filepath.Ext(f.Name)))
	}
	return names
}
