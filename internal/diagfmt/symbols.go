package diagfmt

import (
	"encoding/json"
	"io"

	"syster/internal/model"
	"syster/internal/source"
)

// SymbolJSON is one model symbol rendered for the symbol dump.
type SymbolJSON struct {
	Name          string   `json:"name"`
	QualifiedName string   `json:"qualified_name"`
	Kind          string   `json:"kind"`
	Owner         string   `json:"owner,omitempty"`
	File          string   `json:"file"`
	StartLine     uint32   `json:"start_line"`
	StartCol      uint32   `json:"start_col"`
	EndLine       uint32   `json:"end_line"`
	EndCol        uint32   `json:"end_col"`
	Supertypes    []string `json:"supertypes,omitempty"`
	Doc           string   `json:"doc,omitempty"`
}

// FileSymbolsJSON groups the symbols declared in one source file.
type FileSymbolsJSON struct {
	File    string       `json:"file"`
	Symbols []SymbolJSON `json:"symbols"`
}

// Symbols flattens the units into per-file symbol dumps, skipping
// standard-library units.
func Symbols(units []*model.FileUnit, fs *source.FileSet, mode PathMode) []FileSymbolsJSON {
	var out []FileSymbolsJSON
	for _, unit := range units {
		if unit.Stdlib {
			continue
		}
		fileJSON := FileSymbolsJSON{File: unit.Path, Symbols: []SymbolJSON{}}
		if fs != nil && int(unit.FileID) < fs.Len() {
			fileJSON.File = fs.Get(unit.FileID).FormatPath(mode.formatMode(), fs.BaseDir())
		}
		for _, root := range unit.Elements {
			root.Walk(func(el *model.Element) {
				if !el.Kind.IsSymbol() {
					return
				}
				sj := SymbolJSON{
					Name:          el.Name,
					QualifiedName: el.QualifiedName,
					Kind:          el.Kind.String(),
					Owner:         el.OwnerQualifiedName(),
					File:          fileJSON.File,
					Supertypes:    el.SupertypeNames(),
					Doc:           el.Doc,
				}
				if fs != nil && !el.Span.Empty() {
					start, end := fs.Resolve(el.Span)
					sj.StartLine = start.Line
					sj.StartCol = start.Col
					sj.EndLine = end.Line
					sj.EndCol = end.Col
				}
				fileJSON.Symbols = append(fileJSON.Symbols, sj)
			})
		}
		out = append(out, fileJSON)
	}
	return out
}

// GraphSymbols flattens a decoded interchange graph into the symbol dump
// shape. Decoded elements carry no spans, so positions stay zero; file names
// all the symbols since the graph keeps no per-element file association.
func GraphSymbols(g *model.Graph, file string) []FileSymbolsJSON {
	fileJSON := FileSymbolsJSON{File: file, Symbols: []SymbolJSON{}}
	for _, root := range g.Roots {
		root.Walk(func(el *model.Element) {
			if !el.Kind.IsSymbol() {
				return
			}
			fileJSON.Symbols = append(fileJSON.Symbols, SymbolJSON{
				Name:          el.Name,
				QualifiedName: el.QualifiedName,
				Kind:          el.Kind.String(),
				Owner:         el.OwnerQualifiedName(),
				File:          file,
				Supertypes:    el.SupertypeNames(),
				Doc:           el.Doc,
			})
		})
	}
	return []FileSymbolsJSON{fileJSON}
}

// WriteSymbolsJSON writes the per-file symbol dump to w.
func WriteSymbolsJSON(w io.Writer, files []FileSymbolsJSON) error {
	if files == nil {
		files = []FileSymbolsJSON{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(files)
}
