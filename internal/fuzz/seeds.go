package fuzztests

import (
	"testing"

	"syster/internal/stdlib"
)

const maxSeedBytes = 64 << 10

func addCorpusSeeds(f *testing.F) {
	addLibrarySeeds(f)
	addLanguageSeeds(f)
}

// The bundled model library is the richest corpus of valid notation we ship.
func addLibrarySeeds(f *testing.F) {
	files, err := stdlib.Files()
	if err != nil {
		return
	}
	for _, file := range files {
		f.Add(clampSeed(file.Content))
	}
}

func addLanguageSeeds(f *testing.F) {
	seeds := []string{
		"",
		"package P;",
		"package Vehicle { part def Engine; }",
		"package V { part def E :> Base::Part, Other; }",
		"package V { part e : Engine [1..4]; }",
		"part def 'Disk Brake' { doc \"quoted name\"; }",
		"package P { import A::B::*; classifier C; }",
		"class K :> A { datatype D; }",
		"requirement def R { requirement r : R; }",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
