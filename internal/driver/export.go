package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"syster/internal/codec"
	"syster/internal/codec/jsonld"
	"syster/internal/codec/kpar"
	"syster/internal/codec/xmi"
	"syster/internal/decompile"
	"syster/internal/model"
)

// CodecFor returns the codec implementing the given interchange format.
func CodecFor(format codec.Format) (codec.Codec, error) {
	switch format {
	case codec.FormatXMI:
		return xmi.Codec{}, nil
	case codec.FormatJSONLD:
		return jsonld.Codec{}, nil
	case codec.FormatKPAR:
		return kpar.Codec{}, nil
	default:
		return nil, fmt.Errorf("unknown interchange format %q", format)
	}
}

// ParseFormat maps a user-facing format name onto a codec format.
// Accepted spellings: xmi, json-ld (jsonld), kpar.
func ParseFormat(name string) (codec.Format, error) {
	switch strings.ToLower(name) {
	case "xmi":
		return codec.FormatXMI, nil
	case "json-ld", "jsonld":
		return codec.FormatJSONLD, nil
	case "kpar":
		return codec.FormatKPAR, nil
	default:
		return 0, fmt.Errorf("unknown interchange format %q (want xmi, json-ld or kpar)", name)
	}
}

// FormatFromPath guesses the interchange format from a file extension.
func FormatFromPath(path string) (codec.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xmi", ".xml":
		return codec.FormatXMI, nil
	case ".jsonld", ".json":
		return codec.FormatJSONLD, nil
	case ".kpar":
		return codec.FormatKPAR, nil
	default:
		return 0, fmt.Errorf("cannot infer interchange format from %q", path)
	}
}

// Encode renders the graph in the given interchange format.
func Encode(g *model.Graph, format codec.Format) ([]byte, error) {
	c, err := CodecFor(format)
	if err != nil {
		return nil, err
	}
	return c.Encode(g)
}

// Export encodes the graph and writes it to outPath.
func Export(g *model.Graph, format codec.Format, outPath string, sink ProgressSink) error {
	start := time.Now()
	emit(sink, Event{File: outPath, Stage: StageExport, Status: StatusWorking})
	data, err := Encode(g, format)
	if err != nil {
		emit(sink, Event{File: outPath, Stage: StageExport, Status: StatusError, Err: err})
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		emit(sink, Event{File: outPath, Stage: StageExport, Status: StatusError, Err: err})
		return err
	}
	emit(sink, Event{File: outPath, Stage: StageExport, Status: StatusDone, Elapsed: time.Since(start)})
	return nil
}

// Import reads an interchange file and decodes it into a graph, inferring
// the format from the file extension.
func Import(path string) (*model.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := CodecFor(format)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// Decompile renders the graph back into source notation.
func Decompile(g *model.Graph) []byte {
	return decompile.Graph(g, decompile.Options{})
}
