// Package codec defines the shared contract for the interchange format
// codecs (XMI, JSON-LD, KPAR). The format set is closed: each codec lives in
// its own subpackage and the driver selects between them explicitly.
package codec

import (
	"fmt"

	"syster/internal/diag"
	"syster/internal/model"
)

// Format tags one of the supported interchange formats.
type Format uint8

const (
	// FormatXMI is XML Metadata Interchange.
	FormatXMI Format = iota + 1
	// FormatJSONLD is the JSON linked-data graph form.
	FormatJSONLD
	// FormatKPAR is the Kernel Package Archive (ZIP container).
	FormatKPAR
)

func (f Format) String() string {
	switch f {
	case FormatXMI:
		return "xmi"
	case FormatJSONLD:
		return "json-ld"
	case FormatKPAR:
		return "kpar"
	}
	return "unknown"
}

// Codec encodes an element graph into bytes and back. Implementations must
// round-trip qualified names, kinds and supertype references; spans and
// formatting fidelity are not preserved.
type Codec interface {
	Format() Format
	Encode(g *model.Graph) ([]byte, error)
	Decode(data []byte) (*model.Graph, error)
}

// FormatError reports malformed or unsupported interchange input. It fails
// the decode operation, never the whole session, and decode returns no
// partial graph alongside it.
type FormatError struct {
	Format Format
	Code   diag.Code
	Msg    string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Format, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Format, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Errorf builds a FormatError with a formatted message.
func Errorf(f Format, code diag.Code, format string, args ...any) *FormatError {
	return &FormatError{Format: f, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a FormatError around an underlying error.
func Wrap(f Format, code diag.Code, msg string, err error) *FormatError {
	return &FormatError{Format: f, Code: code, Msg: msg, Err: err}
}
