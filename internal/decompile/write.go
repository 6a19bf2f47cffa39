package decompile

// Writer accumulates decompiled output and handles indentation. Unlike a
// formatter it never copies source fragments: everything is synthesized
// from the model graph.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a writer with the given options.
func NewWriter(opt Options) *Writer {
	return &Writer{opt: opt.withDefaults(), atLineStart: true}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for i := 0; i < w.indentLevel; i++ {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for i := 0; i < w.indentLevel*w.opt.IndentWidth; i++ {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine ensures the output ends with one fully blank line.
func (w *Writer) BlankLine() {
	w.Newline()
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}
