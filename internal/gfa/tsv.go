package gfa

import (
	"io"
	"strconv"
)

// tsvBufferSize is how many bytes accumulate before a flush.
const tsvBufferSize = 1 << 20

// TSVWriter emits tab-separated lines through a fixed-size buffer.
// Errors stick: after the first write failure everything becomes a
// no-op and Flush reports the error.
type TSVWriter struct {
	out io.Writer
	buf []byte
	err error
}

// NewTSVWriter wraps an io.Writer.
func NewTSVWriter(out io.Writer) *TSVWriter {
	return &TSVWriter{out: out, buf: make([]byte, 0, tsvBufferSize)}
}

// Put appends a single byte.
func (w *TSVWriter) Put(c byte) {
	w.buf = append(w.buf, c)
	if len(w.buf) >= tsvBufferSize {
		w.flushBuffer()
	}
}

// Write appends raw bytes.
func (w *TSVWriter) Write(data []byte) {
	for len(data) > 0 {
		n := tsvBufferSize - len(w.buf)
		if n > len(data) {
			n = len(data)
		}
		w.buf = append(w.buf, data[:n]...)
		data = data[n:]
		if len(w.buf) >= tsvBufferSize {
			w.flushBuffer()
		}
	}
}

// WriteString appends a string.
func (w *TSVWriter) WriteString(s string) {
	w.Write([]byte(s))
}

// WriteUint appends the decimal representation of an integer.
func (w *TSVWriter) WriteUint(v uint64) {
	w.buf = strconv.AppendUint(w.buf, v, 10)
	if len(w.buf) >= tsvBufferSize {
		w.flushBuffer()
	}
}

// NewField ends the current field.
func (w *TSVWriter) NewField() { w.Put('\t') }

// NewLine ends the current line.
func (w *TSVWriter) NewLine() { w.Put('\n') }

func (w *TSVWriter) flushBuffer() {
	if w.err != nil {
		w.buf = w.buf[:0]
		return
	}
	_, w.err = w.out.Write(w.buf)
	w.buf = w.buf[:0]
}

// Flush writes out everything buffered and returns the first error
// seen, if any.
func (w *TSVWriter) Flush() error {
	w.flushBuffer()
	return w.err
}
