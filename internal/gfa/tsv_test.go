package gfa

import (
	"bytes"
	"testing"
)

func TestTSVWriter(t *testing.T) {
	var out bytes.Buffer
	w := NewTSVWriter(&out)

	w.Put('S')
	w.NewField()
	w.WriteString("chr1")
	w.NewField()
	w.Write([]byte("ACGT"))
	w.NewLine()
	w.Put('W')
	w.NewField()
	w.WriteUint(42)
	w.NewLine()

	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "S\tchr1\tACGT\nW\t42\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestTSVWriterLargeWrites(t *testing.T) {
	var out bytes.Buffer
	w := NewTSVWriter(&out)

	// Larger than the internal buffer, forcing intermediate flushes.
	big := bytes.Repeat([]byte("ACGT"), tsvBufferSize/2)
	w.Write(big)
	w.NewLine()

	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != len(big)+1 {
		t.Errorf("wrote %d bytes, want %d", out.Len(), len(big)+1)
	}
}
