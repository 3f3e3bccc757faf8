package graph

import (
	"bytes"
	"testing"
)

func TestTranslateSegment(t *testing.T) {
	s := NewSequenceSource()

	tests := []struct {
		name      string
		sequence  string
		maxLength uint64
		want      Range
	}{
		{"chr1", "ACGTACGT", 3, Range{First: 1, Past: 4}}, // ACG TAC GT
		{"chr2", "GG", 3, Range{First: 4, Past: 5}},
		{"chr3", "TTTT", 2, Range{First: 5, Past: 7}},
	}

	for _, tt := range tests {
		got := s.TranslateSegment(tt.name, []byte(tt.sequence), tt.maxLength)
		if got != tt.want {
			t.Errorf("TranslateSegment(%q) = %+v, want %+v", tt.name, got, tt.want)
		}
		if s.GetTranslation(tt.name) != tt.want {
			t.Errorf("GetTranslation(%q) = %+v, want %+v", tt.name, s.GetTranslation(tt.name), tt.want)
		}
	}

	// The ranges tile the id space: every id from 1 to NextID belongs
	// to exactly one segment, and the chunks reassemble the sequences.
	for _, tt := range tests {
		r := s.GetTranslation(tt.name)
		var joined []byte
		for id := r.First; id < r.Past; id++ {
			if uint64(len(s.Sequence(id))) > tt.maxLength {
				t.Errorf("node %d of %q is longer than %d", id, tt.name, tt.maxLength)
			}
			joined = append(joined, s.Sequence(id)...)
		}
		if !bytes.Equal(joined, []byte(tt.sequence)) {
			t.Errorf("segment %q reassembles to %q, want %q", tt.name, joined, tt.sequence)
		}
	}

	if !s.UsesTranslation() {
		t.Error("UsesTranslation() = false after translating")
	}
	if got := s.GetTranslation("missing"); !got.Empty() {
		t.Errorf("GetTranslation(missing) = %+v, want empty", got)
	}
}

func TestSegmentOf(t *testing.T) {
	s := NewSequenceSource()
	s.TranslateSegment("a", []byte("ACGT"), 2) // ids 1, 2
	s.TranslateSegment("b", []byte("GG"), 2)   // id 3

	tests := []struct {
		id       uint64
		wantName string
		wantOK   bool
	}{
		{1, "a", true},
		{2, "a", true},
		{3, "b", true},
		{4, "", false},
		{0, "", false},
	}

	for _, tt := range tests {
		seg, ok := s.SegmentOf(tt.id)
		if ok != tt.wantOK || (ok && seg.Name != tt.wantName) {
			t.Errorf("SegmentOf(%d) = (%+v, %t), want (%q, %t)", tt.id, seg, ok, tt.wantName, tt.wantOK)
		}
	}
}

func TestAddNodeCopies(t *testing.T) {
	s := NewSequenceSource()
	buf := []byte("ACGT")
	s.AddNode(7, buf)
	buf[0] = 'T'
	if !bytes.Equal(s.Sequence(7), []byte("ACGT")) {
		t.Errorf("Sequence(7) = %q, want stored copy ACGT", s.Sequence(7))
	}
	if s.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", s.NodeCount())
	}
}

func TestNodeSet(t *testing.T) {
	n := NewNodeSet()
	n.CreateNode(1)
	n.CreateNode(2)
	n.CreateNode(1)
	if n.Len() != 2 {
		t.Errorf("Len() = %d, want 2", n.Len())
	}
	if !n.Has(1) || n.Has(3) {
		t.Error("Has() gave wrong membership")
	}
}
