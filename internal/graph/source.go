// Package graph holds the node-sequence store built from GFA segments,
// the topology placeholder used during construction, and the combined
// view of an index plus its sequences that the GFA writers walk.
package graph

import "sort"

// Range is a half-open range [First, Past) of node ids.
type Range struct {
	First uint64
	Past  uint64
}

// Empty reports whether the range holds no ids.
func (r Range) Empty() bool { return r.Past <= r.First }

// Len returns the number of ids in the range.
func (r Range) Len() uint64 {
	if r.Empty() {
		return 0
	}
	return r.Past - r.First
}

// Segment records one translated GFA segment and the contiguous run of
// node ids it was split into.
type Segment struct {
	Name  string
	Nodes Range
}

// SequenceSource maps node ids to their sequences. When segment names
// are not usable node ids, or segments are longer than the node length
// limit, segments are translated: each gets a fresh contiguous run of
// ids and its sequence is split across them.
type SequenceSource struct {
	// Sequences maps a node id to its sequence bytes. The store owns
	// the bytes; callers may pass borrowed views.
	Sequences map[uint64][]byte

	// Segments holds the translated segments in insertion order.
	// Empty when no translation was needed.
	Segments []Segment

	// NextID is the next unused node id for translation.
	NextID uint64

	translation map[string]int
}

// NewSequenceSource returns an empty store. Translated ids start at 1;
// id 0 is reserved.
func NewSequenceSource() *SequenceSource {
	return &SequenceSource{
		Sequences:   make(map[uint64][]byte),
		NextID:      1,
		translation: make(map[string]int),
	}
}

// AddNode stores a copy of the sequence under an explicit node id.
func (s *SequenceSource) AddNode(id uint64, sequence []byte) {
	s.Sequences[id] = append([]byte(nil), sequence...)
}

// TranslateSegment assigns the segment a fresh contiguous range of node
// ids, splitting the sequence into chunks of at most maxLength bytes.
func (s *SequenceSource) TranslateSegment(name string, sequence []byte, maxLength uint64) Range {
	r := Range{First: s.NextID}
	for offset := uint64(0); offset < uint64(len(sequence)); offset += maxLength {
		end := offset + maxLength
		if end > uint64(len(sequence)) {
			end = uint64(len(sequence))
		}
		s.AddNode(s.NextID, sequence[offset:end])
		s.NextID++
	}
	r.Past = s.NextID
	s.translation[name] = len(s.Segments)
	s.Segments = append(s.Segments, Segment{Name: name, Nodes: r})
	return r
}

// UsesTranslation reports whether any segment was translated.
func (s *SequenceSource) UsesTranslation() bool { return len(s.Segments) > 0 }

// GetTranslation returns the node range assigned to a segment, or an
// empty range if the segment was never translated.
func (s *SequenceSource) GetTranslation(name string) Range {
	i, ok := s.translation[name]
	if !ok {
		return Range{}
	}
	return s.Segments[i].Nodes
}

// NodeCount returns the number of stored nodes.
func (s *SequenceSource) NodeCount() int { return len(s.Sequences) }

// Sequence returns the stored sequence for a node id, nil if absent.
func (s *SequenceSource) Sequence(id uint64) []byte { return s.Sequences[id] }

// NodeLength returns the sequence length of a node id.
func (s *SequenceSource) NodeLength(id uint64) uint64 {
	return uint64(len(s.Sequences[id]))
}

// ForEachSegment visits the translated segments in insertion order.
// Stops early if the callback returns false.
func (s *SequenceSource) ForEachSegment(segment func(name string, nodes Range) bool) {
	for _, seg := range s.Segments {
		if !segment(seg.Name, seg.Nodes) {
			return
		}
	}
}

// SegmentOf returns the translated segment containing a node id.
func (s *SequenceSource) SegmentOf(id uint64) (Segment, bool) {
	// Translation ranges tile the id space in ascending order.
	i := sort.Search(len(s.Segments), func(i int) bool {
		return s.Segments[i].Nodes.Past > id
	})
	if i == len(s.Segments) || id < s.Segments[i].Nodes.First {
		return Segment{}, false
	}
	return s.Segments[i], true
}

// rebuild restores the name lookup after deserialization.
func (s *SequenceSource) rebuild() {
	s.translation = make(map[string]int, len(s.Segments))
	for i, seg := range s.Segments {
		s.translation[seg.Name] = i
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
}

// NodeSet is a topology placeholder that records node identities during
// construction. It holds no edges.
type NodeSet struct {
	ids map[uint64]struct{}
}

// NewNodeSet returns an empty node set.
func NewNodeSet() *NodeSet {
	return &NodeSet{ids: make(map[uint64]struct{})}
}

// CreateNode records that a node id exists.
func (n *NodeSet) CreateNode(id uint64) { n.ids[id] = struct{}{} }

// Has reports whether a node id was recorded.
func (n *NodeSet) Has(id uint64) bool {
	_, ok := n.ids[id]
	return ok
}

// Len returns the number of recorded node ids.
func (n *NodeSet) Len() int { return len(n.ids) }
