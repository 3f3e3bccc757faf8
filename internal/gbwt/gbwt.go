package gbwt

// Edge is one observed adjacency between two oriented nodes.
type Edge struct {
	From uint64
	To   uint64
}

// GBWT is the immutable bit-packed index of oriented node sequences.
// Sequence 2i is path i as inserted; sequence 2i+1 is its reverse
// complement. Only Builder.Finish creates one.
type GBWT struct {
	// NodeWidth is the bit width of stored node encodings.
	NodeWidth uint8

	// Offset is the smallest node encoding present (the first real node).
	Offset uint64

	// Sigma is one past the largest node encoding present.
	Sigma uint64

	// Nodes stores every sequence back to back, bit-packed.
	Nodes *PackedVector

	// Bounds[i] is the start of sequence i in Nodes; the final entry
	// is the total length. len(Bounds) == Sequences()+1.
	Bounds []uint64

	// Edges are the adjacencies traversed by any stored sequence,
	// sorted, without duplicates.
	Edges []Edge

	// SampleInterval records the suffix-array sampling rate the index
	// was built with.
	SampleInterval uint64

	// Meta is the optional naming metadata.
	Meta *Metadata
}

// Sequences returns the number of stored sequences, reverse
// complements included.
func (g *GBWT) Sequences() uint64 {
	if len(g.Bounds) == 0 {
		return 0
	}
	return uint64(len(g.Bounds)) - 1
}

// Paths returns the number of stored paths (half the sequences when
// both orientations are stored).
func (g *GBWT) Paths() uint64 { return g.Sequences() / 2 }

// FirstNode returns the smallest node encoding in the index.
func (g *GBWT) FirstNode() uint64 { return g.Offset }

// Extract decodes sequence seqID into oriented node encodings.
func (g *GBWT) Extract(seqID uint64) []uint64 {
	if seqID >= g.Sequences() {
		return nil
	}
	start, end := g.Bounds[seqID], g.Bounds[seqID+1]
	seq := make([]uint64, 0, end-start)
	for i := start; i < end; i++ {
		seq = append(seq, g.Nodes.Get(i))
	}
	return seq
}

// ExtractPath decodes path pathID in forward orientation.
func (g *GBWT) ExtractPath(pathID uint64) []uint64 {
	return g.Extract(2 * pathID)
}

// HasMetadata reports whether naming metadata is attached.
func (g *GBWT) HasMetadata() bool { return g.Meta != nil }
