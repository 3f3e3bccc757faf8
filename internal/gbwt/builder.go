package gbwt

import (
	"fmt"
	"sort"
)

// Builder accumulates oriented node sequences and produces an
// immutable GBWT. Insertion happens in batches: sequences are buffered
// until the batch holds at least batchSize nodes, then flushed into
// the packed store. The builder owns all mutation state; only one
// traversal may feed it at a time.
type Builder struct {
	nodeWidth      uint8
	batchSize      uint64
	sampleInterval uint64

	pending      [][]uint64
	pendingNodes uint64

	nodes    *PackedVector
	bounds   []uint64
	edges    map[Edge]struct{}
	minNode  uint64
	maxNode  uint64
	haveNode bool

	meta     *Metadata
	finished bool
}

// NewBuilder returns a builder for node encodings of the given bit
// width. A zero width means 64 bits; a zero batch size flushes after
// every sequence.
func NewBuilder(nodeWidth uint8, batchSize, sampleInterval uint64) *Builder {
	if nodeWidth == 0 || nodeWidth > 64 {
		nodeWidth = 64
	}
	return &Builder{
		nodeWidth:      nodeWidth,
		batchSize:      batchSize,
		sampleInterval: sampleInterval,
		nodes:          NewPackedVector(nodeWidth),
		bounds:         []uint64{0},
		edges:          make(map[Edge]struct{}),
	}
}

// AddMetadata attaches an empty metadata block; SetMetadata replaces it.
func (b *Builder) AddMetadata() {
	if b.meta == nil {
		b.meta = &Metadata{}
	}
}

// SetMetadata replaces the attached metadata.
func (b *Builder) SetMetadata(meta *Metadata) { b.meta = meta }

// Insert buffers one sequence, and its reverse complement when
// bothOrientations is set. Fails if a node encoding does not fit in
// the configured width or the builder is already finished.
func (b *Builder) Insert(sequence []uint64, bothOrientations bool) error {
	if b.finished {
		return fmt.Errorf("insert after finish")
	}
	if len(sequence) == 0 {
		return fmt.Errorf("cannot insert an empty sequence")
	}
	limit := uint64(0)
	if b.nodeWidth < 64 {
		limit = uint64(1) << b.nodeWidth
	}
	for _, node := range sequence {
		if limit != 0 && node >= limit {
			return fmt.Errorf("node encoding %d does not fit in %d bits", node, b.nodeWidth)
		}
		if node == Endmarker || node == Endmarker+1 {
			return fmt.Errorf("node id 0 is reserved")
		}
	}

	b.buffer(append([]uint64(nil), sequence...))
	if bothOrientations {
		rc := make([]uint64, len(sequence))
		for i, node := range sequence {
			rc[len(sequence)-1-i] = FlipNode(node)
		}
		b.buffer(rc)
	}
	if b.pendingNodes >= b.batchSize {
		b.flush()
	}
	return nil
}

func (b *Builder) buffer(sequence []uint64) {
	for _, node := range sequence {
		if !b.haveNode || node < b.minNode {
			b.minNode = node
		}
		if node > b.maxNode {
			b.maxNode = node
		}
		b.haveNode = true
	}
	for i := 1; i < len(sequence); i++ {
		b.edges[Edge{From: sequence[i-1], To: sequence[i]}] = struct{}{}
	}
	b.pending = append(b.pending, sequence)
	b.pendingNodes += uint64(len(sequence))
}

func (b *Builder) flush() {
	for _, sequence := range b.pending {
		for _, node := range sequence {
			b.nodes.Append(node)
		}
		b.bounds = append(b.bounds, b.nodes.Len())
	}
	b.pending = b.pending[:0]
	b.pendingNodes = 0
}

// Finish flushes the remaining batch and freezes the index. The
// builder must not be used afterwards.
func (b *Builder) Finish() *GBWT {
	b.flush()
	b.finished = true

	edges := make([]Edge, 0, len(b.edges))
	for e := range b.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	index := &GBWT{
		NodeWidth:      b.nodeWidth,
		Nodes:          b.nodes,
		Bounds:         b.bounds,
		Edges:          edges,
		SampleInterval: b.sampleInterval,
		Meta:           b.meta,
	}
	if b.haveNode {
		// Slots are shared by both orientations of a node, so round
		// the bounds out to whole nodes.
		index.Offset = b.minNode &^ 1
		index.Sigma = (b.maxNode | 1) + 1
	}
	return index
}
