package graph

import (
	"sort"

	"github.com/huangzhibo/gbwtgraph/internal/gbwt"
)

// Graph is the combined view of a finished index and the node
// sequences it refers to. The GFA writers walk this view.
type Graph struct {
	Index  *gbwt.GBWT
	Source *SequenceSource

	ids []uint64
}

// New pairs an index with its sequence source. Only nodes the index
// actually stores become part of the graph: the source may carry
// segments that no path or walk traverses, and those are not
// reachable through the index.
func New(index *gbwt.GBWT, source *SequenceSource) *Graph {
	g := &Graph{Index: index, Source: source}
	stored := make(map[uint64]struct{})
	for i := uint64(0); i < index.Nodes.Len(); i++ {
		stored[gbwt.NodeID(index.Nodes.Get(i))] = struct{}{}
	}
	g.ids = make([]uint64, 0, len(stored))
	for id := range source.Sequences {
		if _, ok := stored[id]; ok {
			g.ids = append(g.ids, id)
		}
	}
	sort.Slice(g.ids, func(i, j int) bool { return g.ids[i] < g.ids[j] })
	return g
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.ids) }

// HasSegmentNames reports whether original segment identity survived
// construction. Without translation every node is its own segment.
func (g *Graph) HasSegmentNames() bool { return g.Source.UsesTranslation() }

// ForEachHandle visits every node in ascending id order, in forward
// orientation. Stops early if the callback returns false.
func (g *Graph) ForEachHandle(handle func(node uint64) bool) {
	for _, id := range g.ids {
		if !handle(gbwt.EncodeNode(id, false)) {
			return
		}
	}
}

// ForEachSegment visits the translated segments that are part of the
// graph, in insertion order. Segments that no path or walk traverses
// are skipped. Stops early if the callback returns false.
func (g *Graph) ForEachSegment(segment func(name string, nodes Range) bool) {
	g.Source.ForEachSegment(func(name string, nodes Range) bool {
		if !g.contains(nodes.First) {
			return true
		}
		return segment(name, nodes)
	})
}

// contains reports whether a node id is part of the graph.
func (g *Graph) contains(id uint64) bool {
	i := sort.Search(len(g.ids), func(i int) bool { return g.ids[i] >= id })
	return i < len(g.ids) && g.ids[i] == id
}

// SequenceOf returns the sequence of an oriented node, reverse
// complemented for reverse orientation.
func (g *Graph) SequenceOf(node uint64) []byte {
	seq := g.Source.Sequence(gbwt.NodeID(node))
	if gbwt.NodeIsReverse(node) {
		return reverseComplement(seq)
	}
	return seq
}

// LengthOf returns the sequence length of an oriented node in bases.
func (g *Graph) LengthOf(node uint64) uint64 {
	return g.Source.NodeLength(gbwt.NodeID(node))
}

// ForEachEdge visits every traversed adjacency once, in canonical
// orientation: of an edge and its flipped counterpart, the
// lexicographically smaller one is reported. Stops early if the
// callback returns false.
func (g *Graph) ForEachEdge(edge func(from, to uint64) bool) {
	for _, e := range g.Index.Edges {
		flipFrom := gbwt.FlipNode(e.To)
		flipTo := gbwt.FlipNode(e.From)
		if e.From > flipFrom || (e.From == flipFrom && e.To > flipTo) {
			continue
		}
		if !edge(e.From, e.To) {
			return
		}
	}
}

// ForEachLink visits every traversed adjacency between whole segments,
// skipping the internal edges of split segments. Only meaningful when
// segment names survived. Stops early if the callback returns false.
func (g *Graph) ForEachLink(link func(from string, fromRev bool, to string, toRev bool) bool) {
	g.ForEachEdge(func(from, to uint64) bool {
		fromSeg, ok := g.Source.SegmentOf(gbwt.NodeID(from))
		if !ok {
			return true
		}
		toSeg, ok := g.Source.SegmentOf(gbwt.NodeID(to))
		if !ok {
			return true
		}
		if !atOutgoingEnd(from, fromSeg) || !atIncomingEnd(to, toSeg) {
			// Internal to a split segment.
			return true
		}
		return link(fromSeg.Name, gbwt.NodeIsReverse(from), toSeg.Name, gbwt.NodeIsReverse(to))
	})
}

// atOutgoingEnd reports whether an oriented node is the last node of
// its segment in traversal order.
func atOutgoingEnd(node uint64, seg Segment) bool {
	id := gbwt.NodeID(node)
	if gbwt.NodeIsReverse(node) {
		return id == seg.Nodes.First
	}
	return id == seg.Nodes.Past-1
}

// atIncomingEnd reports whether an oriented node is the first node of
// its segment in traversal order.
func atIncomingEnd(node uint64, seg Segment) bool {
	id := gbwt.NodeID(node)
	if gbwt.NodeIsReverse(node) {
		return id == seg.Nodes.Past-1
	}
	return id == seg.Nodes.First
}

var complement = func() [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = 'N'
	}
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'}, {'a', 't'}, {'c', 'g'},
		{'N', 'N'}, {'n', 'n'},
	}
	for _, p := range pairs {
		table[p.a] = p.b
		table[p.b] = p.a
	}
	return table
}()

// reverseComplement returns a new slice with the reverse complement of
// a DNA sequence.
func reverseComplement(seq []byte) []byte {
	rc := make([]byte, len(seq))
	for i, c := range seq {
		rc[len(seq)-1-i] = complement[c]
	}
	return rc
}
