package gfa

import (
	"io"
	"math"
	"strconv"

	"github.com/huangzhibo/gbwtgraph/internal/gbwt"
	"github.com/huangzhibo/gbwtgraph/internal/graph"
)

// segmentSlot locates the segment owning one node: an offset into the
// cache's name table and the segment's length in nodes.
type segmentSlot struct {
	name   int
	length uint64
}

// segmentCache maps encoded nodes back to original segment names and
// segment lengths in nodes. One slot covers both orientations of a
// node; that the two encodings are adjacent is what makes the slot
// arithmetic work. The index stores node sequences, not segment
// boundaries, so this is the only way the writers can tell where one
// segment ends and the next begins.
type segmentCache struct {
	graph *graph.Graph
	slots []segmentSlot
	names []string
}

func newSegmentCache(g *graph.Graph) *segmentCache {
	index := g.Index
	cache := &segmentCache{
		graph: g,
		slots: make([]segmentSlot, (index.Sigma-index.Offset)/2),
	}

	if g.HasSegmentNames() {
		g.ForEachSegment(func(name string, nodes graph.Range) bool {
			relative := (gbwt.EncodeNode(nodes.First, false) - index.Offset) / 2
			length := nodes.Len()
			for i := relative; i < relative+length; i++ {
				cache.slots[i] = segmentSlot{name: len(cache.names), length: length}
			}
			cache.names = append(cache.names, name)
			return true
		})
	} else {
		g.ForEachHandle(func(node uint64) bool {
			relative := (node - index.Offset) / 2
			cache.slots[relative] = segmentSlot{name: len(cache.names), length: 1}
			cache.names = append(cache.names, strconv.FormatUint(gbwt.NodeID(node), 10))
			return true
		})
	}
	return cache
}

func (c *segmentCache) size() int { return len(c.names) }

// get returns the name-table offset and node length of the segment
// containing an encoded node.
func (c *segmentCache) get(node uint64) (int, uint64) {
	slot := c.slots[(node-c.graph.Index.Offset)/2]
	return slot.name, slot.length
}

func (c *segmentCache) name(i int) string { return c.names[i] }

// FromGBWT writes a graph back out as GFA. With path-naming metadata,
// reference-sample paths become P-lines and everything else becomes
// W-lines; without it, every stored forward sequence becomes a
// numerically named P-line.
func FromGBWT(g *graph.Graph, out io.Writer, verbose bool) error {
	sufficientMetadata := g.Index.HasMetadata() && g.Index.Meta.HasPathNames()

	// Cache segment names.
	if verbose {
		stderr.Printf("Caching segments")
	}
	cache := newSegmentCache(g)
	if verbose {
		stderr.Printf("Cached %d segments", cache.size())
	}

	// GFA header.
	w := NewTSVWriter(out)
	w.Put('H')
	w.NewField()
	w.WriteString("VN:Z:1.0")
	w.NewLine()

	// Write the graph.
	writeSegments(g, cache, w, verbose)
	writeLinks(g, cache, w, verbose)

	// Write the paths.
	if sufficientMetadata {
		refSample := uint64(math.MaxUint64)
		if id, ok := g.Index.Meta.SampleID(gbwt.ReferenceSampleName); ok {
			refSample = id
		}
		writePaths(g, cache, w, refSample, verbose)
		writeWalks(g, cache, w, refSample, verbose)
	} else {
		writeAllPaths(g, cache, w, verbose)
	}

	return w.Flush()
}

// writeSegments emits one S-line per segment, reassembling split
// segments by concatenating their node sequences.
func writeSegments(g *graph.Graph, cache *segmentCache, w *TSVWriter, verbose bool) {
	segments := 0
	if verbose {
		stderr.Printf("Writing segments")
	}

	prev := -1
	g.ForEachHandle(func(node uint64) bool {
		name, _ := cache.get(node)
		if name != prev {
			if prev >= 0 {
				w.NewLine()
			}
			prev = name
			w.Put('S')
			w.NewField()
			w.WriteString(cache.name(name))
			w.NewField()
			segments++
		}
		w.Write(g.SequenceOf(node))
		return true
	})
	if prev >= 0 {
		w.NewLine()
	}

	if verbose {
		stderr.Printf("Wrote %d segments", segments)
	}
}

// writeLinks emits one L-line per traversed adjacency: between whole
// segments when segment names survived, between raw nodes otherwise.
func writeLinks(g *graph.Graph, cache *segmentCache, w *TSVWriter, verbose bool) {
	links := 0
	if verbose {
		stderr.Printf("Writing links")
	}

	orientation := func(isReverse bool) byte {
		if isReverse {
			return '-'
		}
		return '+'
	}

	if g.HasSegmentNames() {
		g.ForEachLink(func(from string, fromRev bool, to string, toRev bool) bool {
			w.Put('L')
			w.NewField()
			w.WriteString(from)
			w.NewField()
			w.Put(orientation(fromRev))
			w.NewField()
			w.WriteString(to)
			w.NewField()
			w.Put(orientation(toRev))
			w.NewField()
			w.Put('*')
			w.NewLine()
			links++
			return true
		})
	} else {
		g.ForEachEdge(func(from, to uint64) bool {
			fromName, _ := cache.get(from)
			toName, _ := cache.get(to)
			w.Put('L')
			w.NewField()
			w.WriteString(cache.name(fromName))
			w.NewField()
			w.Put(orientation(gbwt.NodeIsReverse(from)))
			w.NewField()
			w.WriteString(cache.name(toName))
			w.NewField()
			w.Put(orientation(gbwt.NodeIsReverse(to)))
			w.NewField()
			w.Put('*')
			w.NewLine()
			links++
			return true
		})
	}

	if verbose {
		stderr.Printf("Wrote %d links", links)
	}
}

// writePathLine emits the segment list and overlap field shared by
// reference paths and unnamed paths.
func writePathLine(g *graph.Graph, cache *segmentCache, w *TSVWriter, path []uint64) {
	segments := 0
	for offset := 0; offset < len(path); {
		name, length := cache.get(path[offset])
		w.WriteString(cache.name(name))
		if gbwt.NodeIsReverse(path[offset]) {
			w.Put('-')
		} else {
			w.Put('+')
		}
		segments++
		offset += int(length)
		if offset < len(path) {
			w.Put(',')
		}
	}
	w.NewField()
	for i := 1; i < segments; i++ {
		w.Put('*')
		if i+1 < segments {
			w.Put(',')
		}
	}
	w.NewLine()
}

// writePaths emits the reference-sample paths as P-lines, named by
// their contigs.
func writePaths(g *graph.Graph, cache *segmentCache, w *TSVWriter, refSample uint64, verbose bool) {
	if verbose {
		stderr.Printf("Writing reference paths")
	}

	meta := g.Index.Meta
	refPaths := meta.PathsForSample(refSample)
	for _, pathID := range refPaths {
		path := g.Index.ExtractPath(pathID)
		w.Put('P')
		w.NewField()
		w.WriteString(meta.Contig(meta.Paths[pathID].Contig))
		w.NewField()
		writePathLine(g, cache, w, path)
	}

	if verbose && len(refPaths) > 0 {
		stderr.Printf("Wrote %d paths", len(refPaths))
	}
}

// writeWalks emits every non-reference path as a W-line. The end
// coordinate is the start plus the traversed length in bases.
func writeWalks(g *graph.Graph, cache *segmentCache, w *TSVWriter, refSample uint64, verbose bool) {
	walks := 0
	if verbose {
		stderr.Printf("Writing walks")
	}

	meta := g.Index.Meta
	for pathID := uint64(0); pathID < uint64(len(meta.Paths)); pathID++ {
		pathName := meta.Paths[pathID]
		if pathName.Sample == refSample {
			continue
		}
		walks++
		path := g.Index.ExtractPath(pathID)
		length := uint64(0)
		for _, node := range path {
			length += g.LengthOf(node)
		}
		w.Put('W')
		w.NewField()
		if meta.HasSampleNames() {
			w.WriteString(meta.Sample(pathName.Sample))
		} else {
			w.WriteUint(pathName.Sample)
		}
		w.NewField()
		w.WriteUint(pathName.Phase)
		w.NewField()
		if meta.HasContigNames() {
			w.WriteString(meta.Contig(pathName.Contig))
		} else {
			w.WriteUint(pathName.Contig)
		}
		w.NewField()
		w.WriteUint(pathName.Count)
		w.NewField()
		w.WriteUint(pathName.Count + length)
		w.NewField()
		for offset := 0; offset < len(path); {
			name, segLength := cache.get(path[offset])
			if gbwt.NodeIsReverse(path[offset]) {
				w.Put('<')
			} else {
				w.Put('>')
			}
			w.WriteString(cache.name(name))
			offset += int(segLength)
		}
		w.NewLine()
	}

	if verbose && walks > 0 {
		stderr.Printf("Wrote %d walks", walks)
	}
}

// writeAllPaths emits every stored forward sequence as a numerically
// named P-line. Used when no path-naming metadata survived.
func writeAllPaths(g *graph.Graph, cache *segmentCache, w *TSVWriter, verbose bool) {
	if verbose {
		stderr.Printf("Writing paths")
	}

	index := g.Index
	for seqID := uint64(0); seqID < index.Sequences(); seqID += 2 {
		path := index.Extract(seqID)
		w.Put('P')
		w.NewField()
		w.WriteUint(seqID / 2)
		w.NewField()
		writePathLine(g, cache, w, path)
	}

	if verbose {
		stderr.Printf("Wrote %d paths", index.Sequences()/2)
	}
}
