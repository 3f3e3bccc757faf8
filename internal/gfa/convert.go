package gfa

import (
	"fmt"
	"math"
	"strconv"

	"github.com/huangzhibo/gbwtgraph/config"
	"github.com/huangzhibo/gbwtgraph/internal/gbwt"
	"github.com/huangzhibo/gbwtgraph/internal/graph"
)

// minSequencesPerBatch scales the automatic insertion batch size by
// the longest path in the input.
const minSequencesPerBatch = 20

// ToGBWT converts a GFA file into the bit-packed path index and its
// node sequences. The file is mapped, validated, and released before
// returning, on every path.
func ToGBWT(filename string, c *config.Config) (*graph.Graph, error) {
	mb, err := gbwt.NewMetadataBuilder(c.PathNameRegex, c.PathNameFields)
	if err != nil {
		return nil, fmt.Errorf("invalid path name regex: %v", err)
	}

	g, err := Open(filename, c.Verbose)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	if err := checkFile(g, c); err != nil {
		return nil, err
	}

	// Adjust batch size by GFA size and maximum path length.
	batchSize := determineBatchSize(g, c)

	// Parse segments. The graph topology is not needed after that.
	source, _ := parseSegments(g, c)

	// Parse metadata from path names and walks.
	builder := gbwt.NewBuilder(uint8(c.NodeWidth), batchSize, c.SampleInterval)
	if err := parseMetadata(g, c, mb, builder); err != nil {
		return nil, err
	}

	// Build the index from the paths and the walks.
	index, err := parsePaths(g, c, source, builder)
	if err != nil {
		return nil, err
	}
	return graph.New(index, source), nil
}

// checkFile rejects files with nothing to index.
func checkFile(g *GFAFile, c *config.Config) error {
	if !g.Valid() {
		if g.Err() != nil {
			return g.Err()
		}
		return fmt.Errorf("invalid GFA file")
	}
	if g.Segments() == 0 {
		return fmt.Errorf("no segments in the GFA file")
	}
	if g.Paths() == 0 && g.Walks() == 0 {
		return fmt.Errorf("no paths or walks in the GFA file")
	}
	if g.Paths() > 0 && g.Walks() > 0 && c.Verbose {
		stderr.Printf("Storing reference paths as sample %s", gbwt.ReferenceSampleName)
	}
	return nil
}

// determineBatchSize picks the insertion batch size: the configured
// value, or in automatic mode the larger of it and a multiple of the
// maximum path length, never more than the file size.
func determineBatchSize(g *GFAFile, c *config.Config) uint64 {
	batchSize := c.BatchSize
	if c.AutomaticBatchSize {
		minSize := minSequencesPerBatch * (g.MaxPathLength() + 1)
		if minSize > batchSize {
			batchSize = minSize
		}
		if uint64(g.Size()) < batchSize {
			batchSize = uint64(g.Size())
		}
	}
	if c.Verbose {
		stderr.Printf("GBWT insertion batch size: %d nodes", batchSize)
	}
	return batchSize
}

// parseSegments builds the node-sequence store, translating segment
// names when they are unusable as node ids or their sequences exceed
// the node length limit.
func parseSegments(g *GFAFile, c *config.Config) (*graph.SequenceSource, *graph.NodeSet) {
	if c.Verbose {
		stderr.Printf("Parsing segments")
	}

	// Determine if we need translation.
	translate := false
	maxNodeLength := c.MaxNodeLength
	if maxNodeLength == 0 {
		maxNodeLength = math.MaxUint64
	}
	if g.MaxSegmentLength() > maxNodeLength {
		translate = true
		if c.Verbose {
			stderr.Printf("Breaking segments into %d bp nodes", maxNodeLength)
		}
	} else if g.TranslateSegmentIDs() {
		translate = true
		if c.Verbose {
			stderr.Printf("Translating segment ids into valid node ids")
		}
	}

	source := graph.NewSequenceSource()
	nodes := graph.NewNodeSet()
	g.ForEachSegment(func(name []byte, sequence []byte) bool {
		if translate {
			r := source.TranslateSegment(string(name), sequence, maxNodeLength)
			for id := r.First; id < r.Past; id++ {
				nodes.CreateNode(id)
			}
		} else {
			// Validation guarantees the name is a nonzero integer.
			id, _ := strconv.ParseUint(string(name), 10, 64)
			source.AddNode(id, sequence)
			nodes.CreateNode(id)
		}
		return true
	})

	if c.Verbose {
		stderr.Printf("Parsed %d nodes", source.NodeCount())
	}
	return source, nodes
}

// parseMetadata derives structured path names. With both walks and
// paths, path names become reference paths; with paths only, names go
// through the naming convention; with walks only, the four structured
// fields are used directly.
func parseMetadata(g *GFAFile, c *config.Config, mb *gbwt.MetadataBuilder, builder *gbwt.Builder) error {
	if c.Verbose {
		stderr.Printf("Parsing metadata")
	}
	builder.AddMetadata()

	if g.Walks() > 0 {
		if g.Paths() > 0 {
			failed := false
			g.ForEachPathName(func(name []byte) bool {
				if !mb.AddReferencePath(string(name)) {
					failed = true
					return false
				}
				return true
			})
			if failed {
				return fmt.Errorf("could not parse metadata from reference path names")
			}
		}
		failed := false
		g.ForEachWalkName(func(sample, haplotype, contig, start []byte) bool {
			if !mb.AddWalk(string(sample), string(haplotype), string(contig), string(start)) {
				failed = true
				return false
			}
			return true
		})
		if failed {
			return fmt.Errorf("could not parse metadata from walks")
		}
	} else if g.Paths() > 0 {
		failed := false
		g.ForEachPathName(func(name []byte) bool {
			if !mb.Parse(string(name)) {
				failed = true
				return false
			}
			return true
		})
		if failed {
			return fmt.Errorf("could not parse metadata from path names")
		}
	}

	builder.SetMetadata(mb.Metadata())
	return nil
}

// parsePaths encodes every path and walk into the builder, paths
// first, and finishes the index. An unresolvable segment name aborts
// the whole conversion: a partial index is unsafe to use.
func parsePaths(g *GFAFile, c *config.Config, source *graph.SequenceSource, builder *gbwt.Builder) (*gbwt.GBWT, error) {
	if c.Verbose {
		stderr.Printf("Indexing paths/walks")
	}

	var currentPath []uint64
	var parseErr error

	addSegment := func(name []byte, isReverse bool) bool {
		if source.UsesTranslation() {
			r := source.GetTranslation(string(name))
			if r.Empty() {
				parseErr = fmt.Errorf("segment %q is not in the translation", string(name))
				return false
			}
			if isReverse {
				for id := r.Past; id > r.First; id-- {
					currentPath = append(currentPath, gbwt.EncodeNode(id-1, isReverse))
				}
			} else {
				for id := r.First; id < r.Past; id++ {
					currentPath = append(currentPath, gbwt.EncodeNode(id, isReverse))
				}
			}
		} else {
			id, _ := strconv.ParseUint(string(name), 10, 64)
			currentPath = append(currentPath, gbwt.EncodeNode(id, isReverse))
		}
		return true
	}

	finish := func() bool {
		if err := builder.Insert(currentPath, true); err != nil {
			parseErr = err
			return false
		}
		currentPath = currentPath[:0]
		return true
	}

	g.ForEachPath(func(name []byte) bool { return true }, addSegment, finish)
	if parseErr != nil {
		return nil, parseErr
	}
	g.ForEachWalk(func(sample, haplotype, contig, start []byte) bool { return true }, addSegment, finish)
	if parseErr != nil {
		return nil, parseErr
	}

	index := builder.Finish()
	if c.Verbose {
		stderr.Printf("Indexed %d paths and %d walks", g.Paths(), g.Walks())
	}
	return index, nil
}
