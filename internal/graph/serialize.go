package graph

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/huangzhibo/gbwtgraph/internal/gbwt"
)

// container is the on-disk layout of a converted graph.
type container struct {
	Index  *gbwt.GBWT
	Source *SequenceSource
}

// Save writes the index and its sequences to a file.
func Save(filename string, g *Graph) error {
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create index file %s: %v", filename, err)
	}
	defer out.Close()

	enc := gob.NewEncoder(out)
	if err := enc.Encode(container{Index: g.Index, Source: g.Source}); err != nil {
		return fmt.Errorf("failed to serialize index to %s: %v", filename, err)
	}
	return nil
}

// Load reads a graph previously written with Save.
func Load(filename string) (*Graph, error) {
	in, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file %s: %v", filename, err)
	}
	defer in.Close()

	var c container
	if err := gob.NewDecoder(in).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to read index from %s: %v", filename, err)
	}
	if c.Index == nil || c.Source == nil {
		return nil, fmt.Errorf("index file %s is incomplete", filename)
	}
	c.Source.rebuild()
	return New(c.Index, c.Source), nil
}
