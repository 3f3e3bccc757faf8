package gfa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huangzhibo/gbwtgraph/config"
	"github.com/huangzhibo/gbwtgraph/internal/gbwt"
	"github.com/huangzhibo/gbwtgraph/internal/graph"
)

func TestToGBWTNumericIDs(t *testing.T) {
	// Numeric, nonzero segment names become node ids as-is.
	filename := writeGFA(t, "S\t1\tACGT\nS\t2\tGGTT\n"+
		"L\t1\t+\t2\t+\t*\nP\tpath1\t1+,2+\t*\n")

	g, err := ToGBWT(filename, config.Default())
	require.NoError(t, err)

	require.False(t, g.Source.UsesTranslation())
	require.Equal(t, 2, g.Source.NodeCount())
	require.Equal(t, []byte("ACGT"), g.Source.Sequence(1))
	require.Equal(t, []byte("GGTT"), g.Source.Sequence(2))

	require.EqualValues(t, 1, g.Index.Paths())
	require.Equal(t, []uint64{
		gbwt.EncodeNode(1, false),
		gbwt.EncodeNode(2, false),
	}, g.Index.ExtractPath(0))

	// The traversal records one canonical edge, 1+ -> 2+.
	var edges [][2]uint64
	g.ForEachEdge(func(from, to uint64) bool {
		edges = append(edges, [2]uint64{from, to})
		return true
	})
	require.Equal(t, [][2]uint64{{2, 4}}, edges)
}

func TestToGBWTTranslatesNames(t *testing.T) {
	// A single non-numeric name forces translation of every segment.
	filename := writeGFA(t, "S\tchr1\tACGT\nS\tchr2\tGG\n"+
		"P\tp\tchr1+,chr2-\t*\n")

	g, err := ToGBWT(filename, config.Default())
	require.NoError(t, err)

	require.True(t, g.Source.UsesTranslation())
	require.Equal(t, graph.Range{First: 1, Past: 2}, g.Source.GetTranslation("chr1"))
	require.Equal(t, graph.Range{First: 2, Past: 3}, g.Source.GetTranslation("chr2"))

	require.Equal(t, []uint64{
		gbwt.EncodeNode(1, false),
		gbwt.EncodeNode(2, true),
	}, g.Index.ExtractPath(0))
}

func TestToGBWTSplitsLongSegments(t *testing.T) {
	c := config.Default()
	c.MaxNodeLength = 2

	filename := writeGFA(t, "S\t1\tACGTAC\n"+
		"P\tfwd\t1+\t*\nP\trev\t1-\t*\n")

	g, err := ToGBWT(filename, c)
	require.NoError(t, err)

	require.True(t, g.Source.UsesTranslation())
	require.Equal(t, graph.Range{First: 1, Past: 4}, g.Source.GetTranslation("1"))
	require.Equal(t, []byte("AC"), g.Source.Sequence(1))
	require.Equal(t, []byte("GT"), g.Source.Sequence(2))
	require.Equal(t, []byte("AC"), g.Source.Sequence(3))

	// Forward traversal expands ascending, reverse descending.
	require.Equal(t, []uint64{2, 4, 6}, g.Index.ExtractPath(0))
	require.Equal(t, []uint64{7, 5, 3}, g.Index.ExtractPath(1))
}

func TestToGBWTMetadata(t *testing.T) {
	t.Run("paths and walks", func(t *testing.T) {
		filename := writeGFA(t, "S\t1\tAC\nS\t2\tGT\n"+
			"P\tchrA\t1+,2+\t*\n"+
			"W\tsampleX\t1\tchrA\t0\t4\t>1>2\n")

		g, err := ToGBWT(filename, config.Default())
		require.NoError(t, err)

		meta := g.Index.Meta
		require.True(t, meta.HasPathNames())

		// Path names become reference paths under the reserved sample.
		refID, ok := meta.SampleID(gbwt.ReferenceSampleName)
		require.True(t, ok)
		require.Equal(t, []uint64{0}, meta.PathsForSample(refID))
		require.Equal(t, "chrA", meta.Contig(meta.Paths[0].Contig))

		// Walks keep their own sample, phase, and start.
		require.Len(t, meta.Paths, 2)
		walk := meta.Paths[1]
		require.Equal(t, "sampleX", meta.Sample(walk.Sample))
		require.EqualValues(t, 1, walk.Phase)
		require.EqualValues(t, 0, walk.Count)
	})

	t.Run("paths only", func(t *testing.T) {
		filename := writeGFA(t, "S\t1\tAC\nP\tsampleA\t1+\t*\n")

		g, err := ToGBWT(filename, config.Default())
		require.NoError(t, err)

		// The default naming convention stores the name as the sample.
		require.Equal(t, []string{"sampleA"}, g.Index.Meta.Samples)
	})

	t.Run("custom naming convention", func(t *testing.T) {
		c := config.Default()
		c.PathNameRegex = `(.*)#(.*)#(.*)`
		c.PathNameFields = "-SHC"
		filename := writeGFA(t, "S\t1\tAC\nP\tNA12878#1#chr1\t1+\t*\n")

		g, err := ToGBWT(filename, c)
		require.NoError(t, err)

		meta := g.Index.Meta
		require.Equal(t, "NA12878", meta.Sample(meta.Paths[0].Sample))
		require.Equal(t, "chr1", meta.Contig(meta.Paths[0].Contig))
		require.EqualValues(t, 1, meta.Paths[0].Phase)
	})
}

func TestToGBWTErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		conf    func(*config.Config)
		wantErr string
	}{
		{
			"no segments",
			"P\tp\t1+\t*\n",
			nil,
			"no segments",
		},
		{
			"no paths or walks",
			"S\t1\tAC\n",
			nil,
			"no paths or walks",
		},
		{
			"invalid file",
			"S\t1\t\nP\tp\t1+\t*\n",
			nil,
			"has no sequence",
		},
		{
			"unresolvable segment name",
			"S\tchr1\tAC\nP\tp\tchr1+,chr9+\t*\n",
			nil,
			"not in the translation",
		},
		{
			"walk metadata not numeric",
			"S\t1\tAC\nW\ts\tx\tc\t0\t2\t>1\n",
			nil,
			"could not parse metadata from walks",
		},
		{
			"path name does not match convention",
			"S\t1\tAC\nP\tp\t1+\t*\n",
			func(c *config.Config) {
				c.PathNameRegex = `(.*)#(.*)`
				c.PathNameFields = "-SC"
			},
			"could not parse metadata from path names",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			if tt.conf != nil {
				tt.conf(c)
			}
			_, err := ToGBWT(writeGFA(t, tt.content), c)
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.wantErr),
				"error %q does not mention %q", err, tt.wantErr)
		})
	}
}

func TestDetermineBatchSize(t *testing.T) {
	filename := writeGFA(t, validGFA)
	g, err := Open(filename, false)
	require.NoError(t, err)
	defer g.Close()

	c := config.Default()

	// Automatic mode scales with the path length but never exceeds the
	// file size.
	c.AutomaticBatchSize = true
	c.BatchSize = 10
	want := uint64(minSequencesPerBatch * (g.MaxPathLength() + 1))
	if uint64(g.Size()) < want {
		want = uint64(g.Size())
	}
	require.Equal(t, want, determineBatchSize(g, c))

	// Fixed mode returns the configured value untouched.
	c.AutomaticBatchSize = false
	c.BatchSize = 12345
	require.EqualValues(t, 12345, determineBatchSize(g, c))
}

func TestMaxPathLengthBoundsTraversals(t *testing.T) {
	// Post-translation expansion never exceeds maxPathLength subfields
	// times the longest segment's node count.
	c := config.Default()
	c.MaxNodeLength = 2
	filename := writeGFA(t, "S\t1\tACGTAC\nS\t2\tGG\n"+
		"P\tp\t1+,2+,1-\t*\n")

	g, err := ToGBWT(filename, c)
	require.NoError(t, err)

	path := g.Index.ExtractPath(0)
	require.Equal(t, []uint64{2, 4, 6, 8, 7, 5, 3}, path)

	total := g.Source.GetTranslation("1").Len()*2 + g.Source.GetTranslation("2").Len()
	require.EqualValues(t, total, len(path))
}
