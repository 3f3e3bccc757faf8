package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangzhibo/gbwtgraph/config"
	"github.com/huangzhibo/gbwtgraph/internal/gfa"
	"github.com/huangzhibo/gbwtgraph/internal/graph"
)

var convertIn string
var convertOut string

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a GFA file into a bit-packed path index",
	Long: `Convert a GFA file into a bit-packed path index.

The whole file is memory mapped and validated in a single pass before
conversion. Segment names that are not usable node ids, and segments
longer than the node length limit, are translated into runs of fresh
node ids; the translation is stored with the index so the original
names survive a round trip back to GFA.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()

		if convertOut == "" {
			convertOut = strings.TrimSuffix(convertIn, gfa.Extension) + ".gg"
		}

		g, err := gfa.ToGBWT(convertIn, c)
		if err != nil {
			stderr.Fatalf("failed to convert %s: %v", convertIn, err)
		}
		if err := graph.Save(convertOut, g); err != nil {
			stderr.Fatalf("%v", err)
		}
		if c.Verbose {
			stderr.Printf("Wrote index to %s", convertOut)
		}
	},
}

func init() {
	RootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertIn, "in", "i", "", "path to the input GFA file (required)")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "path to the output index (default: input with .gg)")
	convertCmd.Flags().Uint64("max-node-length", config.DefaultMaxNodeLength, "maximum node sequence length, 0 for unlimited")
	convertCmd.Flags().Int("node-width", config.DefaultNodeWidth, "bit width of node encodings")
	convertCmd.Flags().Uint64("batch-size", config.DefaultBatchSize, "insertion batch size in nodes")
	convertCmd.Flags().Bool("automatic-batch-size", true, "derive the batch size from the input")
	convertCmd.Flags().Uint64("sample-interval", config.DefaultSampleInterval, "suffix-array sampling rate")
	convertCmd.Flags().String("path-name-regex", "", "regex decomposing path names into metadata fields")
	convertCmd.Flags().String("path-name-fields", "", "roles of regex submatches: S, C, H, F per submatch")
	convertCmd.MarkFlagRequired("in")

	// Bind the parameters to viper
	viper.BindPFlag("max-node-length", convertCmd.Flags().Lookup("max-node-length"))
	viper.BindPFlag("node-width", convertCmd.Flags().Lookup("node-width"))
	viper.BindPFlag("batch-size", convertCmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("automatic-batch-size", convertCmd.Flags().Lookup("automatic-batch-size"))
	viper.BindPFlag("sample-interval", convertCmd.Flags().Lookup("sample-interval"))
	viper.BindPFlag("path-name-regex", convertCmd.Flags().Lookup("path-name-regex"))
	viper.BindPFlag("path-name-fields", convertCmd.Flags().Lookup("path-name-fields"))
}
