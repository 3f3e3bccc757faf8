package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/huangzhibo/gbwtgraph/config"
	"github.com/huangzhibo/gbwtgraph/internal/gfa"
	"github.com/huangzhibo/gbwtgraph/internal/graph"
)

var extractIn string
var extractOut string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write a bit-packed path index back out as GFA",
	Long: `Write a bit-packed path index back out as GFA.

Split segments are reassembled into their original sequences and names
from the stored translation. Paths belonging to the reserved reference
sample come out as P-lines and all other paths as W-lines; an index
without path names emits numerically named P-lines instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()

		g, err := graph.Load(extractIn)
		if err != nil {
			stderr.Fatalf("%v", err)
		}

		out := os.Stdout
		if extractOut != "" {
			out, err = os.Create(extractOut)
			if err != nil {
				stderr.Fatalf("failed to create output file %s: %v", extractOut, err)
			}
			defer out.Close()
		}

		if err := gfa.FromGBWT(g, out, c.Verbose); err != nil {
			stderr.Fatalf("failed to write GFA: %v", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractIn, "in", "i", "", "path to the input index (required)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "path to the output GFA file (default: stdout)")
	extractCmd.MarkFlagRequired("in")
}
