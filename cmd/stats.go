package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huangzhibo/gbwtgraph/config"
	"github.com/huangzhibo/gbwtgraph/internal/gfa"
)

var statsIn string

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Validate a GFA file and report its statistics",
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()

		g, err := gfa.Open(statsIn, c.Verbose)
		if err != nil {
			stderr.Fatalf("%v", err)
		}
		defer g.Close()

		if !g.Valid() {
			stderr.Fatalf("invalid GFA file: %v", g.Err())
		}

		fmt.Printf("segments\t%d\n", g.Segments())
		fmt.Printf("links\t%d\n", g.Links())
		fmt.Printf("paths\t%d\n", g.Paths())
		fmt.Printf("walks\t%d\n", g.Walks())
		fmt.Printf("max segment length\t%d\n", g.MaxSegmentLength())
		fmt.Printf("max path length\t%d\n", g.MaxPathLength())
		translate := g.TranslateSegmentIDs() ||
			(c.MaxNodeLength != 0 && g.MaxSegmentLength() > c.MaxNodeLength)
		fmt.Printf("requires translation\t%t\n", translate)
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsIn, "in", "i", "", "path to the input GFA file (required)")
	statsCmd.MarkFlagRequired("in")
}
