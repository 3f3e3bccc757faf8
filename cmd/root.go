// Package cmd is for command line interactions with the gbwtgraph application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "gbwtgraph",
	Short: `Convert pangenome graphs between the GFA text format and a
bit-packed, bidirectional path index`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}
