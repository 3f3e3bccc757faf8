// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Default parsing settings, matching the GBWT construction defaults.
const (
	// DefaultMaxNodeLength is the longest node sequence stored without
	// splitting the segment.
	DefaultMaxNodeLength = 1024

	// DefaultNodeWidth is the bit width of node encodings in the index.
	DefaultNodeWidth = 64

	// DefaultBatchSize is the insertion batch size in nodes.
	DefaultBatchSize = 100_000_000

	// DefaultSampleInterval is the suffix-array sampling rate.
	DefaultSampleInterval = 1024
)

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line
type Config struct {
	// log progress information to stderr
	Verbose bool `mapstructure:"verbose"`

	// the maximum length of a node sequence; longer segments are split
	MaxNodeLength uint64 `mapstructure:"max-node-length"`

	// bit width of node encodings in the index
	NodeWidth int `mapstructure:"node-width"`

	// insertion batch size in nodes
	BatchSize uint64 `mapstructure:"batch-size"`

	// derive the batch size from the input instead of BatchSize alone
	AutomaticBatchSize bool `mapstructure:"automatic-batch-size"`

	// suffix-array sampling rate recorded in the index
	SampleInterval uint64 `mapstructure:"sample-interval"`

	// regex decomposing path names into metadata fields
	PathNameRegex string `mapstructure:"path-name-regex"`

	// role of each regex submatch: S(ample), C(ontig), H(aplotype), F(ragment)
	PathNameFields string `mapstructure:"path-name-fields"`
}

// New returns a new Config struct populated by Viper settings (either
// from the local settings.yaml) and/or command line arguments
func New() *Config {
	setDefaults()

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}
	return c
}

// Default returns the built-in settings without consulting Viper.
// For testing.
func Default() *Config {
	return &Config{
		MaxNodeLength:      DefaultMaxNodeLength,
		NodeWidth:          DefaultNodeWidth,
		BatchSize:          DefaultBatchSize,
		AutomaticBatchSize: true,
		SampleInterval:     DefaultSampleInterval,
	}
}

func setDefaults() {
	viper.SetDefault("max-node-length", DefaultMaxNodeLength)
	viper.SetDefault("node-width", DefaultNodeWidth)
	viper.SetDefault("batch-size", DefaultBatchSize)
	viper.SetDefault("automatic-batch-size", true)
	viper.SetDefault("sample-interval", DefaultSampleInterval)
	viper.SetDefault("path-name-regex", "")
	viper.SetDefault("path-name-fields", "")
}
