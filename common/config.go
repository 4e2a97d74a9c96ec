package common

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigFile      = "bulk-unzipper.toml"
	DefaultMaxDepth        = 16
	DefaultPollInterval    = 100 * time.Millisecond
	DefaultPerItemEstimate = 3 * time.Second
	DefaultExtractor       = "legacy"
)

//nolint:lll
type ExtractConfig struct {
	Source          string        `toml:"source,omitempty" json:"source" long:"source" env:"BULK_UNZIPPER_SOURCE" description:"Folder containing the ZIP files to extract"`
	Destination     string        `toml:"destination,omitempty" json:"destination" long:"destination" env:"BULK_UNZIPPER_DESTINATION" description:"Folder the archives are extracted to"`
	MaxDepth        int           `toml:"max_depth,omitzero" json:"max_depth" long:"max-depth" env:"BULK_UNZIPPER_MAX_DEPTH" description:"Maximum nesting depth of archives to unpack (0 uses the default of 16, -1 disables the limit)"`
	Extractor       string        `toml:"extractor,omitempty" json:"extractor" long:"extractor" env:"BULK_UNZIPPER_EXTRACTOR" description:"Bulk extraction backend (options: legacy, fastzip)"`
	PollInterval    time.Duration `toml:"poll_interval,omitzero" json:"poll_interval" long:"poll-interval" env:"BULK_UNZIPPER_POLL_INTERVAL" description:"How often the progress line is refreshed"`
	PerItemEstimate time.Duration `toml:"per_item_estimate,omitzero" json:"per_item_estimate" long:"per-item-estimate" env:"BULK_UNZIPPER_PER_ITEM_ESTIMATE" description:"Time assumed per archive for the remaining time countdown"`
	MetricsFile     string        `toml:"metrics_file,omitempty" json:"metrics_file" long:"metrics-file" env:"BULK_UNZIPPER_METRICS_FILE" description:"Write Prometheus metrics of the batch to this file when it finishes"`
	NoSummary       bool          `toml:"no_summary,omitempty" json:"no_summary" long:"no-summary" env:"BULK_UNZIPPER_NO_SUMMARY" description:"Don't print the per-archive summary table"`
}

type Config struct {
	LogLevel  *string       `toml:"log_level" json:"log_level" description:"Define log level (one of: panic, fatal, error, warning, info, debug)"`
	LogFormat *string       `toml:"log_format" json:"log_format" description:"Define log format (one of: runner, text, json)"`
	Extract   ExtractConfig `toml:"extract" json:"extract"`
	ModTime   time.Time     `toml:"-"`
	Loaded    bool          `toml:"-"`
}

func NewConfig() *Config {
	return &Config{}
}

// LoadConfig reads configFile into c. A file that doesn't exist is not an
// error, the config is just left as not loaded.
func (c *Config) LoadConfig(configFile string) error {
	info, err := os.Stat(configFile)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}

	if _, err = toml.DecodeFile(configFile, c); err != nil {
		return err
	}

	c.ModTime = info.ModTime()
	c.Loaded = true
	return nil
}

// GetMaxDepth returns the nesting limit, where 0 means unlimited.
func (c *ExtractConfig) GetMaxDepth() int {
	switch {
	case c.MaxDepth == 0:
		return DefaultMaxDepth
	case c.MaxDepth < 0:
		return 0
	}
	return c.MaxDepth
}

func (c *ExtractConfig) GetExtractor() string {
	if c.Extractor == "" {
		return DefaultExtractor
	}
	return c.Extractor
}

func (c *ExtractConfig) GetPollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return c.PollInterval
}

func (c *ExtractConfig) GetPerItemEstimate() time.Duration {
	if c.PerItemEstimate <= 0 {
		return DefaultPerItemEstimate
	}
	return c.PerItemEstimate
}
