// Package config handles loading and managing netgauge configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied when fields are absent from the config file.
const (
	DefaultRedundancyThreshold = 0.5
	DefaultMaxPower            = 10
	DefaultMostFreqPower       = 5
	DefaultMinWeight           = 0.1
	DefaultMaxWeight           = 0.4
	DefaultKeyNodeThreshold    = 0.1
	DefaultWorkers             = 8
	DefaultScoutPath           = "scout"
	DefaultScoutTimeout        = 300 // seconds
	DefaultSampleInterval      = 1.0 // seconds between the two counter reads
	DefaultSNMPCommunity       = "public"
	DefaultSNMPPort            = 161
)

// Config is the top-level configuration for netgauge.
type Config struct {
	Assessment AssessmentConfig `yaml:"assessment"`
	RateTiers  []RateTier       `yaml:"rate_tiers" validate:"min=1,dive"`
	Scout      ScoutConfig      `yaml:"scout"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Database   DatabaseConfig   `yaml:"database"`
}

// AssessmentConfig controls the decision engine.
type AssessmentConfig struct {
	// RedundancyThreshold is the occupancy rate every SNMP-capable device
	// must stay below for the short-circuit to fire.
	RedundancyThreshold float64 `yaml:"redundancy_threshold" validate:"gt=0,lte=1"`

	// Normalization band edges, in decimal orders of magnitude.
	MaxPower      int `yaml:"max_power" validate:"gte=1"`
	MostFreqPower int `yaml:"most_freq_power" validate:"gte=0"`

	// Clamp band for dynamic metric weights.
	MinWeight float64 `yaml:"min_weight" validate:"gte=0,lt=1"`
	MaxWeight float64 `yaml:"max_weight" validate:"gt=0,lte=1,gtefield=MinWeight"`

	// UseTopology enables centrality-weighted subnet scoring.
	UseTopology bool `yaml:"use_topology"`

	// KeyNodeThreshold is the fraction of max centrality above which a
	// device is reported as a key node.
	KeyNodeThreshold float64 `yaml:"key_node_threshold" validate:"gte=0,lte=1"`

	// Workers bounds the per-device sampling pool.
	Workers int `yaml:"workers" validate:"gte=1"`
}

// RateTier maps a minimum subnet score to a scan-rate level.
type RateTier struct {
	Name        string  `yaml:"name" validate:"required"`
	MinScore    float64 `yaml:"min_score" validate:"gte=0,lte=100"`
	Description string  `yaml:"description"`
}

// ScoutConfig controls the external prober tool.
type ScoutConfig struct {
	BinaryPath     string  `yaml:"binary_path"`
	Timeout        int     `yaml:"timeout" validate:"gte=1"` // seconds
	SampleInterval float64 `yaml:"sample_interval" validate:"gt=0"`
	Community      string  `yaml:"community"`
	Port           int     `yaml:"port" validate:"gte=1,lte=65535"`
}

// ArchiveConfig selects where assessment results are archived.
type ArchiveConfig struct {
	Backend string `yaml:"backend" validate:"omitempty,oneof=local s3 gcs"`
	Dir     string `yaml:"dir"` // local backend; defaults to CacheDir()

	// S3 backend (also covers S3-compatible stores like MinIO).
	S3Bucket   string `yaml:"s3_bucket"`
	S3Region   string `yaml:"s3_region"`
	S3Endpoint string `yaml:"s3_endpoint"`

	// GCS backend.
	GCSBucket string `yaml:"gcs_bucket"`
}

// DatabaseConfig holds the netgauged Postgres connection.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Assessment: AssessmentConfig{
			RedundancyThreshold: DefaultRedundancyThreshold,
			MaxPower:            DefaultMaxPower,
			MostFreqPower:       DefaultMostFreqPower,
			MinWeight:           DefaultMinWeight,
			MaxWeight:           DefaultMaxWeight,
			UseTopology:         true,
			KeyNodeThreshold:    DefaultKeyNodeThreshold,
			Workers:             DefaultWorkers,
		},
		RateTiers: []RateTier{
			{Name: "level_5", MinScore: 90, Description: "maximum scan rate"},
			{Name: "level_4", MinScore: 75, Description: "high scan rate"},
			{Name: "level_3", MinScore: 60, Description: "moderate scan rate"},
			{Name: "level_2", MinScore: 40, Description: "reduced scan rate"},
			{Name: "level_1", MinScore: 0, Description: "minimal scan rate"},
		},
		Scout: ScoutConfig{
			BinaryPath:     DefaultScoutPath,
			Timeout:        DefaultScoutTimeout,
			SampleInterval: DefaultSampleInterval,
			Community:      DefaultSNMPCommunity,
			Port:           DefaultSNMPPort,
		},
		Archive: ArchiveConfig{
			Backend: "local",
		},
	}
}

// Load reads a config file from the given path, layering it over the
// defaults. If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and orders tiers by descending minimum
// score so lookups can scan from the most aggressive tier down.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	sort.SliceStable(c.RateTiers, func(i, j int) bool {
		return c.RateTiers[i].MinScore > c.RateTiers[j].MinScore
	})
	return nil
}

// FindConfigFile looks for .netgauge/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".netgauge", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the default directory for locally archived results.
// Uses ~/.cache/netgauge/ to avoid polluting working directories.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "netgauge")
}
