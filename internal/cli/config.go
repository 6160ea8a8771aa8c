package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/tensorbuf/analyze"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/gpu"
)

// Config holds command defaults loaded from a YAML file.
//
// Example:
//
//	precision: int8
//	compression: zstd
//	byte_order: little
//	usage: storage|copy_dst
//	hint: storage
//	log_level: debug
type Config struct {
	// Precision used by quantize and build.
	Precision string `yaml:"precision"`
	// Compression applied to written artifacts.
	Compression string `yaml:"compression"`
	// ByteOrder of raw float32 input files and of written artifacts.
	ByteOrder string `yaml:"byte_order"`
	// Usage flags for build.
	Usage string `yaml:"usage"`
	// Hint for the analyze recommendation.
	Hint string `yaml:"hint"`
	// LogLevel for library diagnostics written to stderr.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Precision:   format.PrecisionFP16.String(),
		Compression: "none",
		ByteOrder:   "little",
		Usage:       "storage|copy_dst",
		Hint:        analyze.HintPrecision.String(),
		LogLevel:    "warn",
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}

		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field parses.
func (c Config) Validate() error {
	if _, err := format.ParsePrecision(c.Precision); err != nil {
		return err
	}
	if _, err := format.ParseCompression(c.Compression); err != nil {
		return err
	}
	if _, err := parseByteOrder(c.ByteOrder); err != nil {
		return err
	}
	if _, err := gpu.ParseUsage(c.Usage); err != nil {
		return err
	}
	if _, err := analyze.ParseHint(c.Hint); err != nil {
		return err
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

func parseByteOrder(s string) (endian.EndianEngine, error) {
	switch strings.ToLower(s) {
	case "little", "le", "":
		return endian.GetLittleEndianEngine(), nil
	case "big", "be":
		return endian.GetBigEndianEngine(), nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", s)
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}

	return level, nil
}
