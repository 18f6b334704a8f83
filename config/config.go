// Package config handles msgcodec configuration files.
package config

import (
	"encoding/binary"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgcodec/cdr"
	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/internal/wire"
)

// CurrentVersion is the current version of the config file format.
const CurrentVersion = 1

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "msgcodec.yaml"

const (
	ByteOrderLittle = "little"
	ByteOrderBig    = "big"
)

// Config represents the msgcodec.yaml configuration file.
type Config struct {
	Version    int      `yaml:"version"`
	ByteOrder  string   `yaml:"byte_order,omitempty"`
	SourceDirs []string `yaml:"source_dirs,omitempty"`
	Limits     Limits   `yaml:"limits,omitempty"`
	Log        Log      `yaml:"log,omitempty"`
}

// Limits bound what the decoder accepts.
type Limits struct {
	MaxStringSize     int `yaml:"max_string_size,omitempty"`
	MaxSequenceLength int `yaml:"max_sequence_length,omitempty"`
}

type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // console or json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:   CurrentVersion,
		ByteOrder: ByteOrderLittle,
		Limits: Limits{
			MaxStringSize:     wire.MaxStringSize,
			MaxSequenceLength: wire.MaxSequenceLength,
		},
		Log: Log{Level: "warn", Format: "console"},
	}
}

// Load reads a Config from a file path. Unset fields take their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "open "+path)
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "decode "+path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "create "+path)
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "encode "+path)
	}
	return enc.Close()
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return errors.New(errors.PhaseConfig, errors.KindUnsupported).
			Path("version").Value(c.Version).
			Detail("unsupported config version %d", c.Version).Build()
	}
	switch c.ByteOrder {
	case "", ByteOrderLittle, ByteOrderBig:
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("byte_order").Value(c.ByteOrder).
			Detail("byte order must be %s or %s", ByteOrderLittle, ByteOrderBig).Build()
	}
	if c.Limits.MaxStringSize < 0 || c.Limits.MaxSequenceLength < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("limits").Detail("limits must not be negative").Build()
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("log", "level").Value(c.Log.Level).Cause(err).Detail("unknown log level").Build()
		}
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("log", "format").Value(c.Log.Format).
			Detail("log format must be console or json").Build()
	}
	return nil
}

// Order returns the configured byte order.
func (c *Config) Order() binary.ByteOrder {
	if c.ByteOrder == ByteOrderBig {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// CodecOptions returns the codec options matching the configuration.
func (c *Config) CodecOptions() []cdr.Option {
	return []cdr.Option{
		cdr.WithByteOrder(c.Order()),
		cdr.WithLimits(c.Limits.MaxStringSize, c.Limits.MaxSequenceLength),
	}
}

// NewLogger builds a logger writing to stderr at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if c.Log.Level != "" {
		l, err := zapcore.ParseLevel(c.Log.Level)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
		}
		level = l
	}

	zc := zap.NewDevelopmentConfig()
	if c.Log.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	return zc.Build()
}
