package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/msgcodec/cdr"
	"github.com/wippyai/msgcodec/config"
	"github.com/wippyai/msgcodec/registry"
	"github.com/wippyai/msgcodec/schema"
	"github.com/wippyai/msgcodec/value"
)

type globalOptions struct {
	configPath string
	sourceDirs []string
	bigEndian  bool
	logLevel   string
}

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	loader *schema.Loader
	codec  *cdr.Codec
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:           "msgcodec",
		Short:         "Describe message types and convert values between YAML and CDR",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	flags.StringArrayVarP(&opts.sourceDirs, "source-dir", "s", nil, "Directory to search for .msg and .dtp files (repeatable)")
	flags.BoolVar(&opts.bigEndian, "big-endian", false, "Encode and decode big endian")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newDescribeCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newSizeCmd(a),
		newInspectCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, opts *globalOptions) error {
	cfg := config.Default()
	path := opts.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if opts.bigEndian {
		cfg.ByteOrder = config.ByteOrderBig
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	cfg.SourceDirs = append(cfg.SourceDirs, opts.sourceDirs...)
	if len(cfg.SourceDirs) == 0 {
		cfg.SourceDirs = []string{"."}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	cdr.SetLogger(log.Named("cdr"))
	registry.SetLogger(log.Named("registry"))
	schema.SetLogger(log.Named("schema"))

	a.cfg = cfg
	a.log = log
	a.loader = schema.NewLoader(registry.New(), cfg.SourceDirs...)
	a.codec = cdr.New(cfg.CodecOptions()...)
	log.Debug("configured",
		zap.String("command", cmd.Name()),
		zap.Strings("source_dirs", cfg.SourceDirs),
		zap.String("byte_order", cfg.ByteOrder))
	return nil
}

// resolve finds a type by registry name, or loads it from a schema file
// when name has a .msg or .dtp extension.
func (a *app) resolve(name string) (*value.Descriptor, error) {
	var (
		d   *value.Descriptor
		err error
	)
	switch filepath.Ext(name) {
	case ".msg", ".dtp":
		d, err = a.loader.LoadFile(name)
	default:
		d, err = a.loader.Resolve(name)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", name, err)
	}
	return d, nil
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
