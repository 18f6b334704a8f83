package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/msgcodec/yamlvalue"
)

type encodeOptions struct {
	output  string
	payload bool
	hex     bool
}

func newEncodeCmd(a *app) *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode TYPE VALUES.yaml...",
		Short: "Encode YAML values to CDR",
		Long: `Encode one or more YAML documents as CDR. With a single input the result
goes to stdout or to the file named by -o. With several inputs -o names a
directory and each input is written next to it as <name>.cdr.`,
		Example: `  # Encode to stdout as hex
  msgcodec encode geometry_msgs/Pose pose.yaml --hex

  # Encode with an encapsulation header
  msgcodec encode geometry_msgs/Pose pose.yaml --payload -o pose.cdr

  # Encode a batch into a directory
  msgcodec encode nav_msgs/Path paths/*.yaml -o out/`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEncode(cmd, args[0], args[1:], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, or directory for several inputs")
	cmd.Flags().BoolVar(&opts.payload, "payload", false, "Prefix the encapsulation header")
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "Write hex text instead of raw bytes")
	return cmd
}

func (a *app) runEncode(cmd *cobra.Command, typeName string, inputs []string, opts *encodeOptions) error {
	d, err := a.resolve(typeName)
	if err != nil {
		return err
	}
	a.loader.Registry().Freeze()

	var names []string
	if len(inputs) > 1 {
		if opts.output == "" {
			return fmt.Errorf("-o DIR is required with several inputs")
		}
		if names, err = outputNames(inputs, opts.hex); err != nil {
			return err
		}
	}

	results := make([][]byte, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			v := d.New()
			if err := yamlvalue.Unmarshal(src, v); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			var out []byte
			if opts.payload {
				out, err = a.codec.MarshalPayload(v)
			} else {
				out, err = a.codec.Marshal(v)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	format := func(b []byte) []byte {
		if opts.hex {
			return []byte(hex.EncodeToString(b) + "\n")
		}
		return b
	}

	if len(inputs) == 1 {
		if opts.output == "" {
			_, err := cmd.OutOrStdout().Write(format(results[0]))
			return err
		}
		return writeOutput(opts.output, format(results[0]))
	}

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	for i, name := range names {
		if err := writeOutput(filepath.Join(opts.output, name), format(results[i])); err != nil {
			return err
		}
	}
	a.log.Info("encoded batch", zap.String("type", d.Name()), zap.Int("files", len(inputs)))
	return nil
}

// outputNames maps each input to <name>.cdr in the output directory and
// fails when two inputs would write the same file.
func outputNames(inputs []string, isHex bool) ([]string, error) {
	names := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".cdr"
		if isHex {
			name += ".hex"
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, in, name)
		}
		seen[name] = in
		names[i] = name
	}
	return names, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // path is provided by caller
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
