package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/msgcodec/value"
	"github.com/wippyai/msgcodec/yamlvalue"
)

type decodeOptions struct {
	payload bool
	hex     bool
}

func newDecodeCmd(a *app) *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode TYPE FILE",
		Short: "Decode CDR to YAML",
		Example: `  # Decode raw bytes
  msgcodec decode geometry_msgs/Pose pose.cdr

  # Decode hex text from stdin, taking the byte order from the header
  echo 00010000... | msgcodec decode geometry_msgs/Pose - --hex --payload`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := a.decodeFile(cmd, args[0], args[1], opts)
			if err != nil {
				return err
			}
			out, err := yamlvalue.Marshal(v)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.payload, "payload", false, "Input starts with an encapsulation header")
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "Input is hex text")
	return cmd
}

// readBytes reads a CDR input, decoding hex text when asked.
func readBytes(cmd *cobra.Command, path string, isHex bool) ([]byte, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	if !isHex {
		return data, nil
	}
	b, err := hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// decodeFile decodes path as typeName and also returns the bytes it read.
func (a *app) decodeFile(cmd *cobra.Command, typeName, path string, opts *decodeOptions) (*value.Struct, []byte, error) {
	d, err := a.resolve(typeName)
	if err != nil {
		return nil, nil, err
	}
	data, err := readBytes(cmd, path, opts.hex)
	if err != nil {
		return nil, nil, err
	}
	v := d.New()
	if opts.payload {
		err = a.codec.UnmarshalPayload(data, v)
	} else {
		err = a.codec.Unmarshal(data, v)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, data, nil
}
