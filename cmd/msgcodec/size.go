package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/msgcodec/yamlvalue"
)

func newSizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "size TYPE [VALUES.yaml]",
		Short: "Print the maximum encoded size of a type, and the exact size of a value",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			n, bounded := a.codec.MaxSize(d.Type())
			if bounded {
				fmt.Fprintf(w, "max: %d\n", n)
			} else {
				fmt.Fprintf(w, "max: unbounded (fixed part %d)\n", n)
			}
			if len(args) == 1 {
				return nil
			}

			src, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			v := d.New()
			if err := yamlvalue.Unmarshal(src, v); err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			fmt.Fprintf(w, "exact: %d\n", a.codec.ExactSize(v))
			return nil
		},
	}
}
