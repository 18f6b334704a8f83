package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wippyai/msgcodec/cdr"
)

type inspectOptions struct {
	decodeOptions
	interactive bool
}

func newInspectCmd(a *app) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect TYPE FILE",
		Short: "Show where each field of an encoded value lives",
		Long: `Decode FILE and list every field with its offset, size and bytes. With -i
an interactive view highlights the selected field in a hex dump.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, data, err := a.decodeFile(cmd, args[0], args[1], &opts.decodeOptions)
			if err != nil {
				return err
			}
			if opts.payload {
				data = data[cdr.HeaderSize:]
			}
			spans := a.codec.Spans(v)
			if opts.interactive {
				m := newInspectModel(args[1], data, spans)
				_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
				return err
			}
			return printSpans(cmd.OutOrStdout(), data, spans)
		},
	}

	cmd.Flags().BoolVar(&opts.payload, "payload", false, "Input starts with an encapsulation header")
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "Input is hex text")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Interactive mode with TUI")
	return cmd
}

// spanLabel names the root span after its type.
func spanLabel(s cdr.Span) string {
	if s.Path == "" {
		return "(" + s.Type + ")"
	}
	return s.Path
}

func spanBytes(data []byte, s cdr.Span) string {
	end := min(s.Offset+s.Size, len(data))
	if s.Offset >= end {
		return ""
	}
	const limit = 16
	b := data[s.Offset:end]
	if len(b) > limit {
		return hex.EncodeToString(b[:limit]) + "..."
	}
	return hex.EncodeToString(b)
}

func printSpans(w io.Writer, data []byte, spans []cdr.Span) error {
	p := newPainter(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tSIZE\tFIELD\tTYPE\tBYTES")
	for _, s := range spans {
		fmt.Fprintf(tw, "%6d\t%4d\t%s%s\t%s\t%s\n",
			s.Offset, s.Size,
			strings.Repeat("  ", s.Depth), p.paint(nameStyle, spanLabel(s)),
			p.paint(typeStyle, s.Type),
			p.paint(valueStyle, spanBytes(data, s)))
	}
	return tw.Flush()
}
