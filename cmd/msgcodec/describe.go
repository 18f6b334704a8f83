package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgcodec/value"
)

type describeOptions struct {
	output string // text or yaml
}

type fieldInfo struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default string `yaml:"default,omitempty"`
	Comment string `yaml:"comment,omitempty"`
}

type typeInfo struct {
	Name      string      `yaml:"name"`
	Comment   string      `yaml:"comment,omitempty"`
	Fields    []fieldInfo `yaml:"fields"`
	Constants []fieldInfo `yaml:"constants,omitempty"`
	MaxSize   int         `yaml:"max_size"`
	Bounded   bool        `yaml:"bounded"`
}

func newDescribeCmd(a *app) *cobra.Command {
	opts := &describeOptions{}

	cmd := &cobra.Command{
		Use:   "describe [TYPE]",
		Short: "Show the fields, constants and wire size of a message type",
		Long: `Show the fields, constants and wire size of a message type. TYPE is a
registered name such as geometry_msgs/Pose, or a path to a .msg or .dtp file.
Without TYPE, every type found in the source directories is listed.`,
		Example: `  # Describe a message found under a source directory
  msgcodec describe geometry_msgs/Pose -s ./msgs

  # Describe a file directly, as YAML
  msgcodec describe ./types/Motor.dtp -o yaml

  # List all known types
  msgcodec describe -s ./msgs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listTypes(cmd.OutOrStdout())
			}
			d, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			info := a.describe(d)
			switch opts.output {
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(info); err != nil {
					return err
				}
				return enc.Close()
			case "text":
				return printTypeInfo(cmd.OutOrStdout(), info)
			default:
				return fmt.Errorf("unknown output format %q", opts.output)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, yaml)")
	return cmd
}

func (a *app) listTypes(w io.Writer) error {
	for _, dir := range a.cfg.SourceDirs {
		if _, err := a.loader.LoadDir(dir); err != nil {
			return fmt.Errorf("load %s: %w", dir, err)
		}
	}
	reg := a.loader.Registry()
	p := newPainter(w)
	for _, name := range reg.Names() {
		d, _ := reg.Lookup(name)
		fmt.Fprintf(w, "%s  %s\n", p.paint(nameStyle, name), p.paint(helpStyle, fmt.Sprintf("%d fields", d.FieldCount())))
	}
	return nil
}

func (a *app) describe(d *value.Descriptor) typeInfo {
	n, bounded := a.codec.MaxSize(d.Type())
	info := typeInfo{
		Name:    d.Name(),
		Comment: d.Comment(),
		MaxSize: n,
		Bounded: bounded,
	}
	s := d.New()
	for i := range d.FieldCount() {
		f, _ := d.Field(i)
		fi := fieldInfo{Name: f.Name, Type: f.Type.String(), Comment: f.Comment}
		if f.Default != nil {
			fi.Default = f.Default.String()
		} else if v, ok := s.Get(i); ok && f.Type.Kind().IsPrimitive() {
			fi.Default = v.String()
		}
		info.Fields = append(info.Fields, fi)
	}
	for _, c := range d.Constants() {
		info.Constants = append(info.Constants, fieldInfo{
			Name:    c.Name,
			Type:    c.Value.Type().String(),
			Default: c.Value.String(),
			Comment: c.Comment,
		})
	}
	return info
}

func printTypeInfo(w io.Writer, info typeInfo) error {
	p := newPainter(w)
	fmt.Fprintln(w, p.paint(titleStyle, info.Name))
	if info.Comment != "" {
		for _, line := range strings.Split(info.Comment, "\n") {
			fmt.Fprintln(w, p.paint(helpStyle, "  "+line))
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	section := func(title string, rows []fieldInfo) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(tw, "\n%s\n", title)
		for _, r := range rows {
			line := fmt.Sprintf("  %s\t%s\t", p.paint(nameStyle, r.Name), p.paint(typeStyle, r.Type))
			if r.Default != "" {
				line += p.paint(valueStyle, "= "+r.Default)
			}
			if r.Comment != "" {
				line += "\t" + p.paint(helpStyle, "# "+r.Comment)
			}
			fmt.Fprintln(tw, line)
		}
	}
	section("Fields:", info.Fields)
	section("Constants:", info.Constants)
	if err := tw.Flush(); err != nil {
		return err
	}

	if info.Bounded {
		fmt.Fprintf(w, "\nMax size: %d bytes\n", info.MaxSize)
	} else {
		fmt.Fprintf(w, "\nMax size: unbounded (%d bytes fixed)\n", info.MaxSize)
	}
	return nil
}
