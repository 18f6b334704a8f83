// Package msgcodec encodes structured message values to and from CDR.
//
// Message types are described by data, not generated code. A Descriptor lists
// the ordered, typed fields of a message; Descriptor.New builds an empty value
// tree that is read and written reflectively, and the CDR codec walks that tree
// with the exact alignment rules of the wire format.
//
// # Architecture Overview
//
//	msgcodec/           Root package with Marshal/Unmarshal over a default codec
//	├── value/          Types, primitives, arrays, sequences, structs, descriptors
//	├── registry/       Name interning and the descriptor table
//	├── cdr/            CDR writer/reader, codec, size calculation, payload header
//	├── schema/         Loader resolving type references across source directories
//	│   ├── msgdef/     ROS 2 .msg parser
//	│   ├── dtpdef/     IEC 61499 .dtp reader
//	│   └── witdef/     WIT record importer
//	├── yamlvalue/      YAML documents to and from value trees
//	├── config/         YAML configuration for the CLI
//	├── errors/         Structured error types
//	└── cmd/msgcodec/   Command line tool
//
// # Quick Start
//
// Register a type and round-trip a value:
//
//	reg := registry.New()
//	d, err := reg.Register("demo/Point", []value.Field{
//	    {Name: "x", Type: value.Float64},
//	    {Name: "y", Type: value.Float64},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := d.New()
//	x, _ := p.Field("x")
//	x.(*value.Primitive).SetFloat(1.5)
//
//	data, err := msgcodec.Marshal(p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	q := d.New()
//	err = msgcodec.Unmarshal(data, q)
//
// Types are more often loaded from schema files:
//
//	loader := schema.NewLoader(registry.New(), "./msgs")
//	d, err := loader.Resolve("geometry_msgs/Pose")
//
// # Wire Format
//
// Every primitive of width N is preceded by zero padding up to the next
// multiple of N, counted from the start of the CDR body. Sequences and
// strings carry a uint32 length prefix; strings end in a NUL byte that the
// length includes. Fixed arrays and structs add no framing of their own.
//
// # Thread Safety
//
// A Codec is immutable and safe for concurrent use. A Registry accepts
// registrations until Freeze and is safe for concurrent reads afterwards.
// Value trees are not synchronized; use one writer or many readers.
package msgcodec
