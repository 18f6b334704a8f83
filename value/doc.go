// Package value is a reflective model for structured message values.
//
// A Type describes the shape of a value: a primitive, a fixed-size Array, a
// bounded or unbounded Sequence, or a Struct built from a Descriptor. Every
// runtime value implements the sealed Value interface and is one of
// *Primitive, *Array, *Sequence or *Struct, so consumers such as the CDR codec
// can switch over the four cases exhaustively.
//
// Structs own their fields by value. Get returns a live reference into the
// struct, while Clone and assignment always copy; two structs never share a
// nested value.
//
//	id, _ := value.NewIdentity()
//	desc, _ := value.NewDescriptor(id, "geometry/Point", []value.Field{
//		{Name: "x", Type: value.Float64},
//		{Name: "y", Type: value.Float64},
//	})
//	p := desc.New()
//	_ = p.SetField("x", value.NewFloat64(1.5))
//
// Values are not safe for concurrent mutation. A single writer or any number
// of readers may use a value tree at a time.
package value
