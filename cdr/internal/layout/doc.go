// Package layout computes static CDR sizes for value types.
//
// CDR aligns every primitive to its own width relative to the start of the
// body, so the size of a type depends on the offset it starts at. Because the
// widest alignment is 8, only the offset modulo 8 matters, and results are
// cached per (type, offset%8).
//
// # Size Rules
//
//   - Scalars: padding to their width, then the width
//   - Strings: padding to 4, uint32 length, bytes, terminating NUL
//   - Wide strings: padding to 4, uint32 length, 4 bytes per character
//   - Arrays: every element in turn
//   - Sequences: padding to 4, uint32 count, then the elements
//   - Structs: every field in turn, no framing
//
// For types with an unbounded string or sequence the result is not a maximum:
// unbounded parts contribute only their length prefix (and the NUL of a
// string), and Info.Bounded is false.
//
// This package is internal to the codec.
package layout
