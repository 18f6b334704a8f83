// Package witdef imports WebAssembly Interface Type (WIT) records as struct
// descriptors.
//
// Records become structs, list<T> becomes an unbounded sequence, char becomes
// a wide char and string an unbounded string. Enums are carried as uint32
// discriminants. Type aliases are followed. Variants, options, results,
// tuples, flags and resource handles have no CDR counterpart here and are
// rejected with KindUnsupported.
//
// Field names are converted from kebab-case to snake_case, so a WIT field
// max-speed is addressed as max_speed.
package witdef
