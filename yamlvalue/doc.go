// Package yamlvalue converts structured values to and from YAML.
//
// Structs map to YAML mappings with keys in field order, arrays and
// sequences to YAML sequences, and primitives to scalars. Chars are written
// as one-character strings and read from either a string or a code point.
//
// Unmarshal fills an existing value in place. Fields missing from the
// document keep their current value, so decoding into a fresh value leaves
// declared defaults untouched.
package yamlvalue
