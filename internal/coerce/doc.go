// Package coerce converts loosely typed Go numbers (YAML and JSON decoded
// values, untyped constants boxed as int) into the exact-width values the
// value model stores, rejecting anything that would lose information.
//
// This package is internal to msgcodec.
package coerce
