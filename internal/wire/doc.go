// Package wire holds the CDR alignment arithmetic and safety limits shared by
// the codec and its size calculators.
//
// This package is internal to msgcodec.
package wire
