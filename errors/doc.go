// Package errors provides structured error types for the msgcodec module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/value type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("pose", "position", "x").
//		GoType("string").
//		TypeName("float64").
//		Detail("cannot convert string to float").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseAccess, path, 10, 3)
//	err := errors.Underrun(errors.PhaseDecode, path, 12, 4, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind; a target without a Phase matches on Kind alone.
package errors
