// Package registry interns type names and owns the descriptor table.
//
// A Registry has two phases. During startup a single goroutine interns names
// and registers descriptors. Freeze ends that phase: afterwards every write
// fails with errors.KindFrozen and lookups run without taking a lock, so any
// number of goroutines may read concurrently.
//
//	reg := registry.New()
//	point, _ := reg.Register("geometry/Point", []value.Field{
//		{Name: "x", Type: value.Float64},
//		{Name: "y", Type: value.Float64},
//	})
//	reg.Freeze()
//
// There is no global registry; pass the Registry to whatever needs it.
package registry
