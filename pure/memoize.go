// Package pure memoizes pure functions by their input.
//
// Memoize does not check purity. Wrapping a function that reads the clock,
// performs I/O or depends on mutable captured state returns stale results.
// In a tea program the natural candidate is the view function: it must be
// pure already, and a State that is comparable (or a fmt.Stringer) makes a
// good cache key.
package pure

import "fmt"

// Memoize returns fn backed by a Table holding up to 2*maxSize results.
//
// Inputs are used as map keys directly when comparable. Inputs implementing
// fmt.Stringer are keyed by String(). Other inputs panic on first use.
func Memoize[I any, O any](fn func(I) O, maxSize uint32) func(I) O {
	table := NewTable[O](maxSize)
	return func(in I) O {
		key := tableKey(in)
		if v, ok := table.Load(key); ok {
			return v
		}
		v := fn(in)
		table.Store(key, v)
		return v
	}
}

func tableKey(i any) any {
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringer.String()
	}
	return i
}
