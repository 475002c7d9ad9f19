// Package scale computes human-friendly axis bounds and tick spacing.
//
// A "nice" scale rounds an arbitrary data range outward to multiples of a
// step that is 1, 2 or 5 times a power of ten. The result is stable: feeding
// the computed bounds back into [Nice] yields the same bounds again.
//
// # Usage
//
//	s := scale.Nice(0, 97, 5, scale.Options{})
//	// s.Min == 0, s.Max == 100, s.Interval == 20
//	for _, v := range s.Ticks() {
//	    fmt.Println(v) // 0 20 40 60 80 100
//	}
//
// Logarithmic axes use [Log], which rounds bounds outward to whole decades.
//
// All functions are pure and safe for concurrent use.
package scale
