package util

import "sort"

// UniqueInt returns a newly allocated slice holding the distinct values
// of s in ascending order. A single compacting pass with a write cursor
// collapses consecutive equal values; this is enough when s is already
// non-decreasing, which is the common case for atom or molecule ids
// coming out of a trajectory. When the pass detects that s was not
// sorted, the compacted result is sorted and compacted again.
//
// An empty slice returns an empty slice.
func UniqueInt(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)

	for {
		if len(out) < 2 {
			return out
		}

		sorted := true
		n := 1
		for i := 1; i < len(out); i++ {
			if out[i] < out[i-1] {
				sorted = false
			}
			if out[i] != out[n-1] {
				out[n] = out[i]
				n++
			}
		}
		out = out[:n]

		if sorted {
			return out
		}
		sort.Ints(out)
	}
}
