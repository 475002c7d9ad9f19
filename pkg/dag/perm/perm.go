// Package perm enumerates permutations of small index sets. The sankey
// layout uses it to search column orders exhaustively.
package perm

import "slices"

// Seq returns [0, 1, ..., n-1]. For n <= 0 it returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n!. For n <= 1 it returns 1.
// 13! already exceeds a 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns permutations of [0, 1, ..., n-1] in Heap's order,
// starting with the identity. With limit > 0 at most limit permutations
// are returned; otherwise all n! are. Each slice is a separate allocation.
//
// n = 0 yields one empty permutation. Callers must bound n: the result
// holds n! slices.
func Generate(n, limit int) [][]int {
	if n <= 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	perm := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
		if limit > 0 {
			capacity = min(capacity, limit)
		}
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(perm))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[state[i]], perm[i] = perm[i], perm[state[i]]
			}
			result = append(result, slices.Clone(perm))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}

// Apply returns items reordered by p: out[i] = items[p[i]].
// p must be a permutation of len(items) indexes.
func Apply[T any](items []T, p []int) []T {
	out := make([]T, len(p))
	for i, j := range p {
		out[i] = items[j]
	}
	return out
}
