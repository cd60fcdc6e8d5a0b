package makewhole

// localIndex maps each global atom index of the group to its offset
// within the group, so that membership tests and the traversal work on
// dense offsets instead of hashed lookups.
func localIndex(indices []int) map[int]int {
	m := make(map[int]int, len(indices))
	for off, idx := range indices {
		m[idx] = off
	}
	return m
}

// buildAdjacency builds undirected neighbour lists over the local
// offsets 0..n-1. A bond is kept only when both endpoints belong to the
// group; both directions are inserted. Self bonds are dropped,
// duplicate bonds are kept as-is (the traversal tolerates them).
func buildAdjacency(local map[int]int, n int, bonds [][2]int) [][]int32 {
	adj := make([][]int32, n)
	for _, bd := range bonds {
		i, ok := local[bd[0]]
		if !ok {
			continue
		}
		j, ok := local[bd[1]]
		if !ok || i == j {
			continue
		}

		adj[i] = append(adj[i], int32(j))
		adj[j] = append(adj[j], int32(i))
	}
	return adj
}
