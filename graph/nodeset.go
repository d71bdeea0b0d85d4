package graph

import "slices"

// NodeSet is a sorted, duplicate-free set of item node indices.
type NodeSet []int

// Len returns the number of nodes in the set.
func (s NodeSet) Len() int {
	return len(s)
}

// Contains reports whether node is in the set.
func (s NodeSet) Contains(node int) bool {
	_, found := slices.BinarySearch(s, node)
	return found
}

// Intersect returns the nodes present in both sets.
func (s NodeSet) Intersect(other NodeSet) NodeSet {
	out := make(NodeSet, 0, min(len(s), len(other)))
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] < other[j]:
			i++
		case s[i] > other[j]:
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	return out
}
