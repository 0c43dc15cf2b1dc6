package buddy

// maxLevels is the largest LEVELS value this package will accept. Capping it
// at 31 keeps TotalBlocks (2^levels - 1) within a 32-bit int and every
// one-indexed node index below 2^31.
const maxLevels = 31

// LeftChild returns the one-indexed left child of node i. Defined only for
// i >= 1; index 0 is never a valid node.
func LeftChild(i uint64) uint64 {
	assert(i >= 1, "index 0 is invalid in a 1-indexed tree")

	return i << 1
}

// Parent returns the one-indexed parent of node i. Defined only for i >= 1.
func Parent(i uint64) uint64 {
	assert(i >= 1, "index 0 is invalid in a 1-indexed tree")

	return i >> 1
}

// BlocksInTree returns the number of nodes in a complete binary tree with the
// given number of levels: 2^levels - 1.
func BlocksInTree(levels uint8) uint64 {
	assert(levels <= maxLevels, "levels %d exceeds the maximum of %d", levels, maxLevels)

	return (uint64(1) << levels) - 1
}

// BlocksInLevel returns the number of nodes at a given (zero-indexed, root =
// 0) level of a complete binary tree: 2^level.
func BlocksInLevel(level uint8) uint64 {
	return BlocksInTree(level+1) - BlocksInTree(level)
}
