package buddy

import "sync"

// allFreeCache memoizes the all-free bottom-up computation by levels, since
// its result depends only on the tree's shape, never on BaseOrder. Go has no
// way to const-evaluate this the way the original Rust source does it at
// compile time for an inline array; caching it once per distinct levels
// value for the life of the process is the closest idiomatic substitute (see
// SPEC_FULL.md §3.9).
var allFreeCache sync.Map // map[uint8][]Block

// precomputedAllFree returns a fully-initialized, all-free template of
// TotalBlocks(levels) cells, computing it on first use for a given levels
// and reusing the result afterwards.
func precomputedAllFree(levels uint8) []Block {
	if cached, ok := allFreeCache.Load(levels); ok {
		return cached.([]Block)
	}

	blocks := make([]Block, TotalBlocks(levels))
	maxOrder := levels - 1

	for i := range blocks {
		blocks[i] = FreeBlock(0)
	}

	start := uint64(1) << (maxOrder - 1)
	for order := uint8(1); order <= maxOrder; order++ {
		width := BlocksInLevel(maxOrder - order)
		for nodeIndex := start; nodeIndex < start+width; nodeIndex++ {
			leftIndex := LeftChild(nodeIndex)
			// Both children are free: at order-1 on the first pass (since every
			// cell starts at FreeBlock(0)), or already merged to `order` by a
			// prior iteration of this same loop.
			left := blocks[leftIndex-1].OrderFree
			right := blocks[leftIndex].OrderFree

			if left == order && right == order {
				blocks[nodeIndex-1] = FreeBlock(order)
			} else {
				blocks[nodeIndex-1] = Block{OrderFree: max(left, right)}
			}
		}

		start >>= 1
	}

	// If maxOrder == 0 the loop above never runs; the sole node is both root
	// and leaf, already FreeBlock(0) from the initial fill.
	cached, _ := allFreeCache.LoadOrStore(levels, blocks)

	return cached.([]Block)
}
