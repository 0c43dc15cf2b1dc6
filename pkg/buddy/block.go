package buddy

// Block is a single cell of the flat buddy tree.
//
// OrderFree caches the largest order free anywhere in the subtree rooted at
// this node, offset by one: 0 means "entirely used", and k+1 means "the
// largest free order in this subtree is k". The offset lets a single byte
// distinguish "used" from "order 0 free" without a separate boolean.
type Block struct {
	OrderFree uint8
}

// FreeBlock builds a cell representing a free block of the given order.
func FreeBlock(order uint8) Block {
	return Block{OrderFree: order + 1}
}

// UsedBlock builds a cell representing an entirely used subtree.
func UsedBlock() Block {
	return Block{OrderFree: 0}
}

// Used reports whether this cell represents an entirely used subtree.
func (b Block) Used() bool {
	return b.OrderFree == 0
}

// Free reports whether this cell has some free block of any order, and if
// so, the largest such order.
func (b Block) Free() (order uint8, ok bool) {
	if b.OrderFree == 0 {
		return 0, false
	}

	return b.OrderFree - 1, true
}
