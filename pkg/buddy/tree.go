package buddy

import (
	"fmt"

	"github.com/flier/buddy/internal/debug"
	"github.com/flier/buddy/pkg/opt"
)

// Tree is a flat-array buddy-system allocator over one contiguous region of
// 2^(BaseOrder+MaxOrder) bytes.
//
// A Tree is single-owner: every exported method requires exclusive access,
// and nothing here is safe for concurrent use without external
// synchronization. See the package doc for the contract-violation vs.
// out-of-space distinction.
type Tree struct {
	levels    uint8
	baseOrder uint8
	storage   Storage
}

// TotalBlocks returns the number of cells a tree with the given number of
// levels needs: 2^levels - 1.
func TotalBlocks(levels uint8) int {
	return int(BlocksInTree(levels))
}

// MaxOrder returns the order of the single root block: levels - 1.
func (t *Tree) MaxOrder() uint8 {
	return t.levels - 1
}

// MaxOrderSize returns log2 of the total region size in bytes.
func (t *Tree) MaxOrderSize() uint8 {
	return t.MaxOrder() + t.baseOrder
}

// TotalBlocks returns the number of cells backing this tree.
func (t *Tree) TotalBlocks() int {
	return TotalBlocks(t.levels)
}

// BlocksInOrder returns the number of blocks of the given order in the tree,
// i.e. the width of that order's level.
func (t *Tree) BlocksInOrder(order uint8) uint64 {
	assert(order <= t.MaxOrder(), "order %d exceeds max order %d", order, t.MaxOrder())

	return BlocksInLevel(t.MaxOrder() - order)
}

// Block returns a read-only view of cell i (zero-indexed), for diagnostics
// and tests.
func (t *Tree) Block(i int) Block {
	assert(i >= 0 && i < t.TotalBlocks(), "block index %d out of bounds", i)

	return t.storage.Blocks()[i]
}

// block reads the cell at the given one-indexed logical node.
func (t *Tree) block(index uint64) Block {
	return t.storage.Blocks()[index-1]
}

// setBlock writes the cell at the given one-indexed logical node.
func (t *Tree) setBlock(index uint64, b Block) {
	t.storage.Blocks()[index-1] = b
}

// NewFromRanges builds a Tree over storage (which must hold exactly
// TotalBlocks(levels) cells) whose leaves are free exactly where they fall
// entirely within one of the usable ranges.
//
// Ranges may be given in any order, may overlap, and may be empty; the
// resulting set of usable addresses is their union. A range extending past
// the region (Hi >= 2^MaxOrderSize()) is clipped to the region first, never
// used to justify an out-of-region allocation.
func NewFromRanges(levels, baseOrder uint8, storage Storage, usable []Range) (*Tree, error) {
	t := &Tree{levels: levels, baseOrder: baseOrder, storage: storage}

	if got, want := len(storage.Blocks()), t.TotalBlocks(); got != want {
		return nil, fmt.Errorf("buddy: storage has %d cells, want %d", got, want)
	}

	maxAddr := (uint64(1) << t.MaxOrderSize()) - 1

	clipped := make([]Range, len(usable))
	for i, r := range usable {
		clipped[i] = r.clip(maxAddr)
	}

	// Leaf pass: each leaf is free(0) iff some usable range wholly contains
	// the byte range it covers, used otherwise.
	leafSize := uint64(1) << baseOrder
	leafBase := uint64(1) << t.MaxOrder()
	blockBegin := uint64(0)

	for k := uint64(0); k < leafBase; k++ {
		blockEnd := blockBegin + leafSize - 1

		free := false
		for _, r := range clipped {
			if r.Contains(blockBegin) && r.Contains(blockEnd) {
				free = true
				break
			}
		}

		if free {
			t.setBlock(leafBase+k, FreeBlock(0))
		} else {
			t.setBlock(leafBase+k, UsedBlock())
		}

		blockBegin += leafSize
	}

	// Interior pass: bottom-up, each node only after both children are final.
	start := uint64(1) << (t.MaxOrder() - 1)
	for order := uint8(1); order <= t.MaxOrder(); order++ {
		end := start + t.BlocksInOrder(order)
		for nodeIndex := start; nodeIndex < end; nodeIndex++ {
			t.updateBlock(nodeIndex, order)
		}

		start >>= 1
	}

	return t, nil
}

// NewFree builds a Tree over storage with the entire region free.
func NewFree(levels, baseOrder uint8, storage Storage) (*Tree, error) {
	t := &Tree{levels: levels, baseOrder: baseOrder, storage: storage}

	if got, want := len(storage.Blocks()), t.TotalBlocks(); got != want {
		return nil, fmt.Errorf("buddy: storage has %d cells, want %d", got, want)
	}

	copy(storage.Blocks(), precomputedAllFree(levels))

	return t, nil
}

// AllocOrder allocates a block of the given order if one is available,
// returning an address relative to the tree's region (0 is the start), or
// opt.None if the tree has no sufficiently large free block. The tree is
// left unchanged on opt.None.
//
// The returned address, if any, is a multiple of 2^(BaseOrder+desiredOrder).
// Among minimal-address free blocks of the requested order, the leftmost is
// always chosen.
func (t *Tree) AllocOrder(desiredOrder uint8) opt.Option[uint64] {
	assert(desiredOrder <= t.MaxOrder(), "desired order %d exceeds max order %d", desiredOrder, t.MaxOrder())

	root := t.block(1)
	if root.OrderFree == 0 || root.OrderFree-1 < desiredOrder {
		return opt.None[uint64]()
	}

	var addr uint64
	nodeIndex := uint64(1)
	maxLevel := t.MaxOrder() - desiredOrder

	for level := uint8(0); level < maxLevel; level++ {
		leftChildIndex := LeftChild(nodeIndex)
		left := t.block(leftChildIndex)

		// left.OrderFree > desiredOrder, after the +1 encoding, means the left
		// subtree has a free block of at least desiredOrder; o == 0 (used)
		// always fails this since desiredOrder >= 0.
		if left.OrderFree > desiredOrder {
			nodeIndex = leftChildIndex
		} else {
			addr += uint64(1) << (t.MaxOrderSize() - level - 1)
			nodeIndex = leftChildIndex + 1
		}
	}

	t.setBlock(nodeIndex, UsedBlock())
	t.updateBlocksAbove(nodeIndex, desiredOrder)

	debug.Log(nil, "alloc", "order=%d addr=%#x node=%d", desiredOrder, addr, nodeIndex)

	return opt.Some(addr)
}

// DeallocOrder returns a block of the given order, previously returned by a
// matching AllocOrder call on this tree and not yet deallocated, back to the
// tree. It is a contract violation -- and panics -- to deallocate a block
// that is not currently marked used, or whose derived index falls outside
// the tree.
func (t *Tree) DeallocOrder(ptr uint64, order uint8) {
	assert(order <= t.MaxOrder(), "order %d exceeds max order %d", order, t.MaxOrder())

	level := t.MaxOrder() - order
	levelOffset := BlocksInTree(level)
	index := levelOffset + (ptr >> (order + t.baseOrder)) + 1

	assert(index <= uint64(t.TotalBlocks()), "block index %d out of bounds", index)
	assert(t.block(index).OrderFree == 0, "block (index %d) must be used to be freed", index)

	t.setBlock(index, FreeBlock(order))
	t.updateBlocksAbove(index, order)

	debug.Log(nil, "dealloc", "order=%d addr=%#x node=%d", order, ptr, index)
}

// updateBlock recomputes node's cached OrderFree from its two children,
// applying the merge rule: both children wholly free at exactly order-1
// merges into a free block of order; anything else propagates the max of the
// two children's cached values.
func (t *Tree) updateBlock(nodeIndex uint64, order uint8) {
	assert(order != 0, "order 0 has no children to update from")
	assert(nodeIndex != 0, "node index 0 is invalid in a 1-indexed tree")

	leftIndex := LeftChild(nodeIndex)
	left := t.block(leftIndex).OrderFree
	right := t.block(leftIndex + 1).OrderFree

	if left == order && right == order {
		t.setBlock(nodeIndex, FreeBlock(order))
	} else {
		t.setBlock(nodeIndex, Block{OrderFree: max(left, right)})
	}
}

// updateBlocksAbove walks from the mutated node up to the root, recomputing
// each ancestor's cached OrderFree in turn.
func (t *Tree) updateBlocksAbove(index uint64, order uint8) {
	nodeIndex := index

	for o := order + 1; o <= t.MaxOrder(); o++ {
		nodeIndex = Parent(nodeIndex)
		t.updateBlock(nodeIndex, o)
	}
}
