package buddy

import (
	"github.com/flier/buddy/pkg/opt"
	"github.com/flier/buddy/pkg/xunsafe/layout"
)

// log2Floor returns floor(log2(val)) for val >= 1.
func log2Floor(val uint64) uint8 {
	var log2 uint8

	for val > 1 {
		val >>= 1
		log2++
	}

	return log2
}

// log2Ceil returns ceil(log2(val)) for val >= 1.
func log2Ceil(val uint64) uint8 {
	log2 := log2Floor(val)

	if val != uint64(1)<<log2 {
		return log2 + 1
	}

	return log2
}

// orderFor computes the block order needed to satisfy a request of size
// bytes (already padded to its alignment), per spec §4.8. The "+1" mirrors
// the off-by-one in the OrderFree encoding; as a result, any size above
// 2^(BaseOrder-1) gets an order one above the smallest 2^(BaseOrder+order)
// byte block that could hold it.
func orderFor(size uint64, baseOrder uint8) uint8 {
	log2 := log2Ceil(size) + 1

	if log2 > baseOrder {
		return log2 - baseOrder
	}

	return 0
}

// AllocLayout allocates a block able to hold size bytes aligned to align
// (which must be a power of two), returning the address or opt.None if no
// block is available. A zero size returns opt.Some(align) without touching
// the tree -- this is a zero-sized allocation, which touches no memory.
func (t *Tree) AllocLayout(size, align uint64) opt.Option[uint64] {
	if size == 0 {
		return opt.Some(align)
	}

	padded := size + layout.Padding(size, align)
	order := orderFor(padded, t.baseOrder)

	if order > t.MaxOrder() {
		return opt.None[uint64]()
	}

	return t.AllocOrder(order)
}

// DeallocLayout returns a block previously allocated by a matching
// AllocLayout call. It is a no-op for zero-sized allocations.
func (t *Tree) DeallocLayout(ptr, size, align uint64) {
	if size == 0 {
		return
	}

	padded := size + layout.Padding(size, align)
	t.DeallocOrder(ptr, orderFor(padded, t.baseOrder))
}

// AllocType reserves a block sized and aligned for one value of type T,
// using T's natural Go layout. It mirrors the teacher package's
// arena.New[T] pattern, adapted from "place a value on an arena" to "reserve
// an order-sized block for a value of this shape".
func AllocType[T any](t *Tree) opt.Option[uint64] {
	l := layout.Of[T]()

	return t.AllocLayout(uint64(l.Size), uint64(l.Align))
}

// FreeType returns a block previously reserved by AllocType[T] for the same
// type T.
func FreeType[T any](t *Tree, ptr uint64) {
	l := layout.Of[T]()

	t.DeallocLayout(ptr, uint64(l.Size), uint64(l.Align))
}
