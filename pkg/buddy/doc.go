// Package buddy implements a flat-array buddy-system memory allocator.
//
// A [Tree] partitions a fixed, contiguous region of size
// 2^(BaseOrder + MaxOrder) bytes into power-of-two blocks and services
// allocation/deallocation requests in terms of block orders. It makes no
// operating-system calls and starts no goroutines. It is not heap-free: the
// cell array comes from the caller, but [NewFromRanges] copies the range
// list, [NewFree] caches one all-free template per levels value, and each
// successful allocation returns its address boxed in an [opt.Option]. It never
// dereferences the addresses it hands out -- they are offsets relative to
// the region's base, for the caller to interpret.
//
// # The flat array
//
// The tree is a complete binary tree stored implicitly in an array indexed
// in level order: index 1 is the root (order MaxOrder), indices 2 and 3 are
// its children (order MaxOrder-1), and so on down to the leaves at order 0.
// Each cell caches the largest free order reachable from its subtree, so
// allocation and deallocation only ever need to read and write O(MaxOrder)
// cells.
//
// # Storage ownership
//
// The tree does not allocate its own backing array. Callers provide a
// [Storage] -- a heap-boxed slice via [NewStorage], or a borrowed slice via
// [WrapStorage] -- and the tree only ever indexes into it.
//
// # Usage
//
//	storage := buddy.NewStorage(buddy.TotalBlocks(19))
//	tree, err := buddy.NewFree(19, 12, storage)
//	if err != nil {
//		panic(err)
//	}
//
//	addr := tree.AllocOrder(0)
//	if addr.IsSome() {
//		p := addr.Unwrap()
//		// ... use p as an offset into the caller's region ...
//		tree.DeallocOrder(p, 0)
//	}
//
// # Contract violations vs. out-of-space
//
// Running out of space is a normal, recoverable outcome and is reported via
// [opt.Option]: [Tree.AllocOrder] and [Tree.AllocLayout] return
// opt.None when the tree cannot satisfy a request, and the tree is left
// unchanged. Everything else -- an out-of-range order, deallocating a block
// that is not currently used, an index outside the array -- is a programming
// error and panics via an internal assertion; it is never recoverable and
// must never be used for control flow.
package buddy
