package buddy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flier/buddy/pkg/buddy"
)

func TestBlocksInTree(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(1), buddy.BlocksInTree(1))
	assert.Equal(t, uint64(3), buddy.BlocksInTree(2))
	assert.Equal(t, uint64(7), buddy.BlocksInTree(3))
	assert.Equal(t, uint64(1<<19-1), buddy.BlocksInTree(19))
}

func TestBlocksInLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(1), buddy.BlocksInLevel(0))
	assert.Equal(t, uint64(2), buddy.BlocksInLevel(1))
	assert.Equal(t, uint64(4), buddy.BlocksInLevel(2))
}

func TestLeftChild(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(2), buddy.LeftChild(1))
	assert.Equal(t, uint64(4), buddy.LeftChild(2))
	assert.Equal(t, uint64(6), buddy.LeftChild(3))
}

func TestParent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(1), buddy.Parent(2))
	assert.Equal(t, uint64(1), buddy.Parent(3))
	assert.Equal(t, uint64(2), buddy.Parent(4))
}

func TestTotalBlocks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1<<19-1, buddy.TotalBlocks(19))
}
