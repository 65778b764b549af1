package Trees

import (
	"testing"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOracle_RedBlack replays a random workload against a gods red-black tree and
// compares every answer.
func TestOracle_RedBlack(t *testing.T) {
	tree, _ := newIntTree(t)
	rb := redblacktree.NewWithIntComparator()
	for i := range 20000 {
		v := rg.Intn(3000)
		_, found := rb.Get(v)
		switch rg.Intn(3) {
		case 0:
			require.Equal(t, found, tree.Remove(key(v)), "step %d remove %d", i, v)
			rb.Remove(v)
		case 1:
			require.Equal(t, found, tree.Has(key(v)), "step %d contains %d", i, v)
		default:
			require.Equal(t, !found, tree.Insert(key(v)), "step %d insert %d", i, v)
			rb.Put(v, struct{}{})
		}
		require.Equal(t, rb.Size(), tree.Len())
	}
	require.NoError(t, tree.Check())

	keys := rb.Keys()
	got := inOrder(tree)
	require.Len(t, got, len(keys))
	for i, k := range keys {
		if got[i] != k.(int) {
			t.Fatalf("position %d: got %d, want %d", i, got[i], k)
		}
	}
	if rb.Size() > 0 {
		assert.Equal(t, rb.Left().Key, tree.Minimum().v)
		assert.Equal(t, rb.Right().Key, tree.Maximum().v)
	}
}

func TestOracle_BTree(t *testing.T) {
	tree, _ := newIntTree(t)
	bt := btree.NewG[int](8, func(a, b int) bool { return a < b })
	for _, v := range rg.Perm(10000) {
		tree.Insert(key(v))
		bt.ReplaceOrInsert(v)
	}
	for _, v := range rg.Perm(10000)[:6000] {
		_, ok := bt.Delete(v)
		require.Equal(t, ok, tree.Remove(key(v)))
	}
	require.NoError(t, tree.Check())

	it := tree.Iter()
	bt.Ascend(func(v int) bool {
		if !it.HasNext() {
			t.Errorf("tree ran out before %d", v)
			return false
		}
		if got := it.Next().v; got != v {
			t.Errorf("got %d, want %d", got, v)
			return false
		}
		return true
	})
	assert.False(t, it.HasNext())
}

func TestOracle_LLRB(t *testing.T) {
	tree, _ := newIntTree(t)
	lr := llrb.New()
	for range 20000 {
		v := rg.Intn(5000)
		if rg.Intn(4) == 0 {
			require.Equal(t, lr.Delete(llrb.Int(v)) != nil, tree.Remove(key(v)))
		} else {
			require.Equal(t, !lr.Has(llrb.Int(v)), tree.Insert(key(v)))
			lr.ReplaceOrInsert(llrb.Int(v))
		}
	}
	require.NoError(t, tree.Check())
	require.Equal(t, lr.Len(), tree.Len())
	if lr.Len() == 0 {
		return
	}
	assert.Equal(t, int(lr.Min().(llrb.Int)), tree.Minimum().v)
	assert.Equal(t, int(lr.Max().(llrb.Int)), tree.Maximum().v)
	var want []int
	lr.AscendGreaterOrEqual(lr.Min(), func(i llrb.Item) bool {
		want = append(want, int(i.(llrb.Int)))
		return true
	})
	assert.Equal(t, want, inOrder(tree))
}
