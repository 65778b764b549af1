package Trees

import (
	"math/rand"
	"testing"
)

var rg = *rand.New(rand.NewSource(0))

type intNode struct {
	Node[intNode]
	v int
}

func lessInt(a, b *intNode) bool {
	return a.v < b.v
}

func copyInt(from, to *intNode) {
	to.v = from.v
}

// counters records the callbacks a tree made.
type counters struct {
	copies int
	freed  map[*intNode]int
}

func newIntTree(t testing.TB) (*AATree[intNode, *intNode], *counters) {
	t.Helper()
	c := &counters{freed: make(map[*intNode]int)}
	tree := New(lessInt,
		func(from, to *intNode) {
			c.copies++
			copyInt(from, to)
		},
		func(x *intNode) {
			c.freed[x]++
		})
	return tree, c
}

func key(v int) *intNode {
	return &intNode{v: v}
}

// catch runs f and returns the error it panicked with, if any.
func catch(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	f()
	return nil
}

func inOrder(tree *AATree[intNode, *intNode]) []int {
	var s []int
	tree.Ascend(func(x *intNode) bool {
		s = append(s, x.v)
		return true
	})
	return s
}

func (u *AATree[E, P]) _depth(x *E, d int, leaves, sum *int) {
	n := u.nd(x)
	if n.l == u.nilPtr && n.r == u.nilPtr {
		*leaves++
		*sum += d
		return
	}
	if n.l != u.nilPtr {
		u._depth(n.l, d+1, leaves, sum)
	}
	if n.r != u.nilPtr {
		u._depth(n.r, d+1, leaves, sum)
	}
}

// averageDepth of the leaves, for logging.
func (u *AATree[E, P]) averageDepth() float32 {
	if u.root == u.nilPtr {
		return 0
	}
	var leaves, sum int
	u._depth(u.root, 1, &leaves, &sum)
	return float32(sum) / float32(leaves)
}
