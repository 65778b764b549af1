package Trees

// Node is the link block of a record stored in an AATree. Embed it by value in the
// record type:
//
//	type entry struct {
//		Trees.Node[entry]
//		key int
//	}
//
// The zero value is a free node. While the record is attached to a tree the tree
// owns these fields and may rewrite them on any mutation.
type Node[E any] struct {
	l, r  *E
	level int // 0 when free, 1 for leaves, -1 while parked in an Arena
}

func (u *Node[E]) aaNode() *Node[E] {
	return u
}

// Level of the record in the tree it is attached to. Free records report 0.
func (u *Node[E]) Level() int {
	return u.level
}

// Reset returns the link block to the free state. It must only be used on records
// that no tree refers to, e.g. to recycle memory handed back by the free function.
func (u *Node[E]) Reset() {
	*u = Node[E]{}
}
