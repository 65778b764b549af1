package Trees

import "fmt"

// AATree is a balanced binary search tree over caller-owned records of type E. The
// balance is kept with AA-tree levels: every record has a level, left children sit
// exactly one level below their parent, right children at most one level below, and
// no two consecutive right links stay on the same level.
//
// The tree holds a sentinel record used in place of every missing child. Its links
// point to itself and its level is 0, so the rebalancing code never branches on nil.
// The sentinel is never returned to callers and never passed to the free function.
//
// AATree shouldn't be created directly using struct literal; use New.
type AATree[E any, P Linker[E]] struct {
	root   *E
	nilPtr *E // the sentinel, owned by this tree
	size   int
	less   func(a, b *E) bool
	cp     func(from, to *E)
	free   func(x *E)
}

// New returns an empty tree ordered by less.
//
// less must be a strict weak ordering that stays consistent for the lifetime of the
// tree. cp copies the payload of one record into another and is called once per
// removal of a record with two children; when nil, the record is copied by
// assignment with the destination's links preserved. free receives every record
// that leaves the tree; when nil, records are simply dropped.
func New[E any, P Linker[E]](less func(a, b *E) bool, cp func(from, to *E), free func(x *E)) *AATree[E, P] {
	if less == nil {
		fail(ErrNilLess)
	}
	z := new(E)
	zn := P(z).aaNode()
	zn.l, zn.r = z, z
	return &AATree[E, P]{root: z, nilPtr: z, less: less, cp: cp, free: free}
}

func (u *AATree[E, P]) nd(x *E) *Node[E] {
	return P(x).aaNode()
}

// Len returns the number of records in the tree.
// Time: O(1)
func (u *AATree[E, P]) Len() int {
	return u.size
}

// IsEmpty reports whether the tree holds no records.
func (u *AATree[E, P]) IsEmpty() bool {
	return u.root == u.nilPtr
}

func (u *AATree[E, P]) isFree(n *Node[E]) bool {
	return n.l == nil && n.r == nil && n.level == 0 ||
		n.l == u.nilPtr && n.r == u.nilPtr && n.level == 1
}

// Insert x into the tree. It returns false, leaving x untouched and still owned by
// the caller, if a record comparing equal to x is already present. On success the
// tree owns x until it is handed to the free function.
// x must be free: a zero Node, or one that was Reset.
// Time: O(D); Space: O(1)
func (u *AATree[E, P]) Insert(x *E) bool {
	n := u.nd(x)
	if !u.isFree(n) {
		fail(fmt.Errorf("%w: insert of a record at level %d", ErrNotFree, n.level))
	}
	var st pathStack[**E]
	link := &u.root
	for *link != u.nilPtr {
		st.push(link)
		if cur := *link; u.less(x, cur) {
			link = &u.nd(cur).l
		} else if u.less(cur, x) {
			link = &u.nd(cur).r
		} else {
			return false
		}
	}
	n.l, n.r, n.level = u.nilPtr, u.nilPtr, 1
	*link = x
	u.size++
	for !st.empty() {
		link = st.pop()
		*link = u.split(u.skew(*link))
	}
	return true
}

// Find returns the stored record comparing equal to key, or nil. key only needs to
// carry what less looks at; it is never linked into the tree.
// Time: O(D); Space: O(1)
func (u *AATree[E, P]) Find(key *E) *E {
	for cur := u.root; cur != u.nilPtr; {
		if u.less(key, cur) {
			cur = u.nd(cur).l
		} else if u.less(cur, key) {
			cur = u.nd(cur).r
		} else {
			return cur
		}
	}
	return nil
}

// Has reports whether a record comparing equal to key is stored.
// Time: O(D); Space: O(1)
func (u *AATree[E, P]) Has(key *E) bool {
	return u.Find(key) != nil
}

// Remove the record comparing equal to key and hand it to the free function.
// When that record has two children its right subtree's leftmost record, the
// victim, is copied into it and the victim is freed instead. Returns false if no
// record matches.
// Time: O(D); Space: O(1)
func (u *AATree[E, P]) Remove(key *E) bool {
	var st pathStack[**E]
	link := &u.root
	for *link != u.nilPtr {
		st.push(link)
		if cur := *link; u.less(key, cur) {
			link = &u.nd(cur).l
		} else if u.less(cur, key) {
			link = &u.nd(cur).r
		} else {
			break
		}
	}
	if *link == u.nilPtr {
		return false
	}

	t := *link
	tn := u.nd(t)
	switch {
	case tn.l == u.nilPtr:
		*link = tn.r
		u.release(t)
	case tn.r == u.nilPtr:
		*link = tn.l
		u.release(t)
	default:
		link = &tn.r
		st.push(link)
		for u.nd(*link).l != u.nilPtr {
			link = &u.nd(*link).l
			st.push(link)
		}
		victim := *link
		u.copyInto(victim, t)
		*link = u.nd(victim).r
		u.release(victim)
	}

	for !st.empty() {
		link = st.pop()
		*link = u.rebalance(*link)
	}
	return true
}

// release detaches x and hands it back to the caller.
func (u *AATree[E, P]) release(x *E) {
	*u.nd(x) = Node[E]{}
	u.size--
	if u.free != nil {
		u.free(x)
	}
}

func (u *AATree[E, P]) copyInto(from, to *E) {
	if u.cp != nil {
		u.cp(from, to)
		return
	}
	links := *u.nd(to)
	*to = *from
	*u.nd(to) = links
}

// skew removes a left horizontal link with a right rotation.
//
//	    |               |
//	    v               v
//	l <-- t     ==>     l --> t
//	/ \    \           /     / \
//	A   B    R         A     B   R
//
// Time: O(1)
func (u *AATree[E, P]) skew(t *E) *E {
	tn := u.nd(t)
	l := tn.l
	if l == u.nilPtr {
		return t
	}
	ln := u.nd(l)
	if ln.level != tn.level {
		return t
	}
	tn.l = ln.r
	ln.r = t
	return l
}

// split removes two consecutive right horizontal links with a left rotation,
// pulling the middle record up one level.
//
//	  |                         |
//	  v                         v
//	  t --> r --> x    ==>      r
//	 /     /                  /   \
//	A     B                  t     x
//	                        / \
//	                       A   B
//
// Time: O(1)
func (u *AATree[E, P]) split(t *E) *E {
	tn := u.nd(t)
	r := tn.r
	if r == u.nilPtr {
		return t
	}
	rn := u.nd(r)
	if x := rn.r; x == u.nilPtr || u.nd(x).level != tn.level {
		return t
	}
	tn.r = rn.l
	rn.l = t
	rn.level++
	return r
}

// adjustLevel lowers t by one level when one of its children sits two levels below
// it, taking a horizontal right child down with it.
func (u *AATree[E, P]) adjustLevel(t *E) {
	tn := u.nd(t)
	ll, rl := u.nd(tn.l).level, u.nd(tn.r).level
	if ll >= tn.level-1 && rl >= tn.level-1 {
		return
	}
	if tn.r != u.nilPtr && rl == tn.level {
		u.nd(tn.r).level--
	}
	tn.level--
}

// rebalance restores the level invariants of the subtree rooted at t after a
// removal below it and returns the new subtree root.
// Time: O(1)
func (u *AATree[E, P]) rebalance(t *E) *E {
	if t == u.nilPtr {
		return t
	}
	u.adjustLevel(t)
	t = u.skew(t)
	tn := u.nd(t)
	if tn.r != u.nilPtr {
		tn.r = u.skew(tn.r)
		if rn := u.nd(tn.r); rn.r != u.nilPtr {
			rn.r = u.skew(rn.r)
		}
	}
	t = u.split(t)
	if tn = u.nd(t); tn.r != u.nilPtr {
		tn.r = u.split(tn.r)
	}
	return t
}

// Minimum returns the least record, or nil if the tree is empty.
// Time: O(D); Space: O(1)
func (u *AATree[E, P]) Minimum() *E {
	if u.root == u.nilPtr {
		return nil
	}
	cur := u.root
	for l := u.nd(cur).l; l != u.nilPtr; l = u.nd(cur).l {
		cur = l
	}
	return cur
}

// Maximum returns the greatest record, or nil if the tree is empty.
// Time: O(D); Space: O(1)
func (u *AATree[E, P]) Maximum() *E {
	if u.root == u.nilPtr {
		return nil
	}
	cur := u.root
	for r := u.nd(cur).r; r != u.nilPtr; r = u.nd(cur).r {
		cur = r
	}
	return cur
}

// Ascend calls f on every record in ascending order until f returns false.
// The tree must not be modified during the walk.
func (u *AATree[E, P]) Ascend(f func(x *E) bool) {
	for it := u.Iter(); it.HasNext(); {
		if !f(it.Next()) {
			return
		}
	}
}

// Clear hands every record to the free function in postfix order and leaves the
// tree empty. Each record is freed only after both of its subtrees.
// Time: O(n)
func (u *AATree[E, P]) Clear() {
	it := u.Postfix()
	u.root, u.size = u.nilPtr, 0
	for it.HasNext() {
		x := it.Next()
		*u.nd(x) = Node[E]{}
		if u.free != nil {
			u.free(x)
		}
	}
}
