package Trees

const (
	freedLevel      = -1
	defaultSlabSize = 256
)

// Arena hands out records of E carved from fixed-size slabs and takes them back
// through Free, so a tree's records can be allocated in bulk and recycled. Freed
// records are chained through their left link and parked at level -1; Alloc reuses
// them before carving new ones. Arena.Free has the shape of the tree's free
// function and can be passed to New directly.
// Records must not be used after Free. Like the tree, Arena is not synchronised.
type Arena[E any, P Linker[E]] struct {
	slabs    [][]E
	slabSize int
	next     int // first uncarved record of the last slab
	free     *E  // head of the free list; Node.l is the next pointer
	used     int
}

// NewArena returns an arena carving slabs of slabSize records. slabSize<1 selects
// a default.
func NewArena[E any, P Linker[E]](slabSize int) *Arena[E, P] {
	if slabSize < 1 {
		slabSize = defaultSlabSize
	}
	return &Arena[E, P]{slabSize: slabSize}
}

// Alloc returns a zeroed record, whose Node is therefore free.
// Time: O(1), plus a slab allocation every slabSize carves.
func (u *Arena[E, P]) Alloc() *E {
	u.used++
	if x := u.free; x != nil {
		u.free = P(x).aaNode().l
		*x = *new(E)
		return x
	}
	if len(u.slabs) == 0 || u.next == u.slabSize {
		u.slabs = append(u.slabs, make([]E, u.slabSize))
		u.next = 0
	}
	x := &u.slabs[len(u.slabs)-1][u.next]
	u.next++
	return x
}

// Free zeroes x and puts it on the free list. Freeing a record twice is a
// contract violation.
// Time: O(1)
func (u *Arena[E, P]) Free(x *E) {
	if P(x).aaNode().level == freedLevel {
		fail(ErrDoubleFree)
	}
	*x = *new(E)
	n := P(x).aaNode()
	n.l, n.level = u.free, freedLevel
	u.free = x
	u.used--
}

// Used returns the number of records handed out and not yet freed.
func (u *Arena[E, P]) Used() int {
	return u.used
}

// Size returns the number of records carved from the slabs so far.
func (u *Arena[E, P]) Size() int {
	if len(u.slabs) == 0 {
		return 0
	}
	return (len(u.slabs)-1)*u.slabSize + u.next
}
