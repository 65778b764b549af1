package Trees

import "fmt"

// MaxHeight is the assumed upper bound on the height of an AATree. A tree whose root
// is at level k has height at most 2k and holds at least 2^k-1 records, so 64 slots
// cover every tree with fewer than 2^32 records.
const MaxHeight = 64

// pathStack is a fixed-capacity stack recording a path from the root. Insert and
// Remove store link slots (**E) in it, the iterators store records or frames.
// The zero value is empty, and copying a pathStack copies the recorded path.
type pathStack[T any] struct {
	a [MaxHeight]T
	n int
}

func (u *pathStack[T]) empty() bool {
	return u.n == 0
}

func (u *pathStack[T]) len() int {
	return u.n
}

func (u *pathStack[T]) push(v T) {
	if u.n == len(u.a) {
		fail(fmt.Errorf("%w: %d slots", ErrPathOverflow, MaxHeight))
	}
	u.a[u.n] = v
	u.n++
}

func (u *pathStack[T]) top() T {
	if u.n == 0 {
		fail(ErrPathEmpty)
	}
	return u.a[u.n-1]
}

func (u *pathStack[T]) pop() T {
	if u.n == 0 {
		fail(ErrPathEmpty)
	}
	u.n--
	v := u.a[u.n]
	u.a[u.n] = *new(T) // don't keep popped records reachable
	return v
}
