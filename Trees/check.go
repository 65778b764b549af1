package Trees

import "fmt"

// Check verifies the AA-tree invariants of the whole tree and returns an error
// wrapping ErrInvalid describing the first violation found. It is a diagnostic: it
// recurses, costs O(n), and is meant for tests and assertions only.
func (u *AATree[E, P]) Check() error {
	if zn := u.nd(u.nilPtr); zn.level != 0 || zn.l != u.nilPtr || zn.r != u.nilPtr {
		return fmt.Errorf("%w: sentinel was modified (level %d)", ErrInvalid, zn.level)
	}
	if u.root == u.nilPtr {
		if u.size != 0 {
			return fmt.Errorf("%w: empty tree with Len %d", ErrInvalid, u.size)
		}
		return nil
	}
	n, err := u.check(u.root, u.nd(u.root).level)
	if err != nil {
		return err
	}
	if n != u.size {
		return fmt.Errorf("%w: counted %d records, Len is %d", ErrInvalid, n, u.size)
	}
	var prev *E
	for it := u.Iter(); it.HasNext(); {
		x := it.Next()
		if prev != nil && !u.less(prev, x) {
			return fmt.Errorf("%w: in-order sequence is not strictly ascending", ErrInvalid)
		}
		prev = x
	}
	return nil
}

// Valid reports whether Check finds no violation.
func (u *AATree[E, P]) Valid() bool {
	return u.Check() == nil
}

// check the subtree at x, which must sit at level want, and count its records.
func (u *AATree[E, P]) check(x *E, want int) (int, error) {
	n := u.nd(x)
	if n.level != want {
		return 0, fmt.Errorf("%w: record at level %d, want %d", ErrInvalid, n.level, want)
	}
	if n.l == u.nilPtr && n.r == u.nilPtr {
		if n.level != 1 {
			return 0, fmt.Errorf("%w: leaf at level %d", ErrInvalid, n.level)
		}
		return 1, nil
	}
	if want > 1 && (n.l == u.nilPtr || n.r == u.nilPtr) {
		return 0, fmt.Errorf("%w: record at level %d is missing a child", ErrInvalid, want)
	}

	cnt := 1
	if n.l != u.nilPtr {
		c, err := u.check(n.l, want-1)
		if err != nil {
			return 0, err
		}
		cnt += c
	}
	if n.r == u.nilPtr {
		return cnt, nil
	}
	rn := u.nd(n.r)
	switch rn.level {
	case want - 1:
		c, err := u.check(n.r, want-1)
		if err != nil {
			return 0, err
		}
		cnt += c
	case want:
		if rr := rn.r; rr != u.nilPtr && u.nd(rr).level != want-1 {
			return 0, fmt.Errorf("%w: two horizontal right links at level %d", ErrInvalid, want)
		}
		c, err := u.check(n.r, want)
		if err != nil {
			return 0, err
		}
		cnt += c
	default:
		return 0, fmt.Errorf("%w: right child at level %d under level %d", ErrInvalid, rn.level, want)
	}
	return cnt, nil
}
