package Trees

import "fmt"

// Iter walks a tree in ascending order. The stack holds the path from the root to
// the next record; every record on it is either still to be returned (the path
// went left from it) or already returned (the path went right from it), and the
// top is always the next record.
// Iter is a value: copying it gives an independent cursor at the same position.
// The tree must not be modified while an Iter over it is in use.
type Iter[E any, P Linker[E]] struct {
	st     pathStack[*E]
	nilPtr *E
}

// Iter returns an in-order iterator positioned at the least record.
// Time: O(D)
func (u *AATree[E, P]) Iter() Iter[E, P] {
	it := Iter[E, P]{nilPtr: u.nilPtr}
	it.pushLeft(u.root)
	return it
}

func (u *Iter[E, P]) pushLeft(x *E) {
	for ; x != u.nilPtr; x = P(x).aaNode().l {
		u.st.push(x)
	}
}

// HasNext reports whether Next can return another record.
func (u *Iter[E, P]) HasNext() bool {
	return !u.st.empty()
}

// Next returns the current record and advances. Calling Next when HasNext is
// false is a contract violation.
// Time: amortized O(1), O(D) worst case.
func (u *Iter[E, P]) Next() *E {
	if u.st.empty() {
		fail(fmt.Errorf("%w: in-order Next", ErrExhausted))
	}
	cur := u.st.top()
	if r := P(cur).aaNode().r; r != u.nilPtr {
		u.pushLeft(r)
		return cur
	}
	child := u.st.pop()
	for !u.st.empty() {
		if P(u.st.top()).aaNode().l == child {
			break // reached through a left link: not returned yet
		}
		child = u.st.pop()
	}
	return cur
}
