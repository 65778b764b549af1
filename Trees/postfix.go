package Trees

import "fmt"

const (
	leftDone uint8 = 1 << iota
	rightDone
	bothDone = leftDone | rightDone
)

// frame is a record on the postfix stack together with which of its subtrees have
// been fully returned.
type frame[E any] struct {
	x     *E
	flags uint8
}

// PostfixIter returns every record after both of its subtrees. Once Next has
// returned a record the iterator never reads it again, so the caller may free it
// right away; this is how Clear tears a tree down.
// PostfixIter is a value: copying it gives an independent cursor.
type PostfixIter[E any, P Linker[E]] struct {
	st     pathStack[frame[E]]
	nilPtr *E
}

// Postfix returns a postfix iterator positioned at the first record in postfix order.
// Time: O(D)
func (u *AATree[E, P]) Postfix() PostfixIter[E, P] {
	it := PostfixIter[E, P]{nilPtr: u.nilPtr}
	if u.root != u.nilPtr {
		it.descend(u.root)
	}
	return it
}

// push x with the flags of its missing children already set.
func (u *PostfixIter[E, P]) push(x *E) {
	n := P(x).aaNode()
	var f uint8
	if n.l == u.nilPtr {
		f |= leftDone
	}
	if n.r == u.nilPtr {
		f |= rightDone
	}
	u.st.push(frame[E]{x, f})
}

// descend from x preferring left children, falling back to right ones, until a
// record without children is on top.
func (u *PostfixIter[E, P]) descend(x *E) {
	for {
		u.push(x)
		n := P(x).aaNode()
		if n.l != u.nilPtr {
			x = n.l
		} else if n.r != u.nilPtr {
			x = n.r
		} else {
			return
		}
	}
}

// HasNext reports whether Next can return another record.
func (u *PostfixIter[E, P]) HasNext() bool {
	return !u.st.empty()
}

// Next returns the next record in postfix order. Calling Next when HasNext is
// false is a contract violation.
// Time: amortized O(1), O(D) worst case.
func (u *PostfixIter[E, P]) Next() *E {
	if u.st.empty() {
		fail(fmt.Errorf("%w: postfix Next", ErrExhausted))
	}
	f := u.st.pop()
	if f.flags != bothDone {
		fail(fmt.Errorf("%w: flags %02b", ErrPostfixOrder, f.flags))
	}
	cur := f.x
	if u.st.empty() {
		return cur
	}
	p := u.st.pop()
	pn := P(p.x).aaNode()
	if pn.l == cur {
		p.flags |= leftDone
	} else {
		p.flags |= rightDone
	}
	u.st.push(p)
	if p.flags&rightDone == 0 {
		u.descend(pn.r)
	}
	return cur
}
