// Package Trees implements an intrusive AA tree. The tree never allocates the
// records it stores: every record is supplied by the caller, embeds a Node as its
// link block, and is handed back to the caller's free function when it leaves the
// tree. Structural operations are iterative and record their root-to-node path on a
// fixed-capacity stack bounded by MaxHeight instead of recursing.
//
// Nothing in this package is safe for concurrent use. Callers that share a tree
// between goroutines must serialise every operation, iterator steps included.
//
// Programmer errors (inserting an attached record, running past MaxHeight, stepping
// an exhausted iterator) are not returned as errors. They are reported through the
// handler installed with SetFailHandler, which panics by default.
package Trees

// Linker is satisfied by *E for every record type E that embeds Node[E]. It is
// only used as a constraint; the tree reaches the link block of a record through it.
type Linker[E any] interface {
	*E
	aaNode() *Node[E]
}

// Tree is an ordered set of distinct elements. AATree implements Tree[*E] over its
// records; elements are compared through the tree's ordering, never by identity.
// Methods don't allocate unless an implementation says otherwise.
type Tree[T any] interface {
	//Insert v to the Tree. Returns false, leaving the tree unchanged, if an element
	//equal to v is already present.
	Insert(v T) bool
	//Remove the element equal to v. Returns false if there is none.
	Remove(v T) bool
	//Has an element equal to v.
	Has(v T) bool
	//Len is the number of elements.
	Len() int
	//Ascend calls f on the elements in ascending order until f returns false.
	//The tree must not be modified during the walk.
	Ascend(f func(v T) bool)
}
