package Trees

import "golang.org/x/exp/constraints"

// Item is a ready-made record ordered by Key and carrying a Value payload.
type Item[K constraints.Ordered, V any] struct {
	Node[Item[K, V]]
	Key   K
	Value V
}

// NewOrdered returns an empty tree of Items ordered by Key. free may be nil.
func NewOrdered[K constraints.Ordered, V any](free func(x *Item[K, V])) *AATree[Item[K, V], *Item[K, V]] {
	return New[Item[K, V], *Item[K, V]](
		func(a, b *Item[K, V]) bool { return a.Key < b.Key },
		func(from, to *Item[K, V]) { to.Key, to.Value = from.Key, from.Value },
		free,
	)
}
