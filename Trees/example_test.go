package Trees_test

import (
	"fmt"

	"github.com/g-m-twostay/intrusive/Trees"
)

type event struct {
	Trees.Node[event]
	at   int
	name string
}

func Example() {
	arena := Trees.NewArena[event](16)
	tree := Trees.New(
		func(a, b *event) bool { return a.at < b.at },
		func(from, to *event) { to.at, to.name = from.at, from.name },
		arena.Free,
	)
	for i, name := range []string{"boot", "mount", "login", "shell"} {
		e := arena.Alloc()
		e.at, e.name = 10*(4-i), name
		tree.Insert(e)
	}
	tree.Remove(&event{at: 20})

	for it := tree.Iter(); it.HasNext(); {
		e := it.Next()
		fmt.Println(e.at, e.name)
	}
	tree.Clear()
	fmt.Println(arena.Used())
	// Output:
	// 10 shell
	// 30 mount
	// 40 boot
	// 0
}

func ExampleNewOrdered() {
	tree := Trees.NewOrdered[string, int](nil)
	for i, k := range []string{"b", "c", "a"} {
		tree.Insert(&Trees.Item[string, int]{Key: k, Value: i})
	}
	fmt.Println(tree.Find(&Trees.Item[string, int]{Key: "c"}).Value, tree.Minimum().Key, tree.Len())
	// Output: 1 a 3
}
