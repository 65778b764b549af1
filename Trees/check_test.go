package Trees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build links records by hand so Check can be shown broken trees.
func build(tree *AATree[intNode, *intNode], v, level int, l, r *intNode) *intNode {
	x := key(v)
	x.level = level
	x.l, x.r = tree.nilPtr, tree.nilPtr
	if l != nil {
		x.l = l
	}
	if r != nil {
		x.r = r
	}
	return x
}

func TestCheck_Accepts(t *testing.T) {
	tree, _ := newIntTree(t)
	assert.True(t, tree.Valid())

	// 2 at level 2 with a horizontal right link to 4
	a := build(tree, 1, 1, nil, nil)
	c := build(tree, 3, 1, nil, nil)
	e := build(tree, 5, 1, nil, nil)
	d := build(tree, 4, 2, c, e)
	tree.root, tree.size = build(tree, 2, 2, a, d), 5
	require.NoError(t, tree.Check())
}

func TestCheck_Rejects(t *testing.T) {
	cases := map[string]func(tree *AATree[intNode, *intNode]) (*intNode, int){
		"leaf above level 1": func(tree *AATree[intNode, *intNode]) (*intNode, int) {
			return build(tree, 1, 2, nil, nil), 1
		},
		"left horizontal": func(tree *AATree[intNode, *intNode]) (*intNode, int) {
			return build(tree, 2, 1, build(tree, 1, 1, nil, nil), nil), 2
		},
		"double right horizontal": func(tree *AATree[intNode, *intNode]) (*intNode, int) {
			return build(tree, 1, 1, nil, build(tree, 2, 1, nil, build(tree, 3, 1, nil, nil))), 3
		},
		"missing child above level 1": func(tree *AATree[intNode, *intNode]) (*intNode, int) {
			return build(tree, 2, 2, build(tree, 1, 1, nil, nil), nil), 2
		},
		"right child too low": func(tree *AATree[intNode, *intNode]) (*intNode, int) {
			l := build(tree, 2, 2, build(tree, 1, 1, nil, nil), build(tree, 3, 1, nil, nil))
			return build(tree, 4, 3, l, build(tree, 5, 1, nil, nil)), 5
		},
		"out of order": func(tree *AATree[intNode, *intNode]) (*intNode, int) {
			return build(tree, 2, 2, build(tree, 3, 1, nil, nil), build(tree, 1, 1, nil, nil)), 3
		},
		"wrong size": func(tree *AATree[intNode, *intNode]) (*intNode, int) {
			return build(tree, 2, 2, build(tree, 1, 1, nil, nil), build(tree, 3, 1, nil, nil)), 7
		},
	}
	for name, mk := range cases {
		t.Run(name, func(t *testing.T) {
			tree, _ := newIntTree(t)
			tree.root, tree.size = mk(tree)
			err := tree.Check()
			require.ErrorIs(t, err, ErrInvalid)
			assert.False(t, tree.Valid())
		})
	}
}

func TestCheck_Sentinel(t *testing.T) {
	tree, _ := newIntTree(t)
	tree.Insert(key(1))
	tree.nilPtr.level = 1
	require.ErrorIs(t, tree.Check(), ErrInvalid)
}
