package Trees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathStack_LIFO(t *testing.T) {
	var st pathStack[int]
	assert.True(t, st.empty())
	for i := range 10 {
		st.push(i)
	}
	assert.Equal(t, 10, st.len())
	assert.Equal(t, 9, st.top())
	for i := 9; i >= 0; i-- {
		assert.Equal(t, i, st.pop())
	}
	assert.True(t, st.empty())
}

func TestPathStack_Bounds(t *testing.T) {
	var st pathStack[*intNode]
	require.ErrorIs(t, catch(func() { st.pop() }), ErrPathEmpty)
	require.ErrorIs(t, catch(func() { st.top() }), ErrPathEmpty)
	for range MaxHeight {
		st.push(nil)
	}
	require.ErrorIs(t, catch(func() { st.push(nil) }), ErrPathOverflow)
	assert.Equal(t, MaxHeight, st.len())
}

func TestPathStack_ValueSemantics(t *testing.T) {
	var st pathStack[int]
	st.push(1)
	st.push(2)
	cp := st
	st.pop()
	st.push(3)
	assert.Equal(t, 2, cp.pop())
	assert.Equal(t, 1, cp.pop())
	assert.Equal(t, 3, st.top())
}

func TestPathStack_PopClearsSlot(t *testing.T) {
	var st pathStack[*intNode]
	st.push(key(1))
	st.pop()
	assert.Nil(t, st.a[0])
}

func TestSetFailHandler(t *testing.T) {
	var got []error
	prev := SetFailHandler(func(err error) { got = append(got, err) })
	defer SetFailHandler(prev)

	var st pathStack[int]
	err := catch(func() { st.pop() })
	require.ErrorIs(t, err, ErrPathEmpty, "a returning handler is still followed by a panic")
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], ErrPathEmpty)

	SetFailHandler(nil)
	require.ErrorIs(t, catch(func() { st.top() }), ErrPathEmpty)
	assert.Len(t, got, 1, "nil restores the default handler")
}
