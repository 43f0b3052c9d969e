package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireChain fails the test if any chain invariant is broken.
func requireChain[T comparable](t *testing.T, l *LinkedList[T]) {
	t.Helper()
	require.NoError(t, l.check())
}

func TestLinkedList_PushBackPopBothEnds(t *testing.T) {
	l := NewLinkedList[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	requireChain(t, l)
	assert.Equal(t, "[1,2,3]", l.String())

	v, ok := l.PopFront()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, "[2,3]", l.String())
	requireChain(t, l)

	v, ok = l.PopLast()
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, "[2]", l.String())
	requireChain(t, l)
}

func TestLinkedList_ZeroValue(t *testing.T) {
	var l LinkedList[string]
	requireChain(t, &l)
	assert.Equal(t, "[]", l.String())

	l.PushFront("b")
	l.PushFront("a")
	requireChain(t, &l)
	assert.Equal(t, []string{"a", "b"}, l.Values())
}

func TestLinkedList_SingleNode(t *testing.T) {
	l := NewLinkedList[int]()
	l.PushFront(7)
	requireChain(t, l)

	assert.Equal(t, l.head, l.tail)
	assert.Equal(t, nilIndex, l.nodes[l.head].prev)
	assert.Equal(t, nilIndex, l.nodes[l.head].next)

	v, ok := l.PopLast()
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, nilIndex, l.head)
	assert.Equal(t, nilIndex, l.tail)
	requireChain(t, l)
}

func TestLinkedList_EmptyBoundaryReturnsNoValue(t *testing.T) {
	l := NewLinkedList[int]()

	checks := map[string]func() (int, bool){
		"PeekFirst":  l.PeekFirst,
		"PeekLast":   l.PeekLast,
		"PopFront":   l.PopFront,
		"PopLast":    l.PopLast,
		"Peek":       l.Peek,
		"Dequeue":    l.Dequeue,
		"Pop":        l.Pop,
		"RemoveLast": l.RemoveLast,
		"GetLast":    l.GetLast,
	}
	for name, fn := range checks {
		t.Run(name, func(t *testing.T) {
			v, ok := fn()
			assert.False(t, ok)
			assert.Zero(t, v)
			requireChain(t, l)
		})
	}
}

func TestLinkedList_InsertAtSplicesMiddle(t *testing.T) {
	l := NewLinkedList[int]()
	for _, v := range []int{1, 2, 4, 5} {
		l.Append(v)
	}

	require.NoError(t, l.InsertAt(2, 3))
	requireChain(t, l)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, l.Values())

	require.NoError(t, l.InsertAt(0, 0))
	require.NoError(t, l.InsertAt(l.Len(), 6))
	requireChain(t, l)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, l.Values())
}

func TestLinkedList_InsertAtEmpty(t *testing.T) {
	l := NewLinkedList[int]()
	require.NoError(t, l.InsertAt(0, 1))
	requireChain(t, l)
	assert.Equal(t, "[1]", l.String())
}

func TestLinkedList_RemoveAtMiddleClearsLinks(t *testing.T) {
	l := NewLinkedList[int]()
	for _, v := range []int{1, 2, 3, 4} {
		l.Append(v)
	}
	target := l.nodeAt(2)

	v, err := l.RemoveAt(2)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	requireChain(t, l)
	assert.Equal(t, []int{1, 2, 4}, l.Values())

	assert.Equal(t, node[int]{}, l.nodes[target], "detached node must be cleared")
	assert.Contains(t, l.free, target)
}

func TestLinkedList_RemoveAtEnds(t *testing.T) {
	l := NewLinkedList[string]()
	for _, v := range []string{"a", "b", "c"} {
		l.Append(v)
	}

	v, err := l.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	requireChain(t, l)

	v, err = l.RemoveAt(l.Len() - 1)
	require.NoError(t, err)
	assert.Equal(t, "c", v)
	requireChain(t, l)
	assert.Equal(t, "[b]", l.String())
}

func TestLinkedList_ReusesReleasedSlots(t *testing.T) {
	l := NewLinkedList[int]()
	for i := 0; i < 4; i++ {
		l.PushBack(i)
	}
	slots := len(l.nodes)

	l.PopFront()
	l.PopLast()
	l.PushFront(10)
	l.PushBack(20)

	assert.Equal(t, slots, len(l.nodes))
	assert.Empty(t, l.free)
	requireChain(t, l)
	assert.Equal(t, []int{10, 1, 2, 20}, l.Values())
}

func TestLinkedList_GetAndSetWalkFromEitherEnd(t *testing.T) {
	l := NewLinkedList[int]()
	for i := 0; i < 9; i++ {
		l.Append(i * 10)
	}

	for i := 0; i < 9; i++ {
		v, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i*10, v)
	}

	old, err := l.Set(7, -1)
	require.NoError(t, err)
	assert.Equal(t, 70, old)
	v, err := l.Get(7)
	require.NoError(t, err)
	assert.Equal(t, -1, v)
	requireChain(t, l)
}

func TestLinkedList_OutOfRange(t *testing.T) {
	l := NewLinkedList[int]()
	l.Append(1)

	_, err := l.Get(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = l.Set(1, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = l.RemoveAt(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	err = l.InsertAt(2, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	err = l.InsertAt(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.Equal(t, []int{1}, l.Values())
	requireChain(t, l)
}

func TestLinkedList_QueueIsFIFO(t *testing.T) {
	var q Queue[int] = NewLinkedList[int]()
	for i := 1; i <= 5; i++ {
		q.Enqueue(i)
	}

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 1, head)

	for i := 1; i <= 5; i++ {
		v, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestLinkedList_DequeIsLIFO(t *testing.T) {
	var d Deque[int] = NewLinkedList[int]()
	for i := 1; i <= 5; i++ {
		d.Push(i)
	}

	last, ok := d.GetLast()
	require.True(t, ok)
	assert.Equal(t, 1, last)

	for i := 5; i >= 1; i-- {
		v, ok := d.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok = d.Pop()
	assert.False(t, ok)
}

func TestLinkedList_MixedRoles(t *testing.T) {
	l := NewLinkedList[int]()
	l.Enqueue(2)
	l.Push(1)
	l.Enqueue(3)
	require.NoError(t, l.InsertAt(3, 4))
	requireChain(t, l)
	assert.Equal(t, "[1,2,3,4]", l.String())

	v, _ := l.RemoveLast()
	assert.Equal(t, 4, v)
	v, _ = l.Dequeue()
	assert.Equal(t, 1, v)
	v, _ = l.Pop()
	assert.Equal(t, 2, v)
	requireChain(t, l)
	assert.Equal(t, "[3]", l.String())
}

func TestLinkedList_Clear(t *testing.T) {
	l := NewLinkedList[int]()
	for i := 0; i < 5; i++ {
		l.PushBack(i)
	}
	l.PopFront()
	l.Clear()

	requireChain(t, l)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.nodes)
	assert.Nil(t, l.free)

	l.PushBack(9)
	requireChain(t, l)
	assert.Equal(t, "[9]", l.String())
}
