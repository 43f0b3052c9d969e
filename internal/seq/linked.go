package seq

import "fmt"

// nilIndex is the empty link. Slot 0 of the arena is reserved for it, so a
// zero LinkedList has head == tail == nilIndex and no arena.
const nilIndex int32 = 0

// node is one element of the chain. prev is a back-reference used only for
// traversal; a node is owned by the chain through its predecessor's next (or
// by head).
type node[T any] struct {
	val  T
	prev int32
	next int32
}

// LinkedList is a List, Queue and Deque backed by a doubly linked chain.
//
// Nodes live in an arena and refer to each other by index. Removed nodes are
// cleared and recycled through a free list. End operations are O(1); indexed
// operations walk from the nearer end.
//
// The zero value is an empty list ready to use.
type LinkedList[T comparable] struct {
	nodes  []node[T]
	free   []int32
	head   int32
	tail   int32
	length int
}

// NewLinkedList returns an empty list.
func NewLinkedList[T comparable]() *LinkedList[T] {
	return &LinkedList[T]{}
}

// Len returns the number of nodes in the chain.
func (l *LinkedList[T]) Len() int {
	return l.length
}

// IsEmpty reports whether the chain has no nodes.
func (l *LinkedList[T]) IsEmpty() bool {
	return l.length == 0
}

// PushFront links v in as the new head.
func (l *LinkedList[T]) PushFront(v T) {
	n := l.alloc(v)
	if l.head == nilIndex {
		l.head, l.tail = n, n
	} else {
		l.nodes[n].next = l.head
		l.nodes[l.head].prev = n
		l.head = n
	}
	l.length++
}

// PushBack links v in as the new tail.
func (l *LinkedList[T]) PushBack(v T) {
	n := l.alloc(v)
	if l.tail == nilIndex {
		l.head, l.tail = n, n
	} else {
		l.nodes[n].prev = l.tail
		l.nodes[l.tail].next = n
		l.tail = n
	}
	l.length++
}

// PeekFirst returns the head element, or ok == false when empty.
func (l *LinkedList[T]) PeekFirst() (T, bool) {
	if l.head == nilIndex {
		var zero T
		return zero, false
	}
	return l.nodes[l.head].val, true
}

// PeekLast returns the tail element, or ok == false when empty.
func (l *LinkedList[T]) PeekLast() (T, bool) {
	if l.tail == nilIndex {
		var zero T
		return zero, false
	}
	return l.nodes[l.tail].val, true
}

// PopFront unlinks and returns the head element, or ok == false when empty.
func (l *LinkedList[T]) PopFront() (T, bool) {
	n := l.head
	if n == nilIndex {
		var zero T
		return zero, false
	}
	v := l.nodes[n].val
	if l.head == l.tail {
		l.head, l.tail = nilIndex, nilIndex
	} else {
		next := l.nodes[n].next
		l.nodes[next].prev = nilIndex
		l.head = next
	}
	l.release(n)
	l.length--
	return v, true
}

// PopLast unlinks and returns the tail element, or ok == false when empty.
func (l *LinkedList[T]) PopLast() (T, bool) {
	n := l.tail
	if n == nilIndex {
		var zero T
		return zero, false
	}
	v := l.nodes[n].val
	if l.head == l.tail {
		l.head, l.tail = nilIndex, nilIndex
	} else {
		prev := l.nodes[n].prev
		l.nodes[prev].next = nilIndex
		l.tail = prev
	}
	l.release(n)
	l.length--
	return v, true
}

// Append links v in as the new tail.
func (l *LinkedList[T]) Append(v T) {
	l.PushBack(v)
}

// InsertAt splices v in at pos, valid in [0, Len()].
func (l *LinkedList[T]) InsertAt(pos int, v T) error {
	if err := checkInsert("insert", pos, l.length); err != nil {
		return err
	}
	switch pos {
	case 0:
		l.PushFront(v)
	case l.length:
		l.PushBack(v)
	default:
		pred := l.nodeAt(pos - 1)
		succ := l.nodes[pred].next
		n := l.alloc(v)
		l.nodes[n].prev = pred
		l.nodes[n].next = succ
		l.nodes[pred].next = n
		l.nodes[succ].prev = n
		l.length++
	}
	return nil
}

// Get returns the element at pos.
func (l *LinkedList[T]) Get(pos int) (T, error) {
	if err := checkIndex("get", pos, l.length); err != nil {
		var zero T
		return zero, err
	}
	return l.nodes[l.nodeAt(pos)].val, nil
}

// Set replaces the element at pos and returns the previous one.
func (l *LinkedList[T]) Set(pos int, v T) (T, error) {
	if err := checkIndex("set", pos, l.length); err != nil {
		var zero T
		return zero, err
	}
	n := l.nodeAt(pos)
	old := l.nodes[n].val
	l.nodes[n].val = v
	return old, nil
}

// RemoveAt unlinks and returns the element at pos.
func (l *LinkedList[T]) RemoveAt(pos int) (T, error) {
	if err := checkIndex("remove", pos, l.length); err != nil {
		var zero T
		return zero, err
	}
	switch pos {
	case 0:
		v, _ := l.PopFront()
		return v, nil
	case l.length - 1:
		v, _ := l.PopLast()
		return v, nil
	}

	pred := l.nodeAt(pos - 1)
	n := l.nodes[pred].next
	succ := l.nodes[n].next
	v := l.nodes[n].val
	l.nodes[pred].next = succ
	l.nodes[succ].prev = pred
	l.release(n)
	l.length--
	return v, nil
}

// Clear unlinks every node and drops the arena.
func (l *LinkedList[T]) Clear() {
	clear(l.nodes)
	l.nodes = nil
	l.free = nil
	l.head, l.tail = nilIndex, nilIndex
	l.length = 0
}

// Values returns the elements from head to tail.
func (l *LinkedList[T]) Values() []T {
	out := make([]T, 0, l.length)
	l.each(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Enqueue adds v at the back.
func (l *LinkedList[T]) Enqueue(v T) { l.PushBack(v) }

// Dequeue removes the front element.
func (l *LinkedList[T]) Dequeue() (T, bool) { return l.PopFront() }

// Peek returns the front element.
func (l *LinkedList[T]) Peek() (T, bool) { return l.PeekFirst() }

// Push adds v at the front.
func (l *LinkedList[T]) Push(v T) { l.PushFront(v) }

// Pop removes the front element.
func (l *LinkedList[T]) Pop() (T, bool) { return l.PopFront() }

// RemoveLast removes the back element.
func (l *LinkedList[T]) RemoveLast() (T, bool) { return l.PopLast() }

// GetLast returns the back element.
func (l *LinkedList[T]) GetLast() (T, bool) { return l.PeekLast() }

// Equal reports whether other holds equal elements in the same order,
// whatever its engine.
func (l *LinkedList[T]) Equal(other List[T]) bool {
	return Equal[T](l, other)
}

// HashCode returns the order-sensitive hash of the elements.
func (l *LinkedList[T]) HashCode() int32 {
	return Hash[T](l)
}

// String renders the list as [e1,e2,...].
func (l *LinkedList[T]) String() string {
	return Format[T](l)
}

func (l *LinkedList[T]) each(fn func(T) bool) {
	for n := l.head; n != nilIndex; n = l.nodes[n].next {
		if !fn(l.nodes[n].val) {
			return
		}
	}
}

// nodeAt returns the index of the node at pos, which must be in range.
func (l *LinkedList[T]) nodeAt(pos int) int32 {
	if pos < l.length/2 {
		n := l.head
		for i := 0; i < pos; i++ {
			n = l.nodes[n].next
		}
		return n
	}
	n := l.tail
	for i := l.length - 1; i > pos; i-- {
		n = l.nodes[n].prev
	}
	return n
}

// alloc returns an unlinked node holding v, reusing a released slot if any.
func (l *LinkedList[T]) alloc(v T) int32 {
	if k := len(l.free); k > 0 {
		n := l.free[k-1]
		l.free = l.free[:k-1]
		l.nodes[n].val = v
		return n
	}
	if len(l.nodes) == 0 {
		l.nodes = append(l.nodes, node[T]{}) // nilIndex
	}
	l.nodes = append(l.nodes, node[T]{val: v})
	return int32(len(l.nodes) - 1)
}

// release clears a detached node and returns its slot to the free list.
func (l *LinkedList[T]) release(n int32) {
	l.nodes[n] = node[T]{}
	l.free = append(l.free, n)
}

// check verifies the chain invariants: empty iff head and tail are empty,
// a single node has no links, every link pair is symmetric, and exactly
// length nodes are reachable in both directions without a cycle.
func (l *LinkedList[T]) check() error {
	if l.length == 0 {
		if l.head != nilIndex || l.tail != nilIndex {
			return fmt.Errorf("empty list has head=%d tail=%d", l.head, l.tail)
		}
		return nil
	}
	if l.head == nilIndex || l.tail == nilIndex {
		return fmt.Errorf("length %d with head=%d tail=%d", l.length, l.head, l.tail)
	}
	if l.nodes[l.head].prev != nilIndex {
		return fmt.Errorf("head %d has prev %d", l.head, l.nodes[l.head].prev)
	}
	if l.nodes[l.tail].next != nilIndex {
		return fmt.Errorf("tail %d has next %d", l.tail, l.nodes[l.tail].next)
	}
	if (l.length == 1) != (l.head == l.tail) {
		return fmt.Errorf("length %d with head=%d tail=%d", l.length, l.head, l.tail)
	}

	count := 0
	prev := nilIndex
	for n := l.head; n != nilIndex; n = l.nodes[n].next {
		count++
		if count > l.length {
			return fmt.Errorf("more than %d nodes reachable from head", l.length)
		}
		if l.nodes[n].prev != prev {
			return fmt.Errorf("node %d prev=%d, want %d", n, l.nodes[n].prev, prev)
		}
		prev = n
	}
	if count != l.length || prev != l.tail {
		return fmt.Errorf("forward walk reached %d nodes ending at %d, want %d ending at %d", count, prev, l.length, l.tail)
	}

	count = 0
	for n := l.tail; n != nilIndex; n = l.nodes[n].prev {
		count++
		if count > l.length {
			return fmt.Errorf("more than %d nodes reachable from tail", l.length)
		}
	}
	if count != l.length {
		return fmt.Errorf("backward walk reached %d nodes, want %d", count, l.length)
	}

	if len(l.nodes) > 0 && len(l.nodes)-1 != l.length+len(l.free) {
		return fmt.Errorf("arena has %d slots, want %d live + %d free", len(l.nodes)-1, l.length, len(l.free))
	}
	return nil
}
