package seq

// List is the position-addressable view shared by both engines.
// Positions are 0-based.
type List[T comparable] interface {
	// Len returns the number of elements.
	Len() int

	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool

	// Get returns the element at pos, valid in [0, Len()).
	Get(pos int) (T, error)

	// Append adds v after the last element.
	Append(v T)

	// InsertAt places v at pos, valid in [0, Len()]. Elements at pos and
	// after move one position up.
	InsertAt(pos int, v T) error

	// Set replaces the element at pos, valid in [0, Len()), and returns the
	// element it displaced.
	Set(pos int, v T) (T, error)

	// RemoveAt removes and returns the element at pos, valid in [0, Len()).
	RemoveAt(pos int) (T, error)

	// Clear removes every element.
	Clear()

	// Equal reports whether other holds equal elements in the same order,
	// comparing elements with ElementEqual.
	Equal(other List[T]) bool

	// HashCode returns the order-sensitive hash of the elements.
	HashCode() int32

	// String renders the elements as [e1,e2,...].
	String() string
}

// Queue is a FIFO view. Dequeue and Peek return ok == false when empty.
type Queue[T any] interface {
	Enqueue(v T)
	Dequeue() (v T, ok bool)
	Peek() (v T, ok bool)
}

// Deque extends Queue with stack operations at the front and access to the
// back. Push followed by Pop is LIFO.
type Deque[T any] interface {
	Queue[T]
	Push(v T)
	Pop() (v T, ok bool)
	RemoveLast() (v T, ok bool)
	GetLast() (v T, ok bool)
}

var (
	_ List[int]  = (*ArrayList[int])(nil)
	_ List[int]  = (*LinkedList[int])(nil)
	_ Queue[int] = (*LinkedList[int])(nil)
	_ Deque[int] = (*LinkedList[int])(nil)
)
