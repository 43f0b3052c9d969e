package seq

// Growth policy for ArrayList.
const (
	// DefaultCapacity is the buffer size allocated by NewArrayList.
	DefaultCapacity = 10

	// GrowthFactor multiplies the length when the buffer is full.
	GrowthFactor = 2
)

// nextCapacity returns the buffer size used when a full buffer of the given
// length must grow. An empty buffer grows to 1, not 0.
func nextCapacity(length int) int {
	return max(1, GrowthFactor*length)
}

// ArrayList is a List backed by a contiguous, growable buffer.
//
// Slots [0, Len()) hold live elements; slots [Len(), Cap()) are zeroed.
// The buffer is replaced only by grow or Trim and never shrinks on its own.
//
// The zero value is an empty list with capacity 0.
type ArrayList[T comparable] struct {
	buf    []T
	length int
}

// NewArrayList returns an empty list with DefaultCapacity slots.
func NewArrayList[T comparable]() *ArrayList[T] {
	return &ArrayList[T]{buf: make([]T, DefaultCapacity)}
}

// NewArrayListCap returns an empty list with exactly capacity slots.
func NewArrayListCap[T comparable](capacity int) (*ArrayList[T], error) {
	if capacity < 0 {
		return nil, &RangeError{Op: "new", Index: capacity, Length: 0, Inclusive: true}
	}
	return &ArrayList[T]{buf: make([]T, capacity)}, nil
}

// Len returns the number of live elements.
func (a *ArrayList[T]) Len() int {
	return a.length
}

// IsEmpty reports whether the list holds no elements.
func (a *ArrayList[T]) IsEmpty() bool {
	return a.length == 0
}

// Cap returns the number of slots in the buffer.
func (a *ArrayList[T]) Cap() int {
	return len(a.buf)
}

// Append adds v at position Len(), growing the buffer first when full.
// Amortized O(1).
func (a *ArrayList[T]) Append(v T) {
	a.ensureCapacity()
	a.buf[a.length] = v
	a.length++
}

// InsertAt places v at pos and shifts [pos, Len()) one slot right.
// O(Len() - pos).
func (a *ArrayList[T]) InsertAt(pos int, v T) error {
	if err := checkInsert("insert", pos, a.length); err != nil {
		return err
	}
	a.ensureCapacity()

	// high to low so no live slot is overwritten before it moves
	for i := a.length - 1; i >= pos; i-- {
		a.buf[i+1] = a.buf[i]
	}
	a.buf[pos] = v
	a.length++
	return nil
}

// Get returns the element at pos. O(1).
func (a *ArrayList[T]) Get(pos int) (T, error) {
	if err := checkIndex("get", pos, a.length); err != nil {
		var zero T
		return zero, err
	}
	return a.buf[pos], nil
}

// Set replaces the element at pos and returns the previous one. O(1).
func (a *ArrayList[T]) Set(pos int, v T) (T, error) {
	if err := checkIndex("set", pos, a.length); err != nil {
		var zero T
		return zero, err
	}
	old := a.buf[pos]
	a.buf[pos] = v
	return old, nil
}

// RemoveAt removes the element at pos, shifts (pos, Len()) one slot left and
// zeroes the vacated last slot. O(Len() - pos).
func (a *ArrayList[T]) RemoveAt(pos int) (T, error) {
	if err := checkIndex("remove", pos, a.length); err != nil {
		var zero T
		return zero, err
	}
	removed := a.buf[pos]
	for i := pos + 1; i < a.length; i++ {
		a.buf[i-1] = a.buf[i]
	}

	var zero T
	a.buf[a.length-1] = zero
	a.length--
	return removed, nil
}

// Clear zeroes every live slot and resets the length. The capacity is kept.
func (a *ArrayList[T]) Clear() {
	clear(a.buf[:a.length])
	a.length = 0
}

// Trim reallocates the buffer to exactly Len() slots.
func (a *ArrayList[T]) Trim() {
	if a.length < len(a.buf) {
		a.realloc(a.length)
	}
}

// Values returns a copy of the live elements.
func (a *ArrayList[T]) Values() []T {
	out := make([]T, a.length)
	copy(out, a.buf[:a.length])
	return out
}

// Equal reports whether other holds equal elements in the same order,
// whatever its engine.
func (a *ArrayList[T]) Equal(other List[T]) bool {
	return Equal[T](a, other)
}

// HashCode returns the order-sensitive hash of the elements.
func (a *ArrayList[T]) HashCode() int32 {
	return Hash[T](a)
}

// String renders the list as [e1,e2,...].
func (a *ArrayList[T]) String() string {
	return Format[T](a)
}

func (a *ArrayList[T]) each(fn func(T) bool) {
	for i := 0; i < a.length; i++ {
		if !fn(a.buf[i]) {
			return
		}
	}
}

// ensureCapacity grows the buffer when it has no free slot.
func (a *ArrayList[T]) ensureCapacity() {
	if a.length == len(a.buf) {
		a.realloc(nextCapacity(a.length))
	}
}

func (a *ArrayList[T]) realloc(capacity int) {
	buf := make([]T, capacity)
	copy(buf, a.buf[:a.length])
	a.buf = buf
}
