// Package seq implements the two linear container engines behind seqkit.
//
// ArrayList keeps elements in a contiguous buffer that is reallocated when an
// insertion would overflow it. LinkedList keeps elements in a doubly linked
// chain of nodes stored in an arena and addressed by index.
//
// Both engines satisfy List. LinkedList additionally satisfies Queue and Deque,
// so one value can be driven as a list, a FIFO queue and a LIFO stack at the
// same time; all three views share the same head and tail.
//
// # Identity
//
// Equality, hashing and the string form depend only on the ordered element
// values, never on the backing engine:
//
//	a := seq.NewArrayList[int]()
//	l := seq.NewLinkedList[int]()
//	a.Append(1)
//	l.PushBack(1)
//	a.Equal(l)                     // true
//	a.HashCode() == l.HashCode()   // true
//	a.String()                     // "[1]"
//
// # Errors
//
// Index arguments outside an operation's window fail with *RangeError, which
// matches ErrOutOfRange under errors.Is. Insert windows include Len(); read,
// update and remove windows do not. Boundary reads on an empty LinkedList
// (PeekFirst, PopLast, Dequeue, ...) return ok == false instead of an error.
//
// # Concurrency
//
// Engines are not safe for concurrent use. A failed call never mutates state.
package seq
