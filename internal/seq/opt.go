package seq

import "fmt"

// Opt is an element that may be absent. The zero value is None.
//
// Absent elements compare equal to each other, contribute 0 to a list hash
// and render as "null".
type Opt[T comparable] struct {
	val T
	ok  bool
}

// Some returns a present value.
func Some[T comparable](v T) Opt[T] {
	return Opt[T]{val: v, ok: true}
}

// None returns an absent value.
func None[T comparable]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.val, o.ok
}

// IsNone reports whether the value is absent.
func (o Opt[T]) IsNone() bool {
	return !o.ok
}

// HashCode implements Hasher.
func (o Opt[T]) HashCode() int32 {
	if !o.ok {
		return 0
	}
	return elementHash(o.val)
}

// String implements fmt.Stringer.
func (o Opt[T]) String() string {
	if !o.ok {
		return "null"
	}
	return fmt.Sprint(o.val)
}
