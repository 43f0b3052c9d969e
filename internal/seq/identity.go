package seq

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf16"
)

// hashSeed is the starting accumulator of the hash fold.
const hashSeed int32 = 1

// Hasher is implemented by elements that provide their own hash contribution.
// Equal elements must return equal hashes.
type Hasher interface {
	HashCode() int32
}

// walker is implemented by the engines for allocation-free traversal.
type walker[T any] interface {
	each(fn func(T) bool)
}

// walk calls fn for every element of l in order until fn returns false.
func walk[T comparable](l List[T], fn func(T) bool) {
	if w, ok := l.(walker[T]); ok {
		w.each(fn)
		return
	}
	for i := 0; i < l.Len(); i++ {
		v, err := l.Get(i)
		if err != nil || !fn(v) {
			return
		}
	}
}

// Equal reports whether a and b hold the same number of elements and the
// elements are pairwise equal in order. The engines behind a and b do not
// matter.
//
// Elements are compared with ElementEqual, so Equal never panics on element
// values that Go's == rejects, and a list is always equal to itself.
func Equal[T comparable](a, b List[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if sameList(a, b) {
		return true
	}
	if a.Len() != b.Len() {
		return false
	}

	other := make([]T, 0, b.Len())
	walk(b, func(v T) bool {
		other = append(other, v)
		return true
	})

	equal := len(other) == a.Len()
	i := 0
	walk(a, func(v T) bool {
		if i >= len(other) || !ElementEqual(v, other[i]) {
			equal = false
			return false
		}
		i++
		return true
	})
	return equal && i == len(other)
}

// sameList reports whether a and b are the same engine value.
func sameList[T comparable](a, b List[T]) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	return ra.Kind() == reflect.Pointer && ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
}

// Hash folds the element hashes in order: acc = 31*acc + elementHash(e),
// starting from 1, in wrapping int32 arithmetic. Lists that are Equal hash
// identically.
func Hash[T comparable](l List[T]) int32 {
	acc := hashSeed
	if l == nil {
		return acc
	}
	walk(l, func(v T) bool {
		acc = 31*acc + elementHash(v)
		return true
	})
	return acc
}

// Format renders l as [e1,e2,...] with no spaces; an empty list is "[]".
func Format[T comparable](l List[T]) string {
	var b strings.Builder
	b.WriteByte('[')
	if l != nil {
		first := true
		walk(l, func(v T) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			fmt.Fprint(&b, v)
			return true
		})
	}
	b.WriteByte(']')
	return b.String()
}

// ElementEqual is the element equality used by Equal.
//
// Floats are equal when their bit patterns are, after folding every NaN into
// one: NaN equals NaN and 0.0 does not equal -0.0. Structs, arrays and
// interfaces compare field by field with the same rule. Slices and maps,
// which can appear behind an interface element type, compare element by
// element instead of panicking. Pointers and channels compare by address.
// Elements that are equal always have the same element hash.
func ElementEqual[T comparable](x, y T) bool {
	return valueEqual(reflect.ValueOf(&x).Elem(), reflect.ValueOf(&y).Elem())
}

func valueEqual(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32:
		return float32Bits(a.Float()) == float32Bits(b.Float())
	case reflect.Float64:
		return float64Bits(a.Float()) == float64Bits(b.Float())
	case reflect.Complex64:
		ca, cb := a.Complex(), b.Complex()
		return float32Bits(real(ca)) == float32Bits(real(cb)) && float32Bits(imag(ca)) == float32Bits(imag(cb))
	case reflect.Complex128:
		ca, cb := a.Complex(), b.Complex()
		return float64Bits(real(ca)) == float64Bits(real(cb)) && float64Bits(imag(ca)) == float64Bits(imag(cb))
	case reflect.String:
		return a.String() == b.String()
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return a.Pointer() == b.Pointer()
	case reflect.Func:
		return a.IsNil() && b.IsNil()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return valueEqual(a.Elem(), b.Elem())
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !valueEqual(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !valueEqual(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Slice:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !valueEqual(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !valueEqual(iter.Value(), bv) {
				return false
			}
		}
		return true
	}
	return false
}

// elementHash returns the hash contribution of a single element. Absent
// values (nil references, None) contribute 0.
func elementHash(v any) int32 {
	if v == nil {
		return 0
	}
	return valueHash(reflect.ValueOf(v))
}

func valueHash(rv reflect.Value) int32 {
	if !rv.IsValid() {
		return 0
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return 0
		}
	}
	if rv.CanInterface() {
		if h, ok := rv.Interface().(Hasher); ok {
			return h.HashCode()
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return 1231
		}
		return 1237
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return int32(rv.Int())
	case reflect.Int, reflect.Int64:
		return foldHash64(uint64(rv.Int()))
	case reflect.Uint8, reflect.Uint16:
		return int32(rv.Uint())
	case reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return foldHash64(rv.Uint())
	case reflect.Float32:
		return int32(float32Bits(rv.Float()))
	case reflect.Float64:
		return foldHash64(float64Bits(rv.Float()))
	case reflect.Complex64:
		c := rv.Complex()
		return 31*int32(float32Bits(real(c))) + int32(float32Bits(imag(c)))
	case reflect.Complex128:
		c := rv.Complex()
		return 31*foldHash64(float64Bits(real(c))) + foldHash64(float64Bits(imag(c)))
	case reflect.String:
		return StringHash(rv.String())
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return foldHash64(uint64(rv.Pointer()))
	case reflect.Interface:
		return valueHash(rv.Elem())
	case reflect.Struct:
		acc := hashSeed
		for i := 0; i < rv.NumField(); i++ {
			acc = 31*acc + valueHash(rv.Field(i))
		}
		return acc
	case reflect.Array, reflect.Slice:
		acc := hashSeed
		for i := 0; i < rv.Len(); i++ {
			acc = 31*acc + valueHash(rv.Index(i))
		}
		return acc
	case reflect.Map:
		// Map iteration order is random, so entries are combined with +.
		var acc int32
		iter := rv.MapRange()
		for iter.Next() {
			acc += valueHash(iter.Key()) ^ valueHash(iter.Value())
		}
		return acc
	}
	return 0
}

// float64Bits returns the IEEE bits of f with every NaN folded into one.
func float64Bits(f float64) uint64 {
	if math.IsNaN(f) {
		return 0x7ff8000000000000
	}
	return math.Float64bits(f)
}

// float32Bits returns the IEEE bits of f as a float32 with every NaN folded
// into one.
func float32Bits(f float64) uint32 {
	if math.IsNaN(f) {
		return 0x7fc00000
	}
	return math.Float32bits(float32(f))
}

// StringHash is the polynomial hash s[0]*31^(n-1) + ... + s[n-1] over the
// UTF-16 code units of s.
func StringHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(u)
	}
	return h
}

// IntHash folds a 64-bit integer into 32 bits as v ^ (v >>> 32).
func IntHash(v int64) int32 {
	return foldHash64(uint64(v))
}

func foldHash64(u uint64) int32 {
	return int32(uint32(u ^ u>>32))
}
