package ir

import (
	"fmt"
	"math"
	"strconv"

	"github.com/roach88/seqkit/internal/seq"
)

// IRValue is a sealed interface over the scalar element types.
// Only IRNull, IRString, IRInt and IRBool implement it; all are comparable,
// so IRValue can be the element type of a seq.List.
type IRValue interface {
	seq.Hasher
	fmt.Stringer
	irValue() // Sealed
}

// IRNull is the explicit absent element. It hashes to 0 and renders as null.
type IRNull struct{}

func (IRNull) irValue() {}

// HashCode implements seq.Hasher.
func (IRNull) HashCode() int32 { return 0 }

// String implements fmt.Stringer.
func (IRNull) String() string { return "null" }

// MarshalJSON implements json.Marshaler for IRNull.
func (IRNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IRString is a string element.
type IRString string

func (IRString) irValue() {}

// HashCode implements seq.Hasher.
func (s IRString) HashCode() int32 { return seq.StringHash(string(s)) }

// String returns the raw string, unquoted.
func (s IRString) String() string { return string(s) }

// IRInt is an integer element. Always int64, never float64.
type IRInt int64

func (IRInt) irValue() {}

// HashCode implements seq.Hasher.
func (n IRInt) HashCode() int32 { return seq.IntHash(int64(n)) }

// String implements fmt.Stringer.
func (n IRInt) String() string { return strconv.FormatInt(int64(n), 10) }

// IRBool is a boolean element.
type IRBool bool

func (IRBool) irValue() {}

// HashCode implements seq.Hasher.
func (b IRBool) HashCode() int32 {
	if b {
		return 1231
	}
	return 1237
}

// String implements fmt.Stringer.
func (b IRBool) String() string { return strconv.FormatBool(bool(b)) }

// FromAny converts a decoded YAML/JSON scalar to an IRValue.
// nil becomes IRNull. Floats, sequences and mappings are rejected.
func FromAny(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return IRNull{}, nil
	case IRValue:
		return val, nil
	case string:
		return IRString(val), nil
	case bool:
		return IRBool(val), nil
	case int:
		return IRInt(val), nil
	case int64:
		return IRInt(val), nil
	case int32:
		return IRInt(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return IRInt(val), nil
	case float64, float32:
		return nil, fmt.Errorf("floats are forbidden: %v", val)
	case []any:
		return nil, fmt.Errorf("sequences are not allowed as element values")
	case map[string]any:
		return nil, fmt.Errorf("mappings are not allowed as element values")
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// ToAny converts an IRValue to a plain Go value (nil, string, int64, bool)
// for JSON output.
func ToAny(v IRValue) any {
	switch val := v.(type) {
	case IRString:
		return string(val)
	case IRInt:
		return int64(val)
	case IRBool:
		return bool(val)
	default:
		return nil
	}
}
