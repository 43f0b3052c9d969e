package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seqkit/internal/seq"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  IRValue
	}{
		{"nil", nil, IRNull{}},
		{"string", "abc", IRString("abc")},
		{"int", 7, IRInt(7)},
		{"int64", int64(-3), IRInt(-3)},
		{"uint64", uint64(12), IRInt(12)},
		{"bool", true, IRBool(true)},
		{"already IR", IRInt(4), IRInt(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromAny_Rejects(t *testing.T) {
	inputs := map[string]any{
		"float":    1.5,
		"sequence": []any{1},
		"mapping":  map[string]any{"a": 1},
		"too big":  uint64(1 << 63),
		"struct":   struct{}{},
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := FromAny(in)
			assert.Error(t, err)
		})
	}
}

func TestToAny(t *testing.T) {
	assert.Nil(t, ToAny(IRNull{}))
	assert.Equal(t, "x", ToAny(IRString("x")))
	assert.Equal(t, int64(9), ToAny(IRInt(9)))
	assert.Equal(t, false, ToAny(IRBool(false)))
}

func TestIRValue_AsListElement(t *testing.T) {
	a := seq.NewArrayList[IRValue]()
	l := seq.NewLinkedList[IRValue]()
	for _, v := range []IRValue{IRInt(1), IRString("a"), IRNull{}, IRBool(true)} {
		a.Append(v)
		l.PushBack(v)
	}

	assert.Equal(t, "[1,a,null,true]", a.String())
	assert.True(t, a.Equal(l))
	assert.Equal(t, a.HashCode(), l.HashCode())

	// 1, "a"=97, null=0, true=1231
	want := int32(1)
	for _, h := range []int32{1, 97, 0, 1231} {
		want = 31*want + h
	}
	assert.Equal(t, want, a.HashCode())
}

func TestIRValue_DistinctTypesNotEqual(t *testing.T) {
	a := seq.NewArrayList[IRValue]()
	a.Append(IRInt(1))
	l := seq.NewLinkedList[IRValue]()
	l.PushBack(IRString("1"))

	assert.Equal(t, a.String(), l.String())
	assert.False(t, a.Equal(l))
}
