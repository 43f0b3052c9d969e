package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seqkit/internal/ir"
)

func filled(t *testing.T, name string, vals ...ir.IRValue) *container {
	t.Helper()
	c, err := newContainer(name)
	require.NoError(t, err)
	for _, v := range vals {
		c.list.Append(v)
	}
	return c
}

func TestEvaluateAssertions_Pass(t *testing.T) {
	count := 2
	hash := int64(994) // [1,2]: 31*(31+1)+2
	engines := []*container{
		filled(t, EngineArray, ir.IRInt(1), ir.IRInt(2)),
		filled(t, EngineLinked, ir.IRInt(1), ir.IRInt(2)),
	}

	errs := evaluateAssertions([]Assertion{
		{Type: AssertRender, Expect: "[1,2]"},
		{Type: AssertSize, Count: &count},
		{Type: AssertHash, Hash: &hash},
		{Type: AssertEnginesAgree},
	}, engines)
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_ReportsEachEngine(t *testing.T) {
	count := 3
	engines := []*container{
		filled(t, EngineArray, ir.IRInt(1)),
		filled(t, EngineLinked, ir.IRInt(1)),
	}

	errs := evaluateAssertions([]Assertion{{Type: AssertSize, Count: &count}}, engines)
	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], "assertion size failed on array: expected 3, got 1")
	assert.EqualError(t, errs[1], "assertion size failed on linked: expected 3, got 1")

	var aerr *AssertionError
	require.ErrorAs(t, errs[1], &aerr)
	assert.Equal(t, EngineLinked, aerr.Engine)
}

func TestEvaluateAssertions_EnginesDisagree(t *testing.T) {
	engines := []*container{
		filled(t, EngineArray, ir.IRInt(1), ir.IRString("1")),
		filled(t, EngineLinked, ir.IRInt(1), ir.IRInt(1)),
	}

	errs := evaluateAssertions([]Assertion{{Type: AssertEnginesAgree}}, engines)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "assertion engines_agree failed on linked: expected [1,1] (as array), got [1,1]")
}

func TestEvaluateAssertions_SingleEngineAgrees(t *testing.T) {
	errs := evaluateAssertions([]Assertion{{Type: AssertEnginesAgree}}, []*container{filled(t, EngineLinked)})
	assert.Empty(t, errs)
}
