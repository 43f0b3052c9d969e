package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceDigestDeterminism(t *testing.T) {
	snapshot := map[string]any{
		"scenario_name": "fifo",
		"trace":         []any{map[string]any{"op": "enqueue", "seq": 1}},
	}

	d1, err := TraceDigest(snapshot)
	require.NoError(t, err)
	d2, err := TraceDigest(snapshot)
	require.NoError(t, err)

	assert.Equal(t, d1, d2, "TraceDigest must be deterministic")
	assert.Len(t, d1, 64, "SHA-256 hex is 64 characters")
}

func TestTraceDigestChangesWithInput(t *testing.T) {
	d1 := MustTraceDigest(map[string]any{"render": "[1,2]"})
	d2 := MustTraceDigest(map[string]any{"render": "[2,1]"})
	assert.NotEqual(t, d1, d2)
}

func TestDomainSeparation(t *testing.T) {
	data := []byte(`"x"`)
	assert.NotEqual(t, hashWithDomain(DomainTrace, data), ScenarioDigest(data))
	assert.Equal(t, MustTraceDigest("x"), hashWithDomain(DomainTrace, data))
}

func TestTraceDigestRejectsFloat(t *testing.T) {
	_, err := TraceDigest(map[string]any{"f": 0.5})
	assert.Error(t, err)
	assert.Panics(t, func() { MustTraceDigest(0.5) })
}
