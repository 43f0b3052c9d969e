package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed digests.
// Version suffix enables future algorithm migration.
const (
	DomainTrace    = "seqkit/trace/v1"
	DomainScenario = "seqkit/scenario/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TraceDigest returns the digest of a canonical trace snapshot. Two runs of
// the same scenario produce the same digest iff their traces are identical.
func TraceDigest(snapshot any) (string, error) {
	canonical, err := MarshalCanonical(snapshot)
	if err != nil {
		return "", fmt.Errorf("TraceDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}

// ScenarioDigest returns the digest of a raw scenario file.
func ScenarioDigest(data []byte) string {
	return hashWithDomain(DomainScenario, data)
}

// MustTraceDigest is like TraceDigest but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustTraceDigest(snapshot any) string {
	d, err := TraceDigest(snapshot)
	if err != nil {
		panic(err)
	}
	return d
}
