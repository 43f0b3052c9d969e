// Package ir defines the scalar element values that scenarios feed to the
// sequence engines, and the canonical JSON and digests used for traces.
//
// Key design constraints:
//   - Element values are scalars only (null, string, int, bool) so they are
//     comparable and can be stored in any seq.List.
//   - NO float types anywhere - use int64 for numbers
//   - Canonical JSON (RFC 8785 key order, NFC strings) is the only input to
//     digests
package ir
