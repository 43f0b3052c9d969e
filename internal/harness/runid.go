package harness

import "github.com/google/uuid"

// UUIDv7Generator generates time-sortable UUIDv7 run ids, so the run
// journal lists runs in creation order without a timestamp column.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
// Panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
