// Package repositories provides one typed data-access object per record
// kind. Each repository owns its key encoding and maintains its own
// secondary indexes; no other package concatenates store keys.
package repositories

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID returns a ULID for the current instant.
func NewID() string {
	return ulid.Make().String()
}

// NewTimeID returns a ULID carrying the given timestamp. ULIDs sort
// lexicographically by time, so they double as ordered index keys.
func NewTimeID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t.UTC()), ulid.DefaultEntropy()).String()
}
