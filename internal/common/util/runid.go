package util

import (
	"io"
	"strings"
	"time"

	"github.com/oklog/ulid"
)

// NewRunID returns a lowercase ULID stamped with t, reading randomness from
// r. ULIDs sort lexically by creation time, so identifiers from repeated
// invocations order naturally in run logs. Tests pass a deterministic reader
// to pin identifiers.
func NewRunID(t time.Time, r io.Reader) string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(t), r).String())
}
