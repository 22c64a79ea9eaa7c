package util

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRunID(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entropy := func() *bytes.Reader { return bytes.NewReader(make([]byte, 16)) }

	id := NewRunID(t0, entropy())
	assert.Len(t, id, 26)
	assert.Equal(t, strings.ToLower(id), id)

	// Same instant and entropy yields the same identifier.
	assert.Equal(t, id, NewRunID(t0, entropy()))

	// Later identifiers sort after earlier ones.
	later := NewRunID(t0.Add(time.Second), entropy())
	assert.Less(t, id, later)
}
