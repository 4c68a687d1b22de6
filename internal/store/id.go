package store

import "github.com/google/uuid"

// NewID returns an opaque prefixed identifier. The prefix marks the
// entity kind (u, d, c, co, t) and is informational only; callers must
// not parse ids.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
