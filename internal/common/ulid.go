package common

import "github.com/oklog/ulid/v2"

// NewULID returns a lexicographically sortable request identifier.
func NewULID() string {
	return ulid.Make().String()
}
