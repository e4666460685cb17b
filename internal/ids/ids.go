package ids

import "github.com/segmentio/ksuid"

// New returns a time-ordered unique identifier. KSUIDs sort
// lexicographically by creation time, which keeps storage keys and
// record IDs roughly chronological without coordination.
func New() string {
	return ksuid.New().String()
}
