// Package identity implements the record identifier scheme shared by the
// template reconciler and the response ledger. Identifiers are plain integers
// on the wire: the upstream backend assigns small ids, while records persisted
// only in the local fallback store carry ids synthesized from the creation
// time in Unix milliseconds. The numeric threshold is the wire contract; code
// outside this package works with the derived Origin tag instead of comparing
// against the raw constant.
package identity

import "time"

// LocalThreshold separates backend-assigned ids from locally synthesized
// ones. Any id at or above it is understood everywhere as "never seen by the
// backend". Unix-millisecond timestamps cleared this value in 2001 and will
// stay above it for the lifetime of the scheme.
const LocalThreshold int64 = 1_000_000_000_000

// Origin tags where a record id was assigned.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
)

// ID is a record identifier in either range.
type ID int64

// Origin derives the assignment origin from the id's range.
func (id ID) Origin() Origin {
	if int64(id) >= LocalThreshold {
		return OriginLocal
	}
	return OriginRemote
}

// IsLocal reports whether the id was synthesized by the fallback path.
func (id ID) IsLocal() bool { return id.Origin() == OriginLocal }

// IsZero reports whether the id is unset. A zero id is never valid for
// update or delete operations.
func (id ID) IsZero() bool { return id == 0 }

// Clock abstracts time for id synthesis so tests can pin the boundary.
type Clock func() time.Time

// NewLocalID synthesizes a local-range id from the clock's current Unix
// milliseconds.
func NewLocalID(now Clock) ID {
	if now == nil {
		now = time.Now
	}
	return ID(now().UnixMilli())
}
