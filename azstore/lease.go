package azstore

import (
	"github.com/google/uuid"
)

// LeaseID identifies a lease held on a container or blob, the services require lease ids to be UUIDs.
type LeaseID uuid.UUID

// NewLeaseID returns a random lease id, useful as the proposed id when acquiring or changing a lease.
func NewLeaseID() LeaseID {
	return LeaseID(uuid.New())
}

// ParseLeaseID converts the wire representation of a lease id.
func ParseLeaseID(value string) (LeaseID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return LeaseID{}, &ParseError{Kind: "lease id", Value: value, inner: err}
	}

	return LeaseID(parsed), nil
}

func (l LeaseID) String() string {
	return uuid.UUID(l).String()
}

// LeaseStatus indicates whether a container or blob currently has an active lease.
type LeaseStatus string

const (
	LeaseStatusLocked   LeaseStatus = "locked"
	LeaseStatusUnlocked LeaseStatus = "unlocked"
)

// ParseLeaseStatus converts the wire representation of a lease status.
func ParseLeaseStatus(value string) (LeaseStatus, error) {
	switch status := LeaseStatus(value); status {
	case LeaseStatusLocked, LeaseStatusUnlocked:
		return status, nil
	}

	return "", &ParseError{Kind: "lease status", Value: value}
}

// LeaseState is the lifecycle state of a lease on a container or blob.
type LeaseState string

const (
	LeaseStateAvailable LeaseState = "available"
	LeaseStateLeased    LeaseState = "leased"
	LeaseStateExpired   LeaseState = "expired"
	LeaseStateBreaking  LeaseState = "breaking"
	LeaseStateBroken    LeaseState = "broken"
)

// ParseLeaseState converts the wire representation of a lease state.
func ParseLeaseState(value string) (LeaseState, error) {
	switch state := LeaseState(value); state {
	case LeaseStateAvailable, LeaseStateLeased, LeaseStateExpired, LeaseStateBreaking, LeaseStateBroken:
		return state, nil
	}

	return "", &ParseError{Kind: "lease state", Value: value}
}

// LeaseDuration indicates whether the active lease on a container or blob is of fixed or infinite duration, only
// reported while a lease is active.
type LeaseDuration string

const (
	LeaseDurationInfinite LeaseDuration = "infinite"
	LeaseDurationFixed    LeaseDuration = "fixed"
)

// ParseLeaseDuration converts the wire representation of a lease duration.
func ParseLeaseDuration(value string) (LeaseDuration, error) {
	switch duration := LeaseDuration(value); duration {
	case LeaseDurationInfinite, LeaseDurationFixed:
		return duration, nil
	}

	return "", &ParseError{Kind: "lease duration", Value: value}
}
