package state

import "errors"

var (
	// ErrInvalidTopology is returned while building a topology, before any simulation starts.
	ErrInvalidTopology = errors.New("invalid topology")
	// ErrInvariantViolation means the protocol reached a state its construction rules out.
	ErrInvariantViolation = errors.New("routing invariant violated")
)
