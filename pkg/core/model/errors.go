package model

import "errors"

// ErrDuplicateRoster is returned by stores when a roster already exists for
// the requested start date. Generation treats it as idempotent re-invocation
// and returns the existing roster.
var ErrDuplicateRoster = errors.New("a roster already exists for this start date")

// ErrNotFound is returned by stores when a requested record does not exist
var ErrNotFound = errors.New("record not found")
