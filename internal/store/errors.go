package store

import "errors"

// Typed failures reported to callers. The store never retries and never
// logs; front-ends decide whether to retry or surface the error.
var (
	// ErrNotFound reports that no record with the given id exists.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID reports an id collision on create.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrCorruptStore reports that a collection file does not contain a
	// valid JSON array of records.
	ErrCorruptStore = errors.New("corrupt collection file")

	// ErrLockTimeout reports that the collection file lock could not be
	// acquired within the configured bound.
	ErrLockTimeout = errors.New("collection lock timeout")
)
