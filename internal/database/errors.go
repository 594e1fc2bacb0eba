package database

import "errors"

// ErrNotFound is returned by repositories when no record matches the
// requested identifier.
var ErrNotFound = errors.New("record not found")
