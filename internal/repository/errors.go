package repository

import "errors"

// ErrNotFound reports that a referenced row no longer exists (dangling
// parent, deleted user or category).
var ErrNotFound = errors.New("not found")
