package repositories

import "errors"

// ErrNotFound is returned (wrapped) when a requested row does not exist or
// is not visible to the caller. Ownership and session-scope misses use the
// same error so callers cannot distinguish "absent" from "not yours".
var ErrNotFound = errors.New("record not found")
