package errors

import "errors"

// requested record does not exist in the catalog.
var ErrMissing = errors.New("missing")

// write collides with a record already in the catalog.
var ErrConflict = errors.New("conflict")
