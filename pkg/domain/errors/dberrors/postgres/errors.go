package postgres

import (
	"fmt"

	domerr "github.com/aiod/metacat/pkg/domain/errors"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// a write collided with an existing record on a uniqueness constraint.
//
// ExistingId is the surrogate key of the record already holding the
// colliding value.
type Conflict struct {
	Table      string
	Identity   string
	ExistingId int
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf(
		"%s already exists in %s (id: %d)",
		c.Identity, c.Table, c.ExistingId,
	)
}

func (c Conflict) Unwrap() error {
	return domerr.ErrConflict
}
