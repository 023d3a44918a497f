package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Transport failures
// are propagated unchanged; only the no-row case is normalized so services
// do not depend on database/sql sentinels.
var ErrNotFound = errors.New("record not found")
