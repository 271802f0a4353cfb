package booking

import "errors"

var (
	ErrInvalidReference = errors.New("booking references a missing row")
	ErrConstraint       = errors.New("booking violates a table constraint")
	ErrNothingToExport  = errors.New("no bookings match the export filters")
)
