package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when an input path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrMissingColumn matches every MissingColumnError via errors.Is.
	ErrMissingColumn = errors.New("missing column")

	// ErrEmptyJoin is returned when pg.csv and uba.csv share no yearName.
	ErrEmptyJoin = errors.New("no overlapping years between population growth and urban built area data")

	// ErrAmbiguousSelection is returned when no transform can be chosen for an input.
	ErrAmbiguousSelection = errors.New("cannot determine which transform to use")
)

// MissingColumnError reports an expected column absent from an input table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
