package reports

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a report does not exist or belongs to a
// different owner. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("report not found")

// ValidationError reports why a submitted case cannot be accepted.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid report: " + strings.Join(e.Problems, "; ")
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
