package content

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind     = errors.New("content: unknown content kind")
	ErrDuplicateLocale = errors.New("content: translation group already has a record for this locale")
	ErrGroupNotFound   = errors.New("content: translation group not found")
	ErrKindMismatch    = errors.New("content: record kind differs from its translation group")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
