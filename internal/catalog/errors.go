package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("pal not found")
	ErrDuplicateName = errors.New("duplicate pal name")
)

// DuplicateNameError is returned by Load when two pals share a name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateName, e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }
