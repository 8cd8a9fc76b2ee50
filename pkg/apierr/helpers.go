package apierr

import (
	"errors"
	"net/http"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/catalog"
	"github.com/szzz666/PalEasyBreeding/internal/resolver"
)

// IsNotFound returns true if the error is or wraps catalog.ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound)
}

// IsDataIntegrity returns true if a resolution hit an override rule whose
// child is missing from the catalog.
func IsDataIntegrity(err error) bool {
	return errors.Is(err, resolver.ErrDataIntegrity)
}

// Classify maps an error returned by the breeding service onto an API error.
// Errors it does not recognise go through fallback, or become
// INTERNAL_ERROR when fallback is nil.
func Classify(err error, fallback func(error) *Error) *Error {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case IsNotFound(err):
		return Wrap(CodePalNotFound, http.StatusNotFound, "Pal not found", err)
	case IsDataIntegrity(err):
		return DataIntegrity(err)
	case errors.Is(err, breeding.ErrUnsupportedSteps):
		return InvalidSteps()
	}
	if fallback != nil {
		return fallback(err)
	}
	return InternalError(err)
}
