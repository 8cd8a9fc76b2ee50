package apierr

// Code is a machine-readable error code returned in API responses.
type Code string

// Common errors.
const (
	CodeInvalidRequestBody Code = "INVALID_REQUEST_BODY"
	CodeInternalError      Code = "INTERNAL_ERROR"
	CodeNotImplemented     Code = "NOT_IMPLEMENTED"
)

// Pal errors.
const (
	CodePalNotFound Code = "PAL_NOT_FOUND"
)

// Breeding errors.
const (
	CodeDataIntegrity Code = "DATA_INTEGRITY"
	CodeSearchFailed  Code = "SEARCH_FAILED"
)

// Validation errors.
const (
	CodeParamRequired Code = "PARAM_REQUIRED"
	CodeInvalidSteps  Code = "INVALID_STEPS"
	CodeInvalidBool   Code = "INVALID_BOOL"
	CodeInvalidSex    Code = "INVALID_SEX"
)

// Health errors.
const (
	CodeCatalogNotReady Code = "CATALOG_NOT_READY"
)
