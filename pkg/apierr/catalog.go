package apierr

import "net/http"

// --- Common ---

func InvalidRequestBody() *Error {
	return New(CodeInvalidRequestBody, http.StatusBadRequest, "Invalid request body")
}

func InternalError(cause error) *Error {
	return Wrap(CodeInternalError, http.StatusInternalServerError, "Internal server error", cause)
}

func NotImplemented(feature string) *Error {
	return New(CodeNotImplemented, http.StatusNotImplemented, feature+" is not implemented yet")
}

// --- Pal ---

func PalNotFound(name string) *Error {
	return New(CodePalNotFound, http.StatusNotFound, "Pal not found: "+name).WithParam(name)
}

// --- Breeding ---

func DataIntegrity(cause error) *Error {
	return Wrap(CodeDataIntegrity, http.StatusInternalServerError, "Breeding data is inconsistent", cause)
}

func SearchFailed(cause error) *Error {
	return Wrap(CodeSearchFailed, http.StatusInternalServerError, "Search failed", cause)
}

// --- Validation ---

func ParamRequired(name string) *Error {
	return New(CodeParamRequired, http.StatusBadRequest, "Query parameter '"+name+"' is required").WithParam(name)
}

func InvalidSteps() *Error {
	return New(CodeInvalidSteps, http.StatusBadRequest, "steps must be 1 or 2").WithParam("steps")
}

func InvalidBool(name string) *Error {
	return New(CodeInvalidBool, http.StatusBadRequest, name+" must be true or false").WithParam(name)
}

func InvalidSex(name string) *Error {
	return New(CodeInvalidSex, http.StatusBadRequest, name+" must be one of: male, female").WithParam(name)
}

// --- Health ---

func CatalogNotReady() *Error {
	return New(CodeCatalogNotReady, http.StatusServiceUnavailable, "Breeding catalog not loaded")
}
