package apierr

import "fmt"

// Error is an API error: a machine-readable code, a message for the client,
// the HTTP status, and optionally the query parameter or pal it concerns.
// The cause is only for logs.
type Error struct {
	code    Code
	message string
	status  int
	param   string
	cause   error
}

func New(code Code, status int, message string) *Error {
	return &Error{code: code, message: message, status: status}
}

func Wrap(code Code, status int, message string, cause error) *Error {
	return &Error{code: code, message: message, status: status, cause: cause}
}

// WithParam returns a copy of e naming the offending parameter or pal.
func (e *Error) WithParam(param string) *Error {
	cp := *e
	cp.param = param
	return &cp
}

func (e *Error) Error() string {
	msg := string(e.code) + ": " + e.message
	if e.param != "" {
		msg += fmt.Sprintf(" [%s]", e.param)
	}
	if e.cause != nil {
		msg += fmt.Sprintf(": %v", e.cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() Code { return e.code }

func (e *Error) Message() string { return e.message }

func (e *Error) Status() int { return e.status }

// Param is the query parameter or pal name the error refers to, if any.
func (e *Error) Param() string { return e.param }

// ErrorResponse is the JSON body of every error reply:
// {"error": {"code": "...", "message": "...", "param": "..."}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func (e *Error) Response() ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Code:    e.code,
		Message: e.message,
		Param:   e.param,
	}}
}
